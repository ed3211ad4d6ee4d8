// internal/importer/csvfile_test.go
package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows(t *testing.T) {
	input := "Name,Email,Phone\nJohn Doe,john@x.com,9876543210\nJane Roe,jane@x.com,9876543211\n"
	rows, err := ReadRows(strings.NewReader(input), 1<<20)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Email", "Phone"}, rows[0])
	assert.Equal(t, []string{"John Doe", "john@x.com", "9876543210"}, rows[1])
}

func TestReadRows_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFName,Email\nJohn,john@x.com\n"
	rows, err := ReadRows(strings.NewReader(input), 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "Name", rows[0][0])
}

func TestReadRows_RaggedRows(t *testing.T) {
	input := "a,b,c\nd,e\nf,g,h,i\n"
	rows, err := ReadRows(strings.NewReader(input), 1<<20)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[1], 2)
	assert.Len(t, rows[2], 4)
}

func TestReadRows_InvalidUTF8(t *testing.T) {
	input := "Name\nJo\xFFhn\n"
	rows, err := ReadRows(strings.NewReader(input), 1<<20)
	require.NoError(t, err)
	assert.Contains(t, rows[1][0], "�")
}

func TestReadRows_SizeLimit(t *testing.T) {
	input := strings.Repeat("a,b,c\n", 100)
	_, err := ReadRows(strings.NewReader(input), 10)
	assert.Error(t, err)
}

func TestExtractHeaders(t *testing.T) {
	rows := [][]string{{" Name ", "Email", " Phone"}, {"x", "y", "z"}}
	assert.Equal(t, []string{"Name", "Email", "Phone"}, ExtractHeaders(rows))
	assert.Nil(t, ExtractHeaders(nil))
}

func TestLooksLikeHeader(t *testing.T) {
	tests := []struct {
		name     string
		row      []string
		expected bool
	}{
		{"typical header", []string{"Name", "Email ID", "Phone Number"}, true},
		{"lowercase header", []string{"candidate name", "contact"}, true},
		{"data row with email", []string{"John Doe", "john@x.com", "9876543210"}, false},
		{"data row with phone only", []string{"John Doe", "9876543210"}, false},
		{"unrecognized labels", []string{"foo", "bar"}, false},
		{"empty row", []string{"", ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LooksLikeHeader(tt.row))
		})
	}
}

func TestIsEmptyRow(t *testing.T) {
	assert.True(t, isEmptyRow([]string{"", "  ", "\t"}))
	assert.False(t, isEmptyRow([]string{"", "x"}))
}

func TestColumnLabels(t *testing.T) {
	labels := columnLabels([]string{"Name", ""}, 3)
	assert.Equal(t, []string{"Name", "column_2", "column_3"}, labels)

	labels = columnLabels(nil, 2)
	assert.Equal(t, []string{"column_1", "column_2"}, labels)
}
