// internal/engine/classify/classify_test.go
package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"candidate-intake/internal/models"
)

func TestClassify_Placeholders(t *testing.T) {
	for _, v := range []string{"", "NA", "n/a", "  TBD  ", "as per company norms", "will share later"} {
		res := Classify(v)
		assert.Equal(t, models.Field(""), res.Field, "placeholder %q must not classify", v)
		assert.Equal(t, 0.0, res.Score)
	}
}

func TestClassify_ByField(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected models.Field
	}{
		{"two word name", "John Doe", models.FieldName},
		{"hyphenated name", "Anne-Marie O'Brien", models.FieldName},
		{"email", "john.doe@example.com", models.FieldEmail},
		{"subdomain email", "a.b@mail.example.co.in", models.FieldEmail},
		{"bare phone", "9876543210", models.FieldPhone},
		{"formatted phone", "+91 98765 43210", models.FieldPhone},
		{"job title", "Software Engineer", models.FieldPosition},
		{"senior title", "Senior Backend Developer", models.FieldPosition},
		{"city", "Bangalore", models.FieldLocation},
		{"two word city", "New Delhi", models.FieldLocation},
		{"remote", "Remote", models.FieldLocation},
		{"experience", "5 years", models.FieldExperience},
		{"experience months", "18 months", models.FieldExperience},
		{"compensation lpa", "6.5 LPA", models.FieldCurrentCompensation},
		{"compensation lakh", "12 lakhs", models.FieldCurrentCompensation},
		{"notice period", "30 days", models.FieldNoticePeriod},
		{"immediate notice", "Immediate", models.FieldNoticePeriod},
		{"status", "Shortlisted", models.FieldStatus},
		{"cv source", "Naukri", models.FieldSourceOfCV},
		{"known employer", "Infosys", models.FieldCompany},
		{"company with suffix", "Acme Technologies Pvt Ltd", models.FieldCompany},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(tt.value)
			assert.Equal(t, tt.expected, res.Field, "value %q", tt.value)
			assert.Greater(t, res.Score, 0.0)
		})
	}
}

// currentCompensation is declared before expectedCompensation, so an
// ambiguous salary cell always lands on current. Same value, same verdict,
// every run.
func TestClassify_TieBreakIsDeclarationOrder(t *testing.T) {
	res := Classify("6.5 LPA")
	assert.Equal(t, models.FieldCurrentCompensation, res.Field)

	// company and client share a scorer; company wins.
	res = Classify("Infosys")
	assert.Equal(t, models.FieldCompany, res.Field)
}

func TestClassify_Deterministic(t *testing.T) {
	first := Classify("Senior Software Engineer")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Classify("Senior Software Engineer"))
	}
}

func TestScoreName(t *testing.T) {
	assert.Equal(t, 0.0, scoreName("john123"))
	assert.Equal(t, 0.0, scoreName("a@b.com"))
	assert.Greater(t, scoreName("John Doe"), scoreName("John"))
	assert.Greater(t, scoreName("John"), scoreName("one two three four five six"))
}

func TestScoreSPOC(t *testing.T) {
	assert.Equal(t, 4.0, scoreSPOC("Priya Sharma"))
	assert.Equal(t, 0.0, scoreSPOC("Priya Sharma 9876"))
	assert.Equal(t, 0.0, scoreSPOC("priya@firm.com"))
	assert.Equal(t, 0.0, scoreSPOC("6 LPA"))
	assert.Equal(t, 0.0, scoreSPOC("Acme Pvt Ltd"))
	assert.Equal(t, 0.0, scoreSPOC("one two three four"))
}
