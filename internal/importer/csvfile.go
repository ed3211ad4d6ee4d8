// internal/importer/csvfile.go
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"candidate-intake/internal/engine/normalize"
)

// Spreadsheet exports arrive as CSV with the usual real-world damage:
// Windows BOMs, broken UTF-8, ragged rows. Everything here cleans that up
// before the pipeline sees a cell.

// bomPrefix is the UTF-8 byte order mark Windows tools prepend.
var bomPrefix = []byte{0xEF, 0xBB, 0xBF}

// ReadRows reads an uploaded file into rows. Limit is the maximum accepted
// size in bytes; rows may have differing lengths.
func ReadRows(r io.Reader, limit int64) ([][]string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file exceeds %d byte limit", limit)
	}

	data = bytes.TrimPrefix(data, bomPrefix)
	data = sanitizeUTF8(data)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

// sanitizeUTF8 replaces invalid byte sequences with the replacement rune so
// downstream string handling never trips on mojibake.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.Write(data[:size])
			data = data[size:]
		}
	}
	return buf.Bytes()
}

// ExtractHeaders returns the trimmed first-row cells. Used by callers to
// build a column mapping before a mapped import.
func ExtractHeaders(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		headers[i] = strings.TrimSpace(cell)
	}
	return headers
}

// headerWords are tokens that mark a first row as a header row rather than
// data, for auto-detect imports where no mapping tells us.
var headerWords = map[string]bool{
	"name": true, "candidate": true, "email": true, "mail": true,
	"phone": true, "contact": true, "mobile": true, "position": true,
	"role": true, "designation": true, "location": true, "city": true,
	"experience": true, "exp": true, "ctc": true, "salary": true,
	"compensation": true, "notice": true, "status": true, "source": true,
	"company": true, "client": true, "spoc": true, "recruiter": true,
}

// LooksLikeHeader reports whether row reads as column labels: no cell is a
// real email or phone, and at least one cell names a known column.
func LooksLikeHeader(row []string) bool {
	known := false
	for _, cell := range row {
		v := strings.TrimSpace(cell)
		if v == "" {
			continue
		}
		if strings.Contains(v, "@") {
			return false
		}
		if _, ok := normalize.Phone(v); ok {
			return false
		}
		for _, word := range strings.Fields(strings.ToLower(v)) {
			if headerWords[word] {
				known = true
			}
		}
	}
	return known
}

// isEmptyRow reports whether every cell is blank.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// columnLabels builds the originalData keys for a file: header text where
// available, positional labels otherwise.
func columnLabels(headers []string, width int) []string {
	labels := make([]string, width)
	for i := 0; i < width; i++ {
		if i < len(headers) && strings.TrimSpace(headers[i]) != "" {
			labels[i] = strings.TrimSpace(headers[i])
		} else {
			labels[i] = fmt.Sprintf("column_%d", i+1)
		}
	}
	return labels
}
