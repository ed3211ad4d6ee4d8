// internal/engine/validate/validate_test.go
package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"candidate-intake/internal/models"
)

func fullRecord() *models.CandidateRecord {
	return &models.CandidateRecord{
		RowIndex: 1,
		Fields: map[models.Field]string{
			models.FieldName:                 "John Doe",
			models.FieldEmail:                "john@x.com",
			models.FieldPhone:                "9876543210",
			models.FieldPosition:             "Software Engineer",
			models.FieldExperience:           "5",
			models.FieldCurrentCompensation:  "6",
			models.FieldExpectedCompensation: "9",
			models.FieldNoticePeriod:         "30",
			models.FieldLocation:             "Bangalore",
			models.FieldStatus:               "screening",
			models.FieldSourceOfCV:           "naukri",
		},
	}
}

func TestRecord_FullRecordIsReady(t *testing.T) {
	outcome := Record(fullRecord())

	assert.Equal(t, models.DispositionReady, outcome.Disposition)
	assert.Equal(t, 100, outcome.Confidence)
	assert.Empty(t, outcome.Errors)
	assert.Empty(t, outcome.Warnings)
}

// A row with all four required fields valid but every optional field
// missing lands in the review band.
func TestRecord_RequiredOnlyIsReview(t *testing.T) {
	rec := &models.CandidateRecord{
		RowIndex: 1,
		Fields: map[models.Field]string{
			models.FieldName:     "john doe",
			models.FieldEmail:    "john@x.com",
			models.FieldPhone:    "9876543210",
			models.FieldPosition: "Software Engineer",
		},
	}
	outcome := Record(rec)

	assert.Equal(t, models.DispositionReview, outcome.Disposition)
	assert.Equal(t, 63, outcome.Confidence)
	assert.Empty(t, outcome.Errors)
	assert.Len(t, outcome.Warnings, 7)
}

// A row that is placeholders everywhere except the name blocks on the
// missing email, phone and position.
func TestRecord_PlaceholdersBlock(t *testing.T) {
	rec := &models.CandidateRecord{
		RowIndex: 2,
		Fields: map[models.Field]string{
			models.FieldName:     "John Doe",
			models.FieldEmail:    "NA",
			models.FieldPhone:    "NA",
			models.FieldPosition: "NA",
		},
	}
	outcome := Record(rec)

	assert.Equal(t, models.DispositionBlocked, outcome.Disposition)
	assert.Len(t, outcome.Errors, 3)

	fields := make([]models.Field, 0, len(outcome.Errors))
	for _, e := range outcome.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []models.Field{models.FieldEmail, models.FieldPhone, models.FieldPosition}, fields)
}

func TestRecord_FieldChecks(t *testing.T) {
	tests := []struct {
		name      string
		field     models.Field
		value     string
		wantError bool
	}{
		{"name with one letter", models.FieldName, "J", true},
		{"name with two letters", models.FieldName, "Jo", false},
		{"malformed email", models.FieldEmail, "not-an-email", true},
		{"valid email", models.FieldEmail, "a@b.co", false},
		{"phone with four digits", models.FieldPhone, "1234", true},
		{"phone with five digits", models.FieldPhone, "12345", false},
		{"placeholder position", models.FieldPosition, "tbd", true},
		{"real position", models.FieldPosition, "Engineer", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := fullRecord()
			rec.Set(tt.field, tt.value)
			outcome := Record(rec)

			hasError := false
			for _, e := range outcome.Errors {
				if e.Field == tt.field {
					hasError = true
				}
			}
			assert.Equal(t, tt.wantError, hasError)
		})
	}
}

// Validation is pure: running it twice on the same record yields an
// identical outcome.
func TestRecord_Idempotent(t *testing.T) {
	rec := fullRecord()
	delete(rec.Fields, models.FieldExperience)
	delete(rec.Fields, models.FieldLocation)

	first := Record(rec)
	second := Record(rec)
	assert.Equal(t, first, second)
}

// Decreasing confidence only ever moves the verdict down the ladder.
func TestDerive_Monotonic(t *testing.T) {
	assert.Equal(t, models.DispositionReady, derive(0, 85))
	assert.Equal(t, models.DispositionReview, derive(0, 65))
	assert.Equal(t, models.DispositionBlocked, derive(0, 40))

	assert.Equal(t, models.DispositionReady, derive(0, ReadyThreshold))
	assert.Equal(t, models.DispositionReview, derive(0, ReadyThreshold-1))
	assert.Equal(t, models.DispositionReview, derive(0, ReviewThreshold))
	assert.Equal(t, models.DispositionBlocked, derive(0, ReviewThreshold-1))
}

// Any required-field error blocks regardless of confidence.
func TestDerive_ErrorsAlwaysBlock(t *testing.T) {
	assert.Equal(t, models.DispositionBlocked, derive(1, 100))
	assert.Equal(t, models.DispositionBlocked, derive(2, 90))
}

func TestRecord_ConfidenceClamped(t *testing.T) {
	outcome := Record(&models.CandidateRecord{RowIndex: 3})
	assert.GreaterOrEqual(t, outcome.Confidence, 0)
	assert.LessOrEqual(t, outcome.Confidence, 100)
	assert.Equal(t, models.DispositionBlocked, outcome.Disposition)
}
