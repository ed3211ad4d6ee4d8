// internal/engine/validate/validate.go
package validate

import (
	"regexp"
	"unicode"

	"candidate-intake/internal/engine/placeholder"
	"candidate-intake/internal/models"
)

var (
	emailShapeRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Record validates one assembled candidate record and derives its triage
// disposition. It is pure and stateless so the same function serves both the
// batch pipeline and the single-record re-validate action.
func Record(rec *models.CandidateRecord) models.ValidationOutcome {
	outcome := models.ValidationOutcome{
		Confidence: 100,
		Errors:     []models.FieldError{},
		Warnings:   []models.FieldWarning{},
	}

	for _, p := range PenaltyTable {
		if fieldPresent(rec, p.Field) {
			continue
		}

		outcome.Confidence -= p.Cost
		if p.Required {
			outcome.Errors = append(outcome.Errors, models.FieldError{
				Field:   p.Field,
				Message: p.Message,
			})
		} else {
			outcome.Warnings = append(outcome.Warnings, models.FieldWarning{
				Field:    p.Field,
				Message:  p.Message,
				Severity: p.Severity,
			})
		}
	}

	if outcome.Confidence < 0 {
		outcome.Confidence = 0
	}
	if outcome.Confidence > 100 {
		outcome.Confidence = 100
	}

	outcome.Disposition = derive(len(outcome.Errors), outcome.Confidence)
	return outcome
}

// derive maps (error count, confidence) to a disposition. Any error blocks
// regardless of confidence.
func derive(errorCount, confidence int) models.Disposition {
	switch {
	case errorCount > 0:
		return models.DispositionBlocked
	case confidence >= ReadyThreshold:
		return models.DispositionReady
	case confidence >= ReviewThreshold:
		return models.DispositionReview
	default:
		return models.DispositionBlocked
	}
}

// fieldPresent runs the per-field acceptance check behind each penalty
// entry. A placeholder value is always absent.
func fieldPresent(rec *models.CandidateRecord, f models.Field) bool {
	v := rec.Get(f)
	if placeholder.IsPlaceholder(v) {
		return false
	}

	switch f {
	case models.FieldName:
		return alphaCount(v) >= 2
	case models.FieldEmail:
		return emailShapeRe.MatchString(v)
	case models.FieldPhone:
		return digitCount(v) >= 5
	default:
		return v != ""
	}
}

func alphaCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
