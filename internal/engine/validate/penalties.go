// internal/engine/validate/penalties.go
package validate

import "candidate-intake/internal/models"

// Penalty is one entry of the scoring table: what a missing or malformed
// field costs, and how the failure is reported.
type Penalty struct {
	Field    models.Field
	Cost     int
	Required bool
	Severity models.Severity
	Message  string
}

// PenaltyTable is the single source of truth for confidence scoring.
// Required entries produce blocking errors; the rest produce advisory
// warnings. Confidence starts at 100 and every failing check subtracts its
// cost before clamping to [0,100].
var PenaltyTable = []Penalty{
	{models.FieldName, 20, true, "", "name is missing or too short"},
	{models.FieldEmail, 20, true, "", "email is missing or malformed"},
	{models.FieldPhone, 20, true, "", "phone is missing or malformed"},
	{models.FieldPosition, 15, true, "", "position is missing"},

	{models.FieldExperience, 8, false, models.SeverityWarning, "experience not provided"},
	{models.FieldCurrentCompensation, 6, false, models.SeverityWarning, "current compensation not provided"},
	{models.FieldExpectedCompensation, 6, false, models.SeverityWarning, "expected compensation not provided"},
	{models.FieldNoticePeriod, 5, false, models.SeverityWarning, "notice period not provided"},
	{models.FieldLocation, 5, false, models.SeverityInfo, "location not provided"},
	{models.FieldStatus, 4, false, models.SeverityInfo, "status not provided"},
	{models.FieldSourceOfCV, 3, false, models.SeverityInfo, "source of CV not provided"},
}

// Disposition thresholds per the triage contract: errors always block;
// otherwise ready at >= ReadyThreshold, review at >= ReviewThreshold.
const (
	ReadyThreshold  = 80
	ReviewThreshold = 50
)
