// internal/models/candidate.go
package models

// Disposition is the tri-state import verdict for a record.
type Disposition string

const (
	DispositionReady   Disposition = "ready"
	DispositionReview  Disposition = "review"
	DispositionBlocked Disposition = "blocked"
)

// Severity grades advisory warnings.
type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// FieldError is a blocking validation failure on one field.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

// FieldWarning is an advisory validation finding on one field.
type FieldWarning struct {
	Field    Field    `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ValidationOutcome is the validator verdict for one candidate record.
// It is a pure function of the record: same record, same outcome.
type ValidationOutcome struct {
	Disposition Disposition    `json:"disposition"`
	Confidence  int            `json:"confidence"`
	Errors      []FieldError   `json:"errors"`
	Warnings    []FieldWarning `json:"warnings"`
}

// CandidateRecord is one spreadsheet row after classification and
// normalization. Field values are normalized strings; absent or placeholder
// cells are simply missing from Fields.
type CandidateRecord struct {
	RowIndex     int               `json:"rowIndex"`
	Fields       map[Field]string  `json:"fields"`
	OriginalData map[string]string `json:"originalData"`
	AutoFixes    []string          `json:"autoFixChanges"`
	Swaps        []string          `json:"swaps"`
}

// Get returns the value for f, or "" when absent.
func (r *CandidateRecord) Get(f Field) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[f]
}

// Set stores a normalized value for f, allocating Fields lazily.
func (r *CandidateRecord) Set(f Field, value string) {
	if r.Fields == nil {
		r.Fields = make(map[Field]string)
	}
	r.Fields[f] = value
}

// AcceptedCandidate is the main-store shape handed to the candidate store
// once a record reaches disposition "ready" (or is promoted after review).
type AcceptedCandidate struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Position             string `json:"position"`
	Location             string `json:"location,omitempty"`
	Experience           string `json:"experience,omitempty"`
	CurrentCompensation  string `json:"currentCompensation,omitempty"`
	ExpectedCompensation string `json:"expectedCompensation,omitempty"`
	NoticePeriod         string `json:"noticePeriod,omitempty"`
	Status               string `json:"status,omitempty"`
	SourceOfCV           string `json:"sourceOfCV,omitempty"`
	Company              string `json:"company,omitempty"`
	Client               string `json:"client,omitempty"`
	SPOC                 string `json:"spoc,omitempty"`
	CreatedAt            string `json:"createdAt"`
	UpdatedAt            string `json:"updatedAt"`
}

// FromRecord maps taxonomy fields onto the main-store shape.
func (c *AcceptedCandidate) FromRecord(rec *CandidateRecord) {
	c.Name = rec.Get(FieldName)
	c.Email = rec.Get(FieldEmail)
	c.Phone = rec.Get(FieldPhone)
	c.Position = rec.Get(FieldPosition)
	c.Location = rec.Get(FieldLocation)
	c.Experience = rec.Get(FieldExperience)
	c.CurrentCompensation = rec.Get(FieldCurrentCompensation)
	c.ExpectedCompensation = rec.Get(FieldExpectedCompensation)
	c.NoticePeriod = rec.Get(FieldNoticePeriod)
	c.Status = rec.Get(FieldStatus)
	c.SourceOfCV = rec.Get(FieldSourceOfCV)
	c.Company = rec.Get(FieldCompany)
	c.Client = rec.Get(FieldClient)
	c.SPOC = rec.Get(FieldSPOC)
}
