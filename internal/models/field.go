// internal/models/field.go
package models

// Field identifies one semantic candidate field out of the fixed taxonomy.
type Field string

const (
	FieldName                 Field = "name"
	FieldEmail                Field = "email"
	FieldPhone                Field = "phone"
	FieldPosition             Field = "position"
	FieldLocation             Field = "location"
	FieldExperience           Field = "experience"
	FieldCurrentCompensation  Field = "currentCompensation"
	FieldExpectedCompensation Field = "expectedCompensation"
	FieldNoticePeriod         Field = "noticePeriod"
	FieldStatus               Field = "status"
	FieldSourceOfCV           Field = "sourceOfCV"
	FieldCompany              Field = "company"
	FieldClient               Field = "client"
	FieldSPOC                 Field = "spoc"
)

// FieldOrder is the taxonomy declaration order. The classifier breaks exact
// score ties by this order, so it must stay stable.
var FieldOrder = []Field{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldPosition,
	FieldLocation,
	FieldExperience,
	FieldCurrentCompensation,
	FieldExpectedCompensation,
	FieldNoticePeriod,
	FieldStatus,
	FieldSourceOfCV,
	FieldCompany,
	FieldClient,
	FieldSPOC,
}

// KnownField reports whether name is a member of the taxonomy.
func KnownField(name string) bool {
	for _, f := range FieldOrder {
		if string(f) == name {
			return true
		}
	}
	return false
}
