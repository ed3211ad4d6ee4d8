// internal/api/schemas.go
package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	stderrors "candidate-intake/internal/common/errors"
)

const recordSchemaFragment = `{
	"type": "object",
	"required": ["fields"],
	"properties": {
		"rowIndex": {"type": "integer", "minimum": 0},
		"fields": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		},
		"originalData": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		},
		"autoFixChanges": {"type": "array", "items": {"type": "string"}},
		"swaps": {"type": "array", "items": {"type": "string"}}
	}
}`

var revalidateSchema = `{
	"type": "object",
	"required": ["record"],
	"properties": {
		"record": ` + recordSchemaFragment + `
	}
}`

var promoteSchema = `{
	"type": "object",
	"properties": {
		"ready": {"type": "array", "items": ` + recordSchemaFragment + `},
		"review": {"type": "array", "items": ` + recordSchemaFragment + `}
	},
	"anyOf": [
		{"required": ["ready"]},
		{"required": ["review"]}
	]
}`

// decodeValidated reads the request body and checks it against schema
// before the handler unmarshals it.
func decodeValidated(r *http.Request, schema string) ([]byte, *stderrors.StandardError) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, stderrors.NewInvalidPayloadError(err.Error())
	}

	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, stderrors.NewInvalidPayloadError(err.Error())
	}
	if !result.Valid() {
		descs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			descs[i] = desc.String()
		}
		return nil, stderrors.NewInvalidPayloadError(strings.Join(descs, "; "))
	}
	return body, nil
}
