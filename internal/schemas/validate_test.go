package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireValidationError asserts err is a document failure (not a
// schema load failure) carrying at least one field error.
func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T: %v", err, err)
	require.NotEmpty(t, validationErr.Errors)
	return validationErr
}

func TestValidateJSON_AgainstFixtureSchema(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")

	t.Run("conforming document", func(t *testing.T) {
		err := ValidateJSON(schemaPath, filepath.Join("testdata", "valid_json.json"))
		assert.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := ValidateJSON(schemaPath, filepath.Join("testdata", "invalid_json.json"))
		requireValidationError(t, err)
	})

	t.Run("wrong field type", func(t *testing.T) {
		err := ValidateJSON(schemaPath, filepath.Join("testdata", "type_mismatch.json"))
		requireValidationError(t, err)
	})
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	err := ValidateJSON("testdata/no_such_schema.json", filepath.Join("testdata", "valid_json.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(filepath.Join("testdata", "valid_schema.json"), "testdata/no_such_document.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedDocument(t *testing.T) {
	malformed := filepath.Join(t.TempDir(), "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{ invalid json }"), 0644))

	err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), malformed)
	require.Error(t, err)
}

func TestValidateJSON_ClassificationSchema(t *testing.T) {
	schemaPath := ResolveSchemaPath(filepath.Join("schemas", "classification.schema.json"))
	require.NotEmpty(t, schemaPath, "classification schema should be resolvable from the package dir")

	tests := []struct {
		name      string
		jsonFile  string
		wantError bool
	}{
		{name: "valid classification", jsonFile: "classification_valid.json"},
		{name: "missing confidence", jsonFile: "classification_missing_field.json", wantError: true},
		{name: "confidence as string", jsonFile: "classification_wrong_type.json", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(schemaPath, filepath.Join("testdata", tt.jsonFile))
			if tt.wantError {
				requireValidationError(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

const sectionCheckSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["section"],
	"properties": {
		"section": {"type": "string"}
	}
}`

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(sectionCheckSchema, `{"section": "Registered Office"}`))

	err := ValidateJSONString(sectionCheckSchema, `{"clause": 7}`)
	requireValidationError(t, err)
}

func TestValidateJSONString_NestedFieldPath(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["resolution"],
		"properties": {
			"resolution": {
				"type": "object",
				"required": ["signatory"],
				"properties": {
					"signatory": {"type": "string"}
				}
			}
		}
	}`

	validationErr := requireValidationError(t, ValidateJSONString(schema, `{"resolution": {}}`))
	for _, fieldErr := range validationErr.Errors {
		assert.NotEmpty(t, fieldErr.Field, "every error should carry a field path")
	}
}

func TestValidateJSONString_ArrayConstraints(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"key_indicators": {
				"type": "array",
				"items": {"type": "string"},
				"minItems": 1
			}
		}
	}`

	assert.NoError(t, ValidateJSONString(schema, `{"key_indicators": ["jurisdiction clause"]}`))
	requireValidationError(t, ValidateJSONString(schema, `{"key_indicators": []}`))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "document_type", Message: "is required"},
			{Field: "confidence", Message: "must be a number"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "document_type")
	assert.Contains(t, msg, "confidence")
}
