package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLetterRequest_Valid(t *testing.T) {
	payload := `{
		"name": "Priya Sharma",
		"email": "priya@example.com",
		"role": "Software Engineer",
		"joining_date": "2024-03-01",
		"salary": "18 LPA",
		"letter_type": "offer",
		"decorate": true
	}`

	assert.NoError(t, ValidateLetterRequest(payload))
}

func TestValidateLetterRequest_MinimalPayload(t *testing.T) {
	assert.NoError(t, ValidateLetterRequest(`{"name": "Priya Sharma"}`))
}

func TestValidateLetterRequest_MissingName(t *testing.T) {
	err := ValidateLetterRequest(`{"role": "Engineer"}`)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Errors)
	assert.Contains(t, err.Error(), "name")
}

func TestValidateLetterRequest_BadDatePattern(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name:    "slash-separated joining date",
			payload: `{"name": "Priya", "joining_date": "01/03/2024"}`,
			wantErr: true,
		},
		{
			name:    "partial last working day",
			payload: `{"name": "Priya", "last_working_day": "2024-03"}`,
			wantErr: true,
		},
		{
			name:    "empty date is accepted",
			payload: `{"name": "Priya", "joining_date": ""}`,
			wantErr: false,
		},
		{
			name:    "well-formed dates",
			payload: `{"name": "Priya", "joining_date": "2021-06-15", "last_working_day": "2024-06-14"}`,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLetterRequest(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLetterRequest_DesignAndTemplateAreExclusive(t *testing.T) {
	both := `{"name": "Priya", "design_id": "offer-standard", "template_id": "9c5adcf5-9d5a-4d0e-8b3f-1f2d3c4b5a69"}`
	assert.Error(t, ValidateLetterRequest(both))

	designOnly := `{"name": "Priya", "design_id": "offer-standard"}`
	assert.NoError(t, ValidateLetterRequest(designOnly))

	templateOnly := `{"name": "Priya", "template_id": "9c5adcf5-9d5a-4d0e-8b3f-1f2d3c4b5a69"}`
	assert.NoError(t, ValidateLetterRequest(templateOnly))
}

func TestValidateLetterRequest_UnknownFieldRejected(t *testing.T) {
	err := ValidateLetterRequest(`{"name": "Priya", "favourite_colour": "teal"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "favourite_colour")
}

func TestValidateLetterRequest_MalformedJSON(t *testing.T) {
	err := ValidateLetterRequest(`{"name": `)
	require.Error(t, err)

	var lerr *SchemaLoadError
	assert.True(t, errors.As(err, &lerr))
}

func TestValidationError_Message(t *testing.T) {
	verr := &ValidationError{Errors: []FieldError{
		{Field: "joining_date", Message: "does not match pattern"},
		{Field: "(root)", Message: "additional property not allowed"},
	}}

	msg := verr.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. joining_date")
	assert.Contains(t, msg, "2. (root)")
}
