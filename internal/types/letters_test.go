package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Valid(t *testing.T) {
	got := ParseDate("2024-03-01")
	require.False(t, got.IsZero())
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 1, got.Day())
}

func TestParseDate_EmptyAndMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "wrong layout", input: "01/03/2024"},
		{name: "partial date", input: "2024-03"},
		{name: "garbage", input: "next tuesday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, ParseDate(tt.input).IsZero())
		})
	}
}

func TestGenerateRequest_Validate(t *testing.T) {
	req := &GenerateRequest{Name: "Priya Sharma"}
	assert.NoError(t, req.Validate())

	empty := &GenerateRequest{}
	assert.Error(t, empty.Validate(), "name is required")
}

func TestCreateTemplateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTemplateRequest
		wantErr bool
	}{
		{
			name: "valid markup template",
			req:  CreateTemplateRequest{Name: "Offer", Category: "offer", Body: "Dear {{candidate_name}},"},
		},
		{
			name:    "missing name",
			req:     CreateTemplateRequest{Category: "offer"},
			wantErr: true,
		},
		{
			name:    "missing category",
			req:     CreateTemplateRequest{Name: "Offer"},
			wantErr: true,
		},
		{
			name: "empty body is allowed",
			req:  CreateTemplateRequest{Name: "Blank", Category: "generic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateEmployeeRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  CreateEmployeeRequest{Name: "Priya Sharma", Email: "priya@example.com", Role: "Engineer"},
		},
		{
			name:    "missing email",
			req:     CreateEmployeeRequest{Name: "Priya Sharma"},
			wantErr: true,
		},
		{
			name:    "malformed email",
			req:     CreateEmployeeRequest{Name: "Priya Sharma", Email: "not-an-email"},
			wantErr: true,
		},
		{
			name:    "missing name",
			req:     CreateEmployeeRequest{Email: "priya@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateLayoutRequest_Validate(t *testing.T) {
	valid := &UpdateLayoutRequest{PageWidth: 612, PageHeight: 792, MarginTop: 72, MarginBottom: 72, MarginLeft: 72, MarginRight: 72}
	assert.NoError(t, valid.Validate())

	zeroWidth := &UpdateLayoutRequest{PageHeight: 792}
	assert.Error(t, zeroWidth.Validate(), "page width must be positive")

	negativeMargin := &UpdateLayoutRequest{PageWidth: 612, PageHeight: 792, MarginTop: -1}
	assert.Error(t, negativeMargin.Validate())
}
