package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHealth(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestWithCORS(t *testing.T) {
	s := &Server{}
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("headers set on normal requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/designs", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/letters/generate", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "OPTIONS must not reach the wrapped handler")
	})
}

func TestExtractClientID(t *testing.T) {
	s := &Server{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:54321"
	assert.Equal(t, "203.0.113.9", s.extractClientID(req))

	req.RemoteAddr = "no-port-here"
	assert.Equal(t, "no-port-here", s.extractClientID(req))
}

func TestHandleListDesigns(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/designs", nil)
	rec := httptest.NewRecorder()

	s.handleListDesigns(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count   int `json:"count"`
		Designs []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Category string `json:"category"`
			Subject  string `json:"subject"`
		} `json:"designs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotZero(t, body.Count)
	assert.Len(t, body.Designs, body.Count)

	for _, d := range body.Designs {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Category)
	}

	// Markup bodies must not leak into the listing.
	assert.NotContains(t, rec.Body.String(), "candidate_name")
}

func TestDecodeGenerateRequest(t *testing.T) {
	s := &Server{}

	tests := []struct {
		name       string
		payload    string
		wantOK     bool
		wantStatus int
		wantError  string
	}{
		{
			name:    "valid payload",
			payload: `{"name": "Priya Sharma", "letter_type": "offer"}`,
			wantOK:  true,
		},
		{
			name:       "missing name",
			payload:    `{"letter_type": "offer"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "name",
		},
		{
			name:       "unknown field",
			payload:    `{"name": "Priya", "surprise": true}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "surprise",
		},
		{
			name:       "both selectors set",
			payload:    `{"name": "Priya", "design_id": "offer-standard", "template_id": "9c5adcf5-9d5a-4d0e-8b3f-1f2d3c4b5a69"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad joining date",
			payload:    `{"name": "Priya", "joining_date": "March 1st"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed JSON",
			payload:    `{"name": `,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/letters/generate", strings.NewReader(tt.payload))
			rec := httptest.NewRecorder()

			decoded := s.decodeGenerateRequest(rec, req)
			if tt.wantOK {
				require.NotNil(t, decoded)
				assert.Equal(t, "Priya Sharma", decoded.Name)
				return
			}

			assert.Nil(t, decoded)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Contains(t, rec.Body.String(), tt.wantError)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()

	s.errorResponse(rec, http.StatusNotFound, "Template not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Template not found", body["error"])
}
