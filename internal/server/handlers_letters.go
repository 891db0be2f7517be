package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/hrm-letters/internal/schemas"
	"github.com/jonathan/hrm-letters/internal/types"
)

// maxGeneratePayload caps the generation request body size.
const maxGeneratePayload = 1 << 20

// decodeGenerateRequest reads and validates a letter generation payload. The
// body is checked against the JSON schema first so unknown fields and
// conflicting selectors fail before struct decoding.
func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) *types.GenerateRequest {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxGeneratePayload))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return nil
	}

	if err := schemas.ValidateLetterRequest(string(body)); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return nil
	}

	var req types.GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return nil
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return nil
	}

	return &req
}

// handleGenerateLetter renders a letter to PDF and streams it back.
// Degraded renders still return the PDF; warnings travel in a header.
func (s *Server) handleGenerateLetter(w http.ResponseWriter, r *http.Request) {
	req := s.decodeGenerateRequest(w, r)
	if req == nil {
		return
	}

	result, err := s.letters.Generate(r.Context(), req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Letter generation failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Subject+".pdf"))
	w.Header().Set("X-Letter-Mode", result.Mode)
	if result.Degraded() {
		w.Header().Set("X-Letter-Warnings", strings.Join(result.Warnings, "; "))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.PDF); err != nil {
		// Response already committed; nothing recoverable
		return
	}
}

// handlePreviewLetter runs resolution and composition without the PDF
// renderer and returns the composed markup for UI preview.
func (s *Server) handlePreviewLetter(w http.ResponseWriter, r *http.Request) {
	req := s.decodeGenerateRequest(w, r)
	if req == nil {
		return
	}

	result, err := s.letters.Preview(r.Context(), req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Letter preview failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"html":     result.HTML,
		"subject":  result.Subject,
		"title":    result.Title,
		"mode":     result.Mode,
		"warnings": result.Warnings,
	})
}
