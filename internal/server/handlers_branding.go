package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/hrm-letters/internal/types"
)

// handleGetBranding returns the singleton branding profile, creating it with
// default page geometry on first read.
func (s *Server) handleGetBranding(w http.ResponseWriter, r *http.Request) {
	profile, err := s.db.GetOrCreateBranding(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateBranding edits identity and asset fields. Absent fields keep
// their stored values; layout fields are not accepted here.
func (s *Server) handleUpdateBranding(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateBrandingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := s.db.GetOrCreateBranding(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if req.CompanyName != "" {
		profile.CompanyName = req.CompanyName
	}
	if req.CompanyAddress != "" {
		profile.CompanyAddress = req.CompanyAddress
	}
	if req.ContactLines != "" {
		profile.ContactLines = req.ContactLines
	}
	if req.LogoURL != "" {
		profile.LogoURL = req.LogoURL
	}
	if req.SignatureURL != "" {
		profile.SignatureURL = req.SignatureURL
	}
	if req.LetterheadURL != "" {
		profile.LetterheadURL = req.LetterheadURL
	}
	if req.LetterheadOn != nil {
		profile.LetterheadActive = *req.LetterheadOn
	}

	if err := s.db.UpdateBranding(r.Context(), profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateLayout sets page size and margins. The safe content area is
// recomputed server-side and never accepted from the client.
func (s *Server) handleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.MarginLeft+req.MarginRight >= req.PageWidth ||
		req.MarginTop+req.MarginBottom >= req.PageHeight {
		s.errorResponse(w, http.StatusBadRequest, "Margins leave no content area")
		return
	}

	profile, err := s.db.GetOrCreateBranding(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	profile.PageWidth = req.PageWidth
	profile.PageHeight = req.PageHeight
	profile.MarginTop = req.MarginTop
	profile.MarginBottom = req.MarginBottom
	profile.MarginLeft = req.MarginLeft
	profile.MarginRight = req.MarginRight

	if err := s.db.UpdateBrandingLayout(r.Context(), profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}
