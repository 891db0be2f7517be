package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/hrm-letters/internal/db"
	"github.com/jonathan/hrm-letters/internal/letters"
	"github.com/jonathan/hrm-letters/internal/server/middleware"
	"github.com/jonathan/hrm-letters/internal/types"
	"github.com/jonathan/hrm-letters/internal/validation"
)

// maxTemplatePDFBytes caps fixed-PDF template uploads.
const maxTemplatePDFBytes = 20 << 20

// handleListTemplates lists all stored templates
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.db.ListTemplates(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": templates,
		"count":     len(templates),
	})
}

// handleListDesigns lists the built-in design catalog. Markup and stylesheet
// bodies are omitted from the listing.
func (s *Server) handleListDesigns(w http.ResponseWriter, r *http.Request) {
	type designView struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Subject  string `json:"subject"`
	}

	designs := letters.Designs()
	views := make([]designView, 0, len(designs))
	for _, d := range designs {
		views = append(views, designView{ID: d.ID, Name: d.Name, Category: d.Category, Subject: d.Subject})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"designs": views,
		"count":   len(views),
	})
}

// handleCreateTemplate stores a new authored template. Structural violations
// that still render are returned as warnings; compile failures reject.
func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	violations := validation.CheckTemplate(req.Body, req.Variables)
	if validation.Blocking(violations) {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":      "template does not compile",
			"violations": violations,
		})
		return
	}

	tmpl, err := s.db.CreateTemplate(r.Context(), &db.LetterTemplate{
		Name:      req.Name,
		Category:  req.Category,
		Subject:   req.Subject,
		Body:      req.Body,
		Variables: req.Variables,
		Locked:    req.Locked,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"template":   tmpl,
		"violations": violations,
	})
}

// handleGetTemplate retrieves a template by ID
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl := s.loadTemplate(w, r)
	if tmpl == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, tmpl)
}

// handleUpdateTemplate edits a stored template. Locked templates require the
// admin flag on the authenticated user.
func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl := s.loadTemplate(w, r)
	if tmpl == nil {
		return
	}
	if tmpl.Locked && !middleware.IsAdmin(r) {
		err := &ErrTemplateLocked{TemplateID: tmpl.ID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	violations := validation.CheckTemplate(req.Body, req.Variables)
	if validation.Blocking(violations) {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":      "template does not compile",
			"violations": violations,
		})
		return
	}

	tmpl.Name = req.Name
	tmpl.Category = req.Category
	tmpl.Subject = req.Subject
	tmpl.Body = req.Body
	tmpl.Variables = req.Variables
	tmpl.Locked = req.Locked

	if err := s.db.UpdateTemplate(r.Context(), tmpl); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"template":   tmpl,
		"violations": violations,
	})
}

// handleDeleteTemplate removes a template and, for fixed-PDF templates, the
// stored file backing it.
func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl := s.loadTemplate(w, r)
	if tmpl == nil {
		return
	}
	if tmpl.Locked && !middleware.IsAdmin(r) {
		err := &ErrTemplateLocked{TemplateID: tmpl.ID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	filePath, err := s.db.DeleteTemplate(r.Context(), tmpl.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if filePath != "" {
		if err := s.storage.Remove(filePath); err != nil {
			// Row is gone; report the orphaned file but do not fail the delete
			s.jsonResponse(w, http.StatusOK, map[string]any{
				"deleted": tmpl.ID,
				"warning": "stored file could not be removed: " + err.Error(),
			})
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"deleted": tmpl.ID})
}

// handleUploadTemplatePDF attaches an uploaded PDF to a template, converting
// it to a fixed-PDF template.
func (s *Server) handleUploadTemplatePDF(w http.ResponseWriter, r *http.Request) {
	tmpl := s.loadTemplate(w, r)
	if tmpl == nil {
		return
	}
	if tmpl.Locked && !middleware.IsAdmin(r) {
		err := &ErrTemplateLocked{TemplateID: tmpl.ID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := r.ParseMultipartForm(maxTemplatePDFBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxTemplatePDFBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		s.errorResponse(w, http.StatusBadRequest, "Uploaded file is not a PDF")
		return
	}

	path, err := s.storage.SaveUpload(tmpl.Name, data)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store file: "+err.Error())
		return
	}

	if err := s.db.SetTemplateFile(r.Context(), tmpl.ID, path); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"template_id": tmpl.ID,
		"file_path":   path,
	})
}

// handlePreviewTemplate previews a stored template against sample request
// data without rendering a PDF.
func (s *Server) handlePreviewTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl := s.loadTemplate(w, r)
	if tmpl == nil {
		return
	}
	if tmpl.FixedPDF {
		s.errorResponse(w, http.StatusBadRequest, "Fixed-PDF template has no markup to preview")
		return
	}

	req := s.decodeGenerateRequest(w, r)
	if req == nil {
		return
	}
	req.TemplateID = tmpl.ID.String()
	req.DesignID = ""

	result, err := s.letters.Preview(r.Context(), req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Template preview failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"html":     result.HTML,
		"subject":  result.Subject,
		"mode":     result.Mode,
		"warnings": result.Warnings,
	})
}

// loadTemplate parses the path ID and loads the template, writing the error
// response itself when either step fails.
func (s *Server) loadTemplate(w http.ResponseWriter, r *http.Request) *db.LetterTemplate {
	idStr := r.PathValue("id")
	templateID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid template ID")
		return nil
	}

	tmpl, err := s.db.GetTemplate(r.Context(), templateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil
	}
	if tmpl == nil {
		s.errorResponse(w, http.StatusNotFound, "Template not found")
		return nil
	}
	return tmpl
}
