package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/hrm-letters/internal/db"
	"github.com/jonathan/hrm-letters/internal/types"
)

// handleListEmployees lists all employee records
func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.db.ListEmployees(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"employees": employees,
		"count":     len(employees),
	})
}

// handleCreateEmployee creates a new employee record
func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req types.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	joiningDate := parseEmployeeDate(req.JoiningDate)
	id, err := s.db.CreateEmployee(r.Context(), req.Name, req.Email, req.Role, joiningDate)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	employee, err := s.db.GetEmployee(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, employee)
}

// handleGetEmployee retrieves an employee by ID
func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := s.loadEmployee(w, r)
	if employee == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, employee)
}

// handleUpdateEmployee edits an employee record
func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employee := s.loadEmployee(w, r)
	if employee == nil {
		return
	}

	var req types.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	employee.Name = req.Name
	employee.Email = req.Email
	employee.Role = req.Role
	employee.JoiningDate = parseEmployeeDate(req.JoiningDate)

	if err := s.db.UpdateEmployee(r.Context(), employee); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, employee)
}

// handleDeleteEmployee removes an employee. Generated-letter history rows
// cascade with the parent.
func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := s.loadEmployee(w, r)
	if employee == nil {
		return
	}

	if err := s.db.DeleteEmployee(r.Context(), employee.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"deleted": employee.ID})
}

// handleListEmployeeLetters returns an employee's letter history, newest first
func (s *Server) handleListEmployeeLetters(w http.ResponseWriter, r *http.Request) {
	employee := s.loadEmployee(w, r)
	if employee == nil {
		return
	}

	records, err := s.db.ListGeneratedLetters(r.Context(), employee.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	views := make([]types.GeneratedLetterView, 0, len(records))
	for _, rec := range records {
		views = append(views, types.GeneratedLetterView{
			ID:        rec.ID,
			Name:      rec.Name,
			Type:      rec.Type,
			FileURL:   rec.FileURL,
			CreatedAt: rec.CreatedAt,
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"letters": views,
		"count":   len(views),
	})
}

// loadEmployee parses the path ID and loads the employee, writing the error
// response itself when either step fails.
func (s *Server) loadEmployee(w http.ResponseWriter, r *http.Request) *db.Employee {
	idStr := r.PathValue("id")
	employeeID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid employee ID")
		return nil
	}

	employee, err := s.db.GetEmployee(r.Context(), employeeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil
	}
	if employee == nil {
		s.errorResponse(w, http.StatusNotFound, "Employee not found")
		return nil
	}
	return employee
}

// parseEmployeeDate converts a request date string into a nullable time.
func parseEmployeeDate(s string) *time.Time {
	t := types.ParseDate(s)
	if t.IsZero() {
		return nil
	}
	return &t
}
