package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/types"
)

// uploadField is the multipart field carrying the résumé file
const uploadField = "file"

// ResumeUploadResponse is returned after a résumé upload
type ResumeUploadResponse struct {
	Resume *db.Resume `json:"resume"`
	Issues []string   `json:"issues,omitempty"`
}

// handleUploadResume extracts an uploaded PDF or DOCX and stores it as the default résumé
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "uploaded file is too large")
			return
		}
		s.serviceError(w, r, &ErrValidation{Field: uploadField, Message: "expected a multipart form upload"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		s.serviceError(w, r, &ErrValidation{Field: uploadField, Message: "is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "uploaded file is too large")
		return
	}

	rec, issues, err := s.svc.UploadResume(r.Context(), filepath.Base(header.Filename), data)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, ResumeUploadResponse{Resume: rec, Issues: issueStrings(issues)})
}

// handleGetDefaultResume returns the current default résumé
func (s *Server) handleGetDefaultResume(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Resume(r.Context(), 0)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleGetResume returns one stored résumé
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	rec, err := s.svc.Resume(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

func issueStrings(issues types.Issues) []string {
	if len(issues) == 0 {
		return nil
	}
	return issues.Strings()
}
