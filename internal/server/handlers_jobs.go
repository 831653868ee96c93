package server

import (
	"net/http"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

// JobDescriptionResponse is returned after a job description is stored
type JobDescriptionResponse struct {
	JobDescription *db.JobDescription  `json:"job_description"`
	Source         *ingestion.Metadata `json:"source"`
	Issues         []string            `json:"issues,omitempty"`
}

// handleCreateJobDescription parses and stores a posting from text or a URL
func (s *Server) handleCreateJobDescription(w http.ResponseWriter, r *http.Request) {
	var req JobDescriptionRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}
	res, err := s.svc.AddJobDescription(r.Context(), pipeline.JobInput{Text: req.Text, URL: req.URL})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, JobDescriptionResponse{
		JobDescription: res.Record,
		Source:         res.Meta,
		Issues:         issueStrings(res.Issues),
	})
}

// handleGetJobDescription returns one stored job description
func (s *Server) handleGetJobDescription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	rec, err := s.svc.JobDescription(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}
