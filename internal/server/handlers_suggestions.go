package server

import (
	"net/http"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

// SuggestionListResponse lists the stored suggestions of a session
type SuggestionListResponse struct {
	SessionID   int64                 `json:"session_id"`
	Suggestions []db.SuggestionRecord `json:"suggestions"`
}

// handleSuggest generates and stores a batch of suggestions for a pair
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}
	res, err := s.svc.Suggest(r.Context(), req.ResumeID, req.JobDescriptionID, req.MaxCount, req.Feedback)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, res)
}

// handleListSuggestions lists a session's suggestions, optionally filtered by ?status=
func (s *Server) handleListSuggestions(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "id")
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	list, err := s.svc.Suggestions(r.Context(), sessionID, types.Status(r.URL.Query().Get("status")))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if list == nil {
		list = []db.SuggestionRecord{}
	}
	s.jsonResponse(w, http.StatusOK, SuggestionListResponse{SessionID: sessionID, Suggestions: list})
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	s.resolveResponse(w, r, func(id string) (*pipeline.Outcome, error) {
		return s.svc.Accept(r.Context(), id)
	})
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	s.resolveResponse(w, r, func(id string) (*pipeline.Outcome, error) {
		return s.svc.Reject(r.Context(), id)
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req EditRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.resolveResponse(w, r, func(id string) (*pipeline.Outcome, error) {
		return s.svc.Edit(r.Context(), id, req.EditedText)
	})
}

// resolveResponse runs one review action on the suggestion named in the path
func (s *Server) resolveResponse(w http.ResponseWriter, r *http.Request, action func(id string) (*pipeline.Outcome, error)) {
	out, err := action(r.PathValue("id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleRefine rewrites a pending suggestion from reviewer feedback
func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req RefineRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}
	refined, err := s.svc.Refine(r.Context(), r.PathValue("id"), req.Feedback)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, refined)
}
