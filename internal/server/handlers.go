package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/pipeline"
)

func (m *MatchRequest) toPipeline() pipeline.MatchRequest {
	return pipeline.MatchRequest{
		ResumeID:       m.ResumeID,
		Job:            pipeline.JobInput{Text: m.JobDescription.Text, URL: m.JobDescription.URL},
		MaxSuggestions: m.MaxCount,
	}
}

// handleScore scores a stored résumé against a stored job description
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}
	res, err := s.svc.Score(r.Context(), req.ResumeID, req.JobDescriptionID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

// handleFitSummary scores the pair and explains the fit
func (s *Server) handleFitSummary(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}
	res, err := s.svc.FitSummary(r.Context(), req.ResumeID, req.JobDescriptionID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

// handleMatch runs the whole flow for a new posting and returns every artifact
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}
	res, err := s.svc.Match(r.Context(), req.toPipeline())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

// handleMatchStream runs the whole flow and streams progress via SSE
func (s *Server) handleMatchStream(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := req.toPipeline()
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			s.logger.Warn("failed to write SSE event", zap.String("step", event.Step), zap.Error(err))
		}
	}

	res, err := s.svc.Match(r.Context(), opts)
	if err != nil {
		status := HTTPStatus(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			s.logger.Error("streamed match failed", zap.Error(err))
			message = http.StatusText(status)
		}
		sse.WriteError(status, message)
		return
	}
	sse.WriteComplete(res)
}
