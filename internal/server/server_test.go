package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

const serverTestSecret = "0123456789abcdef0123456789abcdef"

type fakeHealth struct{ err error }

func (f fakeHealth) Ping(context.Context) error { return f.err }

type testEnv struct {
	server *Server
	store  *pipeline.MemoryStore
	jdID   int64
}

func newTestEnv(t *testing.T, cfg config.ServerConfig) *testEnv {
	t.Helper()
	store := pipeline.NewMemoryStore()
	ctx := context.Background()

	_, err := store.SaveResume(ctx, "resume.pdf", &types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Summary:      "Backend engineer",
		Experience: []types.ExperienceEntry{{
			Company: "Acme",
			Title:   "Engineer",
			Bullets: []types.BulletPoint{{Text: "Built payment APIs in Go"}},
		}},
		Skills: []string{"Go", "SQL"},
	})
	require.NoError(t, err)

	jd := &types.JobDescription{
		RoleTitle:      "Senior Engineer",
		RawText:        "Senior Engineer. Go and AWS required.",
		RequiredSkills: []string{"Go", "AWS"},
		Keywords:       []string{"Go", "payments"},
	}
	jd.Normalize()
	rec, err := store.SaveJobDescription(ctx, jd, "")
	require.NoError(t, err)

	s, err := New(Options{Config: cfg, Service: pipeline.NewService(pipeline.Deps{Store: store})})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return &testEnv{server: s, store: store, jdID: rec.ID}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{Service: pipeline.NewService(pipeline.Deps{}), Config: config.ServerConfig{JWTSecret: "short"}})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	env.server.health = fakeHealth{err: errors.New("connection refused")}
	rec = env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", decode[map[string]string](t, rec)["status"])
}

func TestRequestID_Propagated(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodGet, "/health", nil, "X-Request-ID", "abc-123")
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestScoreEndpoint(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantErr    string
	}{
		{name: "default resume", body: PairRequest{JobDescriptionID: env.jdID}, wantStatus: http.StatusOK},
		{name: "missing job description", body: map[string]any{"resume_id": 0}, wantStatus: http.StatusBadRequest, wantErr: "job_description_id"},
		{name: "unknown job description", body: PairRequest{JobDescriptionID: 999}, wantStatus: http.StatusNotFound},
		{name: "unknown resume", body: PairRequest{ResumeID: 999, JobDescriptionID: env.jdID}, wantStatus: http.StatusNotFound},
		{name: "invalid json", body: "{", wantStatus: http.StatusBadRequest, wantErr: "invalid JSON"},
		{name: "empty body", body: nil, wantStatus: http.StatusBadRequest, wantErr: "request body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/score", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantErr != "" {
				assert.Contains(t, decode[map[string]string](t, rec)["error"], tt.wantErr)
			}
		})
	}

	rec := env.do(t, http.MethodPost, "/score", PairRequest{JobDescriptionID: env.jdID})
	res := decode[pipeline.ScoreResult](t, rec)
	assert.NotZero(t, res.SessionID)
	assert.Contains(t, res.Breakdown.MissingSkills, "AWS")
	assert.Contains(t, res.Breakdown.MatchedSkills, "Go")
}

func TestFitSummaryEndpoint(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodPost, "/fit-summary", PairRequest{JobDescriptionID: env.jdID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[pipeline.FitResult](t, rec)
	assert.Equal(t, "Senior Engineer", res.Role)
	assert.NotEmpty(t, res.Summary.Summary)
}

func TestJobDescriptionEndpoints(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})

	rec := env.do(t, http.MethodPost, "/job-descriptions", JobDescriptionRequest{Text: "Data Engineer\nRequirements\n• Python\n• Spark"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[JobDescriptionResponse](t, rec)
	require.NotNil(t, created.JobDescription)
	assert.NotZero(t, created.JobDescription.ID)

	rec = env.do(t, http.MethodGet, "/job-descriptions/"+itoa(created.JobDescription.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name string
		body any
	}{
		{name: "neither", body: JobDescriptionRequest{}},
		{name: "both", body: JobDescriptionRequest{Text: "Engineer", URL: "https://example.com/job"}},
		{name: "bad url", body: JobDescriptionRequest{URL: "not a url"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/job-descriptions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	rec = env.do(t, http.MethodGet, "/job-descriptions/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResumeEndpoints(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})

	rec := env.do(t, http.MethodGet, "/resumes/default", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Doe")

	rec = env.do(t, http.MethodGet, "/resumes/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadResume_Rejects(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{MaxUploadBytes: 64})

	upload := func(field, filename string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/resumes", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		env.server.Handler().ServeHTTP(rec, req)
		return rec
	}

	tests := []struct {
		name       string
		field      string
		filename   string
		content    []byte
		wantStatus int
	}{
		{name: "missing file field", field: "upload", filename: "resume.pdf", content: []byte("x"), wantStatus: http.StatusBadRequest},
		{name: "unsupported format", field: "file", filename: "resume.txt", content: []byte("plain text"), wantStatus: http.StatusBadRequest},
		{name: "too large", field: "file", filename: "resume.pdf", content: bytes.Repeat([]byte("x"), 128), wantStatus: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := upload(tt.field, tt.filename, tt.content)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}

	rec := env.do(t, http.MethodPost, "/resumes", `{"not":"multipart"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestionReviewFlow(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})

	rec := env.do(t, http.MethodPost, "/suggestions", SuggestRequest{PairRequest: PairRequest{JobDescriptionID: env.jdID}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	batch := decode[pipeline.SuggestResult](t, rec)
	require.NotEmpty(t, batch.Suggestions)

	var skill *types.Suggestion
	for i := range batch.Suggestions {
		if batch.Suggestions[i].SectionType == types.SectionSkill {
			skill = &batch.Suggestions[i]
			break
		}
	}
	require.NotNil(t, skill, "expected a skill gap suggestion")

	rec = env.do(t, http.MethodGet, "/sessions/"+itoa(batch.SessionID)+"/suggestions?status=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[SuggestionListResponse](t, rec).Suggestions, len(batch.Suggestions))

	rec = env.do(t, http.MethodPost, "/suggestions/"+skill.ID+"/accept", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[pipeline.Outcome](t, rec)
	assert.True(t, out.Applied)
	assert.Equal(t, types.StatusAccepted, out.Suggestion.Status)
	require.NotNil(t, out.Score)
	assert.Greater(t, out.Score.Breakdown.ATSScore, batch.ATSScore)

	rec = env.do(t, http.MethodPost, "/suggestions/"+skill.ID+"/accept", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/suggestions/"+skill.ID+"/refine", RefineRequest{Feedback: "shorter"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, "/sessions/"+itoa(batch.SessionID)+"/suggestions?status=accepted", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[SuggestionListResponse](t, rec).Suggestions, 1)

	rec = env.do(t, http.MethodGet, "/sessions/"+itoa(batch.SessionID)+"/suggestions?status=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestionActions_Errors(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
	}{
		{name: "accept unknown", path: "/suggestions/nope/accept", wantStatus: http.StatusNotFound},
		{name: "reject unknown", path: "/suggestions/nope/reject", wantStatus: http.StatusNotFound},
		{name: "edit without text", path: "/suggestions/nope/edit", body: EditRequest{}, wantStatus: http.StatusBadRequest},
		{name: "edit too long", path: "/suggestions/nope/edit", body: EditRequest{EditedText: strings.Repeat("x", 501)}, wantStatus: http.StatusBadRequest},
		{name: "refine without feedback", path: "/suggestions/nope/refine", body: RefineRequest{}, wantStatus: http.StatusBadRequest},
		{name: "suggest too many", path: "/suggestions", body: SuggestRequest{PairRequest: PairRequest{JobDescriptionID: env.jdID}, MaxCount: 51}, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestMatchEndpoint(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodPost, "/match", MatchRequest{
		JobDescription: JobDescriptionRequest{Text: "Platform Engineer\nRequirements\n• Go\n• Kubernetes"},
		MaxCount:       3,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[pipeline.MatchResult](t, rec)
	require.NotNil(t, res.Fit)
	require.NotNil(t, res.Suggestions)
	assert.Equal(t, res.Fit.SessionID, res.Suggestions.SessionID)
	assert.LessOrEqual(t, len(res.Suggestions.Suggestions), 3)

	rec = env.do(t, http.MethodPost, "/match", MatchRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchStreamEndpoint(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodPost, "/match/stream", MatchRequest{
		JobDescription: JobDescriptionRequest{Text: "Platform Engineer\nRequirements\n• Go"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: step\ndata: {\"step\":\""+pipeline.StepJobDescription)
	assert.Contains(t, body, "event: complete\n")
	assert.Less(t, strings.Index(body, pipeline.StepScore), strings.Index(body, "event: complete"))
}

func TestMatchStreamEndpoint_Error(t *testing.T) {
	s, err := New(Options{Service: pipeline.NewService(pipeline.Deps{Store: pipeline.NewMemoryStore()})})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)

	body := `{"job_description":{"text":"Engineer\nRequirements\n• Go"}}`
	req := httptest.NewRequest(http.MethodPost, "/match/stream", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "event: error\n")
	assert.Contains(t, rec.Body.String(), `"status":400`)
	assert.NotContains(t, rec.Body.String(), "event: complete")
}

func TestStorageDisabled(t *testing.T) {
	s, err := New(Options{Service: pipeline.NewService(pipeline.Deps{})})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)

	req := httptest.NewRequest(http.MethodGet, "/resumes/default", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthentication(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{JWTSecret: serverTestSecret})
	jwtConfig, err := env.server.cfg.JWT()
	require.NoError(t, err)
	token, err := NewTokenService(jwtConfig).GenerateToken("cli")
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		header     []string
		wantStatus int
	}{
		{name: "health is public", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "metrics is public", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "no token", method: http.MethodGet, path: "/resumes/default", wantStatus: http.StatusUnauthorized},
		{name: "bad token", method: http.MethodGet, path: "/resumes/default", header: []string{"Authorization", "Bearer nope"}, wantStatus: http.StatusUnauthorized},
		{name: "valid token", method: http.MethodGet, path: "/resumes/default", header: []string{"Authorization", "Bearer " + token}, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, nil, tt.header...)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{RateLimit: 0.01, RateBurst: 1})

	rec := env.do(t, http.MethodPost, "/score", PairRequest{JobDescriptionID: env.jdID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	rec = env.do(t, http.MethodPost, "/score", PairRequest{JobDescriptionID: env.jdID})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, rec)["error"])

	// health stays reachable
	rec = env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSMiddleware(t *testing.T) {
	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	env = newTestEnv(t, config.ServerConfig{CORSOrigin: "https://app.example.com"})
	rec = env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = env.do(t, http.MethodOptions, "/score", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSSEWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent("step", map[string]string{"step": "score"}))
	sse.WriteError(http.StatusBadGateway, "model unavailable")
	sse.WriteComplete(map[string]int{"session_id": 7})

	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "event: step\ndata: {\"step\":\"score\"}\n\n"+
		"event: error\ndata: {\"error\":\"model unavailable\",\"status\":502}\n\n"+
		"event: complete\ndata: {\"session_id\":7}\n\n", rec.Body.String())
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
