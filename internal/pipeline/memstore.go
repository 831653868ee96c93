package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/types"
)

// MemoryStore keeps records in process memory, following the same lookup,
// dedup and default-résumé rules as db.DB. Nothing survives a restart.
type MemoryStore struct {
	mu          sync.Mutex
	nextID      int64
	defaultID   int64
	resumes     map[int64]*db.Resume
	jds         map[int64]*db.JobDescription
	sessions    map[int64]*db.Session
	suggestions map[string]*db.SuggestionRecord
	order       []string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		resumes:     map[int64]*db.Resume{},
		jds:         map[int64]*db.JobDescription{},
		sessions:    map[int64]*db.Session{},
		suggestions: map[string]*db.SuggestionRecord{},
	}
}

func (m *MemoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

func notFoundErr(what string, id any) error {
	return fmt.Errorf("%s %v: %w", what, id, db.ErrNotFound)
}

func copyResume(rec *db.Resume) *db.Resume {
	out := *rec
	out.Data = *rec.Data.Clone()
	return &out
}

// SaveResume stores a résumé and makes it the default
func (m *MemoryStore) SaveResume(_ context.Context, filename string, data *types.ResumeData) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	rec := &db.Resume{ID: m.id(), Filename: filename, Data: *data.Clone(), IsDefault: true, CreatedAt: now, UpdatedAt: now}
	if prev, ok := m.resumes[m.defaultID]; ok {
		prev.IsDefault = false
	}
	m.resumes[rec.ID] = rec
	m.defaultID = rec.ID
	return copyResume(rec), nil
}

func (m *MemoryStore) GetResume(_ context.Context, id int64) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getResume(id)
}

func (m *MemoryStore) getResume(id int64) (*db.Resume, error) {
	rec, ok := m.resumes[id]
	if !ok {
		return nil, notFoundErr("resume", id)
	}
	return copyResume(rec), nil
}

func (m *MemoryStore) GetDefaultResume(_ context.Context) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.defaultID == 0 {
		return nil, notFoundErr("resume", "default")
	}
	return m.getResume(m.defaultID)
}

// SaveJobDescription stores jd, replacing the record with the same content hash
func (m *MemoryStore) SaveJobDescription(_ context.Context, jd *types.JobDescription, sourceURL string) (*db.JobDescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hash := db.HashJobContent(jd.RawText)
	for _, rec := range m.jds {
		if rec.ContentHash == hash {
			rec.Data = *jd
			if sourceURL != "" {
				rec.SourceURL = sourceURL
			}
			out := *rec
			return &out, nil
		}
	}
	rec := &db.JobDescription{ID: m.id(), SourceURL: sourceURL, ContentHash: hash, Data: *jd, CreatedAt: time.Now().UTC()}
	m.jds[rec.ID] = rec
	out := *rec
	return &out, nil
}

func (m *MemoryStore) GetJobDescription(_ context.Context, id int64) (*db.JobDescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.jds[id]
	if !ok {
		return nil, notFoundErr("job description", id)
	}
	out := *rec
	return &out, nil
}

// UpsertSession records the latest score for a pair. A nil fit keeps the previous one.
func (m *MemoryStore) UpsertSession(_ context.Context, resumeID, jdID int64, score *types.ScoreBreakdown, fit *types.SemanticFit) (*db.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	for _, s := range m.sessions {
		if s.ResumeID == resumeID && s.JobDescriptionID == jdID {
			s.Score = score
			if fit != nil {
				s.SemanticFit = fit
			}
			s.UpdatedAt = now
			out := *s
			return &out, nil
		}
	}
	s := &db.Session{ID: m.id(), ResumeID: resumeID, JobDescriptionID: jdID, Score: score, SemanticFit: fit, CreatedAt: now, UpdatedAt: now}
	m.sessions[s.ID] = s
	out := *s
	return &out, nil
}

func (m *MemoryStore) GetSession(_ context.Context, id int64) (*db.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, notFoundErr("session", id)
	}
	out := *s
	return &out, nil
}

func (m *MemoryStore) SaveSuggestions(_ context.Context, sessionID int64, list []types.Suggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return notFoundErr("session", sessionID)
	}
	for _, s := range list {
		if _, ok := m.suggestions[s.ID]; !ok {
			m.order = append(m.order, s.ID)
		}
		m.suggestions[s.ID] = &db.SuggestionRecord{Suggestion: s, SessionID: sessionID}
	}
	return nil
}

func (m *MemoryStore) GetSuggestion(_ context.Context, id string) (*db.SuggestionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.suggestions[id]
	if !ok {
		return nil, notFoundErr("suggestion", id)
	}
	out := *rec
	return &out, nil
}

// ListSuggestions returns a session's suggestions in insertion order
func (m *MemoryStore) ListSuggestions(_ context.Context, sessionID int64, status types.Status) ([]db.SuggestionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.SuggestionRecord
	for _, id := range m.order {
		rec := m.suggestions[id]
		if rec.SessionID == sessionID && (status == "" || rec.Status == status) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateSuggestion(_ context.Context, s *types.Suggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.suggestions[s.ID]
	if !ok {
		return notFoundErr("suggestion", s.ID)
	}
	rec.Suggestion = *s
	return nil
}

// ResolveSuggestion runs fn on copies of the suggestion and its session's
// résumé and keeps both only when fn succeeds.
func (m *MemoryStore) ResolveSuggestion(_ context.Context, id string, fn func(*types.ResumeData, *types.Suggestion) error) (*db.Resume, *db.SuggestionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.suggestions[id]
	if !ok {
		return nil, nil, notFoundErr("suggestion", id)
	}
	session, ok := m.sessions[stored.SessionID]
	if !ok {
		return nil, nil, notFoundErr("session", stored.SessionID)
	}
	resume, ok := m.resumes[session.ResumeID]
	if !ok {
		return nil, nil, notFoundErr("resume", session.ResumeID)
	}

	data := resume.Data.Clone()
	rec := *stored
	if err := fn(data, &rec.Suggestion); err != nil {
		return nil, nil, err
	}
	resume.Data = *data
	resume.UpdatedAt = time.Now().UTC()
	*stored = rec

	return copyResume(resume), &rec, nil
}
