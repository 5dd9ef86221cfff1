package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/crolens/cro-report/internal/report"
)

// Session holds the state of one completed analysis: the immutable report
// and the rendered HTML surface both export paths capture.
type Session struct {
	ID        string
	Report    *report.AnalysisReport
	HTML      string
	CreatedAt time.Time

	busy atomic.Bool
}

// tryAcquire marks the session busy for one export operation. It reports
// false when another operation is already running, mirroring the disabled
// export control in the view.
func (s *Session) tryAcquire() bool {
	return s.busy.CompareAndSwap(false, true)
}

func (s *Session) release() {
	s.busy.Store(false)
}

// Store keeps analysis sessions in memory until they expire. Nothing is
// persisted; a restarted server starts empty.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates a Store whose sessions live for ttl after creation.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Put registers a new session for the given report and rendered surface.
// Expired sessions are swept on every insert.
func (st *Store) Put(rep *report.AnalysisReport, html string) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Report:    rep,
		HTML:      html,
		CreatedAt: st.now(),
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	for id, old := range st.sessions {
		if st.now().Sub(old.CreatedAt) > st.ttl {
			delete(st.sessions, id)
		}
	}
	st.sessions[s.ID] = s
	return s
}

// Get returns the session with the given id, or false when it does not
// exist or has expired.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if st.now().Sub(s.CreatedAt) > st.ttl {
		delete(st.sessions, id)
		return nil, false
	}
	return s, true
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
