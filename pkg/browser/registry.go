package browser

import (
	"sort"
	"sync"
)

// Registry tracks every open session and which one is active. All
// bookkeeping — the session map, the active pointer and the capacity
// bound — sits behind a single mutex so a multi-threaded transport can
// dispatch calls concurrently.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	active      string
	maxSessions int
}

// NewRegistry creates a registry bounded to maxSessions concurrent
// sessions. Non-positive values fall back to DefaultMaxSessions.
func NewRegistry(maxSessions int) *Registry {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Registry{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
	}
}

// Register inserts the session. When no session is active yet, the new one
// becomes active. Fails closed at capacity: the registry size never
// exceeds the configured maximum.
func (r *Registry) Register(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sessions) >= r.maxSessions {
		return newError(ErrCapacityExceeded,
			"maximum number of sessions (%d) reached", r.maxSessions).
			WithHint("close an existing session before starting another")
	}

	r.sessions[s.ID] = s
	if r.active == "" {
		r.active = s.ID
	}
	return nil
}

// Get resolves the explicit id when given, otherwise the active session.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id == "" {
		if r.active == "" {
			return nil, newError(ErrNoActiveSession, "no active browser session").
				WithHint("start a session with start_browser first")
		}
		id = r.active
	}

	s, ok := r.sessions[id]
	if !ok {
		return nil, newError(ErrInvalidSession, "unknown session: %s", id)
	}
	return s, nil
}

// Remove deletes the entry. If it was the active session, the active
// pointer moves to an arbitrary remaining session, or is cleared when the
// registry becomes empty.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return newError(ErrInvalidSession, "unknown session: %s", id)
	}
	delete(r.sessions, id)

	if r.active == id {
		r.active = ""
		for remaining := range r.sessions {
			r.active = remaining
			break
		}
	}
	return nil
}

// SetActive makes the named session the implicit target of operations that
// omit a session id.
func (r *Registry) SetActive(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return newError(ErrInvalidSession, "unknown session: %s", id)
	}
	r.active = id
	return nil
}

// Active returns the active session id, empty when none.
func (r *Registry) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Capacity returns the configured maximum concurrent session count.
func (r *Registry) Capacity() int {
	return r.maxSessions
}

// IDs returns a snapshot of the registered session ids.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

// List returns a summary per session, ordered by creation time. Live page
// reads happen outside the lock; a session whose driver has died reports
// sentinel values instead of failing the listing.
func (r *Registry) List() []SessionSummary {
	r.mu.RLock()
	snapshot := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		snapshot = append(snapshot, s)
	}
	active := r.active
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].CreatedAt.Before(snapshot[j].CreatedAt)
	})

	summaries := make([]SessionSummary, 0, len(snapshot))
	for _, s := range snapshot {
		url, title := s.pageState()
		summaries = append(summaries, SessionSummary{
			ID:           s.ID,
			Kind:         string(s.Kind),
			CurrentURL:   url,
			Title:        title,
			CreatedAt:    s.CreatedAt,
			LastActivity: s.LastActivity(),
			Active:       s.ID == active,
		})
	}
	return summaries
}
