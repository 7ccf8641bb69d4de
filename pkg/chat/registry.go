package chat

import "sync"

// Registry is an in-memory collection of live sessions keyed by session ID.
// Sessions exist only for the lifetime of the process; there is no
// persistence.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Create makes a new session with the given settings and registers it.
func (r *Registry) Create(cfg Config) *Session {
	sess := NewSession()
	sess.SetConfig(cfg)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ID()] = sess

	return sess
}

// Get returns the session with the given ID, if registered.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Remove drops the session with the given ID.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
