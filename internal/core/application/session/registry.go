package session

import (
	"context"
	"sync"

	"bolpurmart/internal/core/ports"

	"go.uber.org/zap"
)

// Registry keeps one Session per session token for the life of the process.
type Registry struct {
	ctx      context.Context
	provider ports.SessionProvider
	views    Views
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	onCount  func(n int)
}

// NewRegistry creates a registry whose sessions live until sign-out or until ctx ends.
func NewRegistry(ctx context.Context, provider ports.SessionProvider, views Views, logger *zap.Logger) *Registry {
	return &Registry{
		ctx:      ctx,
		provider: provider,
		views:    views,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// OnSessionsChanged registers fn to receive the number of open sessions.
func (r *Registry) OnSessionsChanged(fn func(n int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onCount = fn
}

// Get returns the session for token, opening it on first use. Opening verifies the
// token, so it runs without holding the registry lock; when two callers open the same
// token at once the first one registered wins and the other session is closed.
func (r *Registry) Get(token string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[token]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	s, err := open(r.ctx, r.provider, r.views, token, r.logger, func() { r.forget(token, s) })
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if existing, ok := r.sessions[token]; ok {
		r.mu.Unlock()
		s.SignOut()
		return existing, nil
	}
	r.sessions[token] = s
	r.notify()
	r.mu.Unlock()
	return s, nil
}

// SignOut ends the session for token, if any, before returning.
func (r *Registry) SignOut(token string) {
	r.mu.Lock()
	s, ok := r.sessions[token]
	r.mu.Unlock()
	if ok {
		s.SignOut()
	}
}

// Close signs out every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.SignOut()
	}
}

func (r *Registry) forget(token string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[token] == s {
		delete(r.sessions, token)
		r.notify()
	}
}

func (r *Registry) notify() {
	if r.onCount != nil {
		r.onCount(len(r.sessions))
	}
}
