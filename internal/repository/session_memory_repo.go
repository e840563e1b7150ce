package repository

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

// memorySessionRepository is the default single-process session store.
type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	log      *logrus.Logger
}

func NewMemorySessionRepository(logger *logrus.Logger) domain.SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]domain.Session),
		log:      logger,
	}
}

func (r *memorySessionRepository) GetOrCreate(ctx context.Context, id string) (domain.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return cloneSession(session), nil
	}

	r.log.Debugf("Session %s not found, starting a fresh one", id)
	return domain.Session{ID: id}, nil
}

func (r *memorySessionRepository) Save(ctx context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// cloneSession deep-copies the cart lines so callers cannot mutate
// stored state without going through Save.
func cloneSession(session domain.Session) domain.Session {
	lines := make([]domain.CartLine, len(session.Cart.Lines))
	copy(lines, session.Cart.Lines)
	session.Cart.Lines = lines
	return session
}
