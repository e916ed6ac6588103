package memory

import (
	"context"
	"sync"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
)

// SessionRepo хранит UserContext каждой сессии в памяти процесса.
// Контекст создается при первом обращении и живет до Reset или остановки процесса.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.UserContext
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]*domain.UserContext)}
}

func (r *SessionRepo) Get(_ context.Context, sessionID string) (*domain.UserContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uc, ok := r.sessions[sessionID]
	if !ok {
		uc = domain.NewUserContext()
		r.sessions[sessionID] = uc
	}

	return uc, nil
}

func (r *SessionRepo) Reset(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}
