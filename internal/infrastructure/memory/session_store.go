package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

// SessionStore sesiones en memoria del proceso; se pierden al reiniciar.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
	now      func() time.Time
}

// NewSessionStore construye el store vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]entity.Session), now: time.Now}
}

// Save guarda la sesión bajo su token ID.
func (s *SessionStore) Save(_ context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.TokenID] = *session
	return nil
}

// Get obtiene la sesión; una sesión vencida se descarta.
func (s *SessionStore) Get(_ context.Context, tokenID string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tokenID]
	if !ok {
		return nil, nil
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, tokenID)
		return nil, nil
	}
	return &sess, nil
}

// Delete elimina la sesión. Borrar una inexistente no es error.
func (s *SessionStore) Delete(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenID)
	return nil
}

// Len número de sesiones guardadas (vencidas incluidas).
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
