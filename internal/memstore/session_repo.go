package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/healthcareplus/consult-service/internal/domain"
)

// SessionRepository хранит сессии в памяти процесса.
// TTL == 0 означает, что сессии живут до рестарта.
type SessionRepository struct {
	mu sync.Mutex // сериализует мутации participants
	c  *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	exp := cache.NoExpiration
	var cleanup time.Duration
	if ttl > 0 {
		exp = ttl
		cleanup = ttl
	}
	return &SessionRepository{c: cache.New(exp, cleanup)}
}

func (r *SessionRepository) Create(_ context.Context, s *domain.Session) error {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	s.Participants = []string{}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *s
	stored.Participants = append([]string(nil), s.Participants...)
	r.c.SetDefault(stored.ID, &stored)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.getLocked(id)
	if err != nil {
		return nil, err
	}
	out := *s
	out.Participants = append([]string(nil), s.Participants...)
	return &out, nil
}

func (r *SessionRepository) AddParticipant(_ context.Context, sessionID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.getLocked(sessionID)
	if err != nil {
		return err
	}
	if s.HasParticipant(userID) {
		return domain.ErrAlreadyJoined
	}
	s.Participants = append(s.Participants, userID)
	// SetDefault обновляет и TTL — активная сессия не истекает
	r.c.SetDefault(sessionID, s)
	return nil
}

func (r *SessionRepository) RemoveParticipant(_ context.Context, sessionID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.getLocked(sessionID)
	if err != nil {
		return err
	}
	if !s.HasParticipant(userID) {
		return domain.ErrNotInSession
	}
	kept := s.Participants[:0]
	for _, p := range s.Participants {
		if p != userID {
			kept = append(kept, p)
		}
	}
	s.Participants = kept
	r.c.SetDefault(sessionID, s)
	return nil
}

func (r *SessionRepository) getLocked(id string) (*domain.Session, error) {
	v, ok := r.c.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return v.(*domain.Session), nil
}
