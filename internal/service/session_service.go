package service

import (
	"context"
	"fmt"

	"github.com/healthcareplus/consult-service/internal/domain"
)

// SessionRepo — узкий контракт хранилища сессий (memory или postgres).
type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	AddParticipant(ctx context.Context, sessionID, userID string) error
	RemoveParticipant(ctx context.Context, sessionID, userID string) error
}

type SessionService struct {
	repo SessionRepo
}

func NewSessionService(repo SessionRepo) *SessionService {
	return &SessionService{repo: repo}
}

// CreateSession создаёт сессию для авторизованного пользователя.
func (s *SessionService) CreateSession(ctx context.Context, createdBy string) (*domain.Session, error) {
	sess := &domain.Session{
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("sessionRepo.Create: %w", err)
	}
	return sess, nil
}

// GetSession возвращает сессию по ID.
func (s *SessionService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	return s.repo.Get(ctx, id)
}

// JoinSession добавляет участника в сессию. Повторный join того же
// пользователя не считается ошибкой на уровне relay.
func (s *SessionService) JoinSession(ctx context.Context, sessionID, userID string) error {
	return s.repo.AddParticipant(ctx, sessionID, userID)
}

func (s *SessionService) LeaveSession(ctx context.Context, sessionID, userID string) error {
	return s.repo.RemoveParticipant(ctx, sessionID, userID)
}
