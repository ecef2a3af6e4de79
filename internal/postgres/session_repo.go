package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/healthcareplus/consult-service/internal/domain"
)

type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type SessionRepository struct {
	db Querier
}

func NewSessionRepository(db Querier) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	s.ID = uuid.NewString()
	s.Participants = []string{}
	query := `
		INSERT INTO video_sessions (id, created_by)
		VALUES ($1, $2)
		RETURNING created_at`
	return r.db.QueryRow(ctx, query, s.ID, s.CreatedBy).Scan(&s.CreatedAt)
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	query := `SELECT id, created_by, created_at FROM video_sessions WHERE id=$1`
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.CreatedBy, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM session_participants WHERE session_id=$1 ORDER BY joined_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s.Participants = []string{}
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		s.Participants = append(s.Participants, uid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) AddParticipant(ctx context.Context, sessionID, userID string) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM video_sessions WHERE id=$1)`, sessionID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrSessionNotFound
	}

	cmd, err := r.db.Exec(ctx, `
		INSERT INTO session_participants (session_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, sessionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyJoined
	}
	return nil
}

func (r *SessionRepository) RemoveParticipant(ctx context.Context, sessionID, userID string) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM session_participants WHERE session_id=$1 AND user_id=$2`, sessionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotInSession
	}
	return nil
}
