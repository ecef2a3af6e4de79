package domain

import "time"

// Session — одна комната видеоконсультации.
type Session struct {
	ID           string    `db:"id"`
	CreatedBy    string    `db:"created_by"`
	CreatedAt    time.Time `db:"created_at"`
	Participants []string
}

// HasParticipant сообщает, состоит ли userID в сессии.
func (s *Session) HasParticipant(userID string) bool {
	for _, p := range s.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
