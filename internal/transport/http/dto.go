package http

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type SessionItem struct {
	ID           string    `json:"id"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	Participants []string  `json:"participants"`
}
