package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrAlreadyJoined   = errors.New("user already joined the session")
	ErrNotInSession    = errors.New("user not in the session")
)
