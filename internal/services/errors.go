package services

import "errors"

var (
	// ErrSessionNotFound is returned when a session ID matches no records.
	ErrSessionNotFound = errors.New("session not found")

	// ErrPlayerNotFound is returned when a player name matches no records.
	ErrPlayerNotFound = errors.New("player not found")
)
