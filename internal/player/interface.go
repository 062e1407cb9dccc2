package player

import "errors"

// ErrNotFound is returned when no player exists for the requested chat key.
var ErrNotFound = errors.New("player not found")

// Store defines the interface for player identity and statistics.
type Store interface {
	// GetOrCreate returns the existing player for chatID, ignoring the
	// supplied display fields, or creates one with zero stats.
	GetOrCreate(chatID int64, username, firstName, lastName string) (*Player, error)
	// Find returns the player for chatID or ErrNotFound.
	Find(chatID int64) (*Player, error)
	// FindByUsername returns the player with the given username,
	// case-insensitively, or ErrNotFound.
	FindByUsername(username string) (*Player, error)
	// Exists reports whether a player is registered for chatID.
	Exists(chatID int64) bool
	// ApplyOutcome adds points to the player's total score and bumps the
	// correct or incorrect counter. The increment is atomic at the storage
	// layer, so concurrent resolutions for the same player never lose updates.
	ApplyOutcome(chatID int64, isCorrect bool, points int) (*Player, error)
	// TopPlayers returns up to n players ordered by total score descending.
	// Ties are broken by insertion order (ascending row id), which is stable.
	TopPlayers(n int) ([]Player, error)
	// All returns every registered player.
	All() ([]Player, error)
	// StatsSummary returns the aggregate statistics view for chatID.
	StatsSummary(chatID int64) (*StatsSummary, error)
	// ResetStats zeroes the score and answer counters. Round history is kept.
	ResetStats(chatID int64) error
	// Delete removes the player record. Administrative use only.
	Delete(chatID int64) error
	// Clear wipes all players. Test/admin use only.
	Clear() error
}
