package game

import "errors"

var (
	// ErrRoundNotFound is returned when no round exists for the given id.
	ErrRoundNotFound = errors.New("round not found")

	// ErrRoundAlreadyResolved is returned when a resolution is attempted
	// against a round that is no longer PENDING.
	ErrRoundAlreadyResolved = errors.New("round already resolved")
)

// RoundStore defines the persistence operations the engine needs.
type RoundStore interface {
	Insert(r *Round) error
	// Get returns the round by id or ErrRoundNotFound.
	Get(id string) (*Round, error)
	// FindPending returns the player's current PENDING round, or nil when
	// there is none.
	FindPending(chatID int64) (*Round, error)
	// MarkResolved performs the PENDING→RESOLVED transition as a
	// compare-and-set on status: of two concurrent calls for the same id, the
	// second observes ErrRoundAlreadyResolved.
	MarkResolved(id, answer string, isCorrect bool, points int, timeSpent int64) (*Round, error)
	// MarkPending reverts a resolved round to PENDING. Compensation only, for
	// when the ledger update fails after the round update succeeded.
	MarkPending(id string) error
	// AbandonPending transitions the player's PENDING round (if any) to
	// ABANDONED and reports whether one existed.
	AbandonPending(chatID int64) (bool, error)
	// RoundsFor returns all rounds for the player, newest first.
	RoundsFor(chatID int64) ([]Round, error)
	// Recent returns up to n of the player's rounds, newest first.
	Recent(chatID int64, n int) ([]Round, error)
	// Count reports the number of rounds recorded for the player.
	Count(chatID int64) (int64, error)
	// CountryStats aggregates resolved rounds per country.
	CountryStats() ([]CountryStats, error)
	// Hardest returns the countries with the lowest success rate among those
	// with at least minAttempts resolved rounds.
	Hardest(minAttempts, limit int) ([]CountryStats, error)
	// Clear wipes all rounds. Test/admin use only.
	Clear() error
}
