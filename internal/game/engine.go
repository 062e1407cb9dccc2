package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/config"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/country"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/metrics"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/player"
)

// Engine orchestrates the round lifecycle: drawing questions, resolving
// answers against the stored snapshot and applying the outcome to the ledger.
type Engine struct {
	rounds  RoundStore
	players player.Store
	catalog country.Catalog
	cfg     config.GameConfig
	metrics metrics.Metrics

	// mu serializes round creation so concurrent starts for the same player
	// cannot leave two PENDING rounds behind. Single-process semantics.
	mu sync.Mutex

	now func() time.Time
}

// NewEngine creates a new Engine.
func NewEngine(rounds RoundStore, players player.Store, catalog country.Catalog, cfg config.GameConfig, m metrics.Metrics) *Engine {
	return &Engine{
		rounds:  rounds,
		players: players,
		catalog: catalog,
		cfg:     cfg,
		metrics: m,
		now:     time.Now,
	}
}

// StartNewRound abandons the player's pending round if one exists, draws a
// fresh country and persists a new PENDING round. The player must already be
// registered.
func (e *Engine) StartNewRound(chatID int64) (*Round, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.players.Find(chatID); err != nil {
		return nil, err
	}

	abandoned, err := e.rounds.AbandonPending(chatID)
	if err != nil {
		return nil, err
	}
	if abandoned {
		e.metrics.IncRoundsAbandoned()
	}

	record, err := e.catalog.Random()
	if err != nil {
		log.Error("Failed to draw a country for a new round", "error", err, "chatID", chatID)
		return nil, err
	}

	round := &Round{
		ID:          uuid.NewString(),
		ChatID:      chatID,
		CountryCode: record.Code,
		CountryName: record.Name,
		FlagURL:     record.FlagURL,
		Status:      StatusPending,
		PlayedAt:    e.now().Unix(),
	}
	if err := e.rounds.Insert(round); err != nil {
		return nil, err
	}

	e.metrics.IncRoundsStarted()
	log.Info("New round started", "roundID", round.ID, "chatID", chatID, "country", record.Name)
	return round, nil
}

// Resolve checks the submitted answer against the round's stored country
// name, updates the round and applies the outcome to the player's stats.
// Calling it twice for the same round succeeds once; the second call gets
// ErrRoundAlreadyResolved.
func (e *Engine) Resolve(roundID, submittedAnswer string) (*Round, error) {
	start := e.now()

	round, err := e.rounds.Get(roundID)
	if err != nil {
		return nil, err
	}
	if round.Status != StatusPending {
		return nil, fmt.Errorf("id %s: %w", roundID, ErrRoundAlreadyResolved)
	}

	// Case-insensitive match on the trimmed answer; no fuzzy matching.
	isCorrect := strings.EqualFold(strings.TrimSpace(submittedAnswer), round.CountryName)
	points := e.cfg.PointsIncorrect
	if isCorrect {
		points = e.cfg.PointsCorrect
	}
	timeSpent := e.now().Unix() - round.PlayedAt

	resolved, err := e.rounds.MarkResolved(roundID, submittedAnswer, isCorrect, points, timeSpent)
	if err != nil {
		return nil, err
	}

	if _, err := e.players.ApplyOutcome(round.ChatID, isCorrect, points); err != nil {
		// Best-effort compensation: without a cross-store transaction, revert
		// the round so a retry can apply the outcome exactly once.
		log.Error("Failed to apply outcome, reverting round to pending", "error", err, "roundID", roundID)
		if revertErr := e.rounds.MarkPending(roundID); revertErr != nil {
			log.Error("Failed to revert round after ledger failure", "error", revertErr, "roundID", roundID)
		}
		return nil, fmt.Errorf("failed to apply outcome: %w", err)
	}

	e.metrics.IncRoundsResolved()
	if isCorrect {
		e.metrics.IncAnswersCorrect()
	} else {
		e.metrics.IncAnswersIncorrect()
	}
	e.metrics.ObserveResolveDuration(e.now().Sub(start).Seconds())

	log.Info("Round resolved", "roundID", roundID, "correct", isCorrect, "points", points)
	return resolved, nil
}

// ActiveRound returns the player's current PENDING round, or nil if there is
// none.
func (e *Engine) ActiveRound(chatID int64) (*Round, error) {
	return e.rounds.FindPending(chatID)
}

// Abandon transitions the player's PENDING round to ABANDONED. It is a no-op
// when there is no active round.
func (e *Engine) Abandon(chatID int64) error {
	abandoned, err := e.rounds.AbandonPending(chatID)
	if err != nil {
		return err
	}
	if abandoned {
		e.metrics.IncRoundsAbandoned()
	}
	return nil
}

// Question builds the rendered material for a pending round: the flag plus
// the shuffled answer options.
func (e *Engine) Question(round *Round) Question {
	correct := country.CountryRecord{Code: round.CountryCode, Name: round.CountryName, FlagURL: round.FlagURL}
	if record, err := e.catalog.FindByCode(round.CountryCode); err == nil {
		correct = record
	}

	records := e.catalog.Options(correct, e.cfg.OptionsCount)
	options := make([]string, 0, len(records))
	for _, r := range records {
		options = append(options, r.Name)
	}
	return Question{
		RoundID: round.ID,
		FlagURL: round.FlagURL,
		Options: options,
	}
}

// RoundsFor returns all rounds for the player, newest first.
func (e *Engine) RoundsFor(chatID int64) ([]Round, error) {
	return e.rounds.RoundsFor(chatID)
}

// RecentRounds returns up to n of the player's rounds, newest first.
func (e *Engine) RecentRounds(chatID int64, n int) ([]Round, error) {
	return e.rounds.Recent(chatID, n)
}

// CountRounds reports the number of rounds recorded for the player.
func (e *Engine) CountRounds(chatID int64) (int64, error) {
	return e.rounds.Count(chatID)
}

// CountryStats aggregates resolved rounds per country.
func (e *Engine) CountryStats() ([]CountryStats, error) {
	return e.rounds.CountryStats()
}

// HardestCountries returns the countries answered worst, among those with at
// least minAttempts resolved rounds.
func (e *Engine) HardestCountries(minAttempts, limit int) ([]CountryStats, error) {
	return e.rounds.Hardest(minAttempts, limit)
}

// DescribeOutcome renders a resolved round as a human-readable summary. Pure
// formatting, no side effects.
func DescribeOutcome(round *Round) string {
	if round.Status != StatusResolved {
		return ""
	}

	var timeSpent int64
	if round.TimeSpent != nil {
		timeSpent = *round.TimeSpent
	}

	if round.IsCorrect {
		return fmt.Sprintf("✅ Correct!\n\n🏳️ Country: %s\n⭐ Points: %+d\n⏱️ Time: %d sec.",
			round.CountryName, round.Points, timeSpent)
	}
	return fmt.Sprintf("❌ Wrong!\n\n🏳️ Correct answer: %s\n💭 Your answer: %s\n⭐ Points: %d",
		round.CountryName, round.Answer, round.Points)
}
