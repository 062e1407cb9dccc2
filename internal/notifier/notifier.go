package notifier

import (
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/game"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/player"
)

// RoundResult is the view of a resolved round handed to a notifier, joined
// with the player it belongs to.
type RoundResult struct {
	Round  *game.Round
	Player *player.Player
}

// Notifier defines a high-level interface for sending notifications about game events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For resolved rounds
	SendRoundResult(result *RoundResult, dryRun bool) error

	// For slash commands
	SendLeaderboard(players []player.Player, dryRun bool) error
	SendPlayerStats(p *player.Player, dryRun bool) error
	SendPlayerNotFound(query string, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(players []player.Player) (any, error)
	FormatPlayerStatsResponse(p *player.Player) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
