package slack

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/notifier"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/player"
)

// formatRoundResult creates the Slack message for a resolved round using Block Kit.
func (s *Notifier) formatRoundResult(result *notifier.RoundResult) slack.Message {
	blocks := make([]slack.Block, 0)

	round := result.Round

	headerLine := "❌ Wrong answer!"
	if round.IsCorrect {
		headerLine = "✅ Correct answer!"
	}
	headerText := slack.NewTextBlockObject("plain_text", headerLine, true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Flag image, when the catalog had one for the round.
	if round.FlagURL != "" {
		blocks = append(blocks, slack.NewImageBlock(round.FlagURL, round.CountryName, "", nil))
	}

	detailsText := fmt.Sprintf("Player: %s\nCountry: %s\nAnswer: %s\nPoints: %+d",
		result.Player.DisplayName(),
		round.CountryName,
		round.Answer,
		round.Points,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	var contextElements []slack.MixedElement
	if round.TimeSpent != nil {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("⏱️ Answered in %d sec.", *round.TimeSpent), true, false))
	}
	contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("⭐ Total score: %d", result.Player.TotalScore), true, false))
	blocks = append(blocks, slack.NewContextBlock("", contextElements...))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the player leaderboard.
func (s *Notifier) formatLeaderboard(players []player.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Quiz Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No stats available yet. Go guess some flags!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Player Ranks
	for i, p := range players {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Score: %d | Accuracy: %.2f%% (%d/%d)",
			rank,
			medal,
			p.DisplayName(),
			p.TotalScore,
			p.Accuracy(),
			p.CorrectAnswers,
			p.CorrectAnswers+p.IncorrectAnswers,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message with a single player's stats.
func (s *Notifier) formatPlayerStats(p *player.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("📊 Stats for %s", p.DisplayName()), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	statsText := fmt.Sprintf("Games played: %d\nCorrect: %d\nWrong: %d\nAccuracy: %.2f%%\nTotal score: %d",
		p.CorrectAnswers+p.IncorrectAnswers,
		p.CorrectAnswers,
		p.IncorrectAnswers,
		p.Accuracy(),
		p.TotalScore,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", statsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a simple message for when a player lookup fails.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("🤷 No player found matching %q.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	)
}
