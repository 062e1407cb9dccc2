package slack

import (
	"context"
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/game"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/metrics"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/notifier"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/player"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testRoundResult() *notifier.RoundResult {
	timeSpent := int64(6)
	return &notifier.RoundResult{
		Round: &game.Round{
			ID:          "r1",
			ChatID:      100,
			CountryCode: "DEU",
			CountryName: "Germany",
			FlagURL:     "https://flagcdn.com/w320/de.png",
			Answer:      "Germany",
			IsCorrect:   true,
			Points:      10,
			TimeSpent:   &timeSpent,
			Status:      game.StatusResolved,
		},
		Player: &player.Player{ChatID: 100, Username: "alice", TotalScore: 10, CorrectAnswers: 1},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := n.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := n.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := n.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

// Test one of the public methods to ensure it calls the private sender.
func TestSendRoundResult_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := n.SendRoundResult(testRoundResult(), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendRoundResult")
}

func TestFormatRoundResult(t *testing.T) {
	n := &Notifier{channelID: "C123"}
	msg := n.formatRoundResult(testRoundResult())
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	// 1. Header Block
	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "✅ Correct answer!", header.Text.Text)

	// 2. Flag Image Block
	image, ok := msg.Blocks.BlockSet[1].(*slackapi.ImageBlock)
	require.True(t, ok)
	assert.Equal(t, "https://flagcdn.com/w320/de.png", image.ImageURL)

	// 3. Details Section
	details, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, details.Text.Text, "Country: Germany")
	assert.Contains(t, details.Text.Text, "Points: +10")

	// 4. Context Block
	_, ok = msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok)
}

func TestFormatLeaderboard(t *testing.T) {
	n := &Notifier{channelID: "C123"}

	players := []player.Player{
		{ChatID: 1, Username: "alice", TotalScore: 100, CorrectAnswers: 10, IncorrectAnswers: 2},
		{ChatID: 2, Username: "bob", TotalScore: 55, CorrectAnswers: 6, IncorrectAnswers: 4},
		{ChatID: 3, Username: "carol", TotalScore: 40, CorrectAnswers: 4, IncorrectAnswers: 1},
		{ChatID: 4, Username: "dave", TotalScore: 10, CorrectAnswers: 1, IncorrectAnswers: 0},
	}

	msg := n.formatLeaderboard(players)
	require.Len(t, msg.Blocks.BlockSet, 5, "header plus one block per player")

	first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, first.Text.Text, "🥇")
	assert.Contains(t, first.Text.Text, "alice")
	assert.Contains(t, first.Text.Text, "Score: 100")

	fourth, ok := msg.Blocks.BlockSet[4].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.NotContains(t, fourth.Text.Text, "🥇")
	assert.NotContains(t, fourth.Text.Text, "🥈")
	assert.NotContains(t, fourth.Text.Text, "🥉")
}

func TestFormatLeaderboard_Empty(t *testing.T) {
	n := &Notifier{channelID: "C123"}
	msg := n.formatLeaderboard(nil)
	require.Len(t, msg.Blocks.BlockSet, 2)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "No stats available yet")
}

func TestFormatPlayerStats(t *testing.T) {
	n := &Notifier{channelID: "C123"}

	p := &player.Player{ChatID: 1, Username: "alice", TotalScore: 45, CorrectAnswers: 5, IncorrectAnswers: 1}
	msg := n.formatPlayerStats(p)
	require.Len(t, msg.Blocks.BlockSet, 2)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "Games played: 6")
	assert.Contains(t, section.Text.Text, "Accuracy: 83.33%")
	assert.Contains(t, section.Text.Text, "Total score: 45")
}
