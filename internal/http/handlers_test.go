package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/config"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/country"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/database"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/game"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/metrics"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/notifier"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/player"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/pubsub"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, n notifier.Notifier) (*Server, *pubsub.MockPubSubClient, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	players := player.New(db)
	rounds := game.NewStore(db)

	catalog := country.NewMock()
	catalog.RandomFunc = func() (country.CountryRecord, error) {
		return country.CountryRecord{Code: "DEU", Name: "Germany", FlagURL: "https://flagcdn.com/w320/de.png"}, nil
	}
	catalog.OptionsFunc = func(correct country.CountryRecord, optionsCount int) []country.CountryRecord {
		return []country.CountryRecord{{Code: "FRA", Name: "France"}, correct}
	}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	pubsubMock := pubsub.NewMock("TEST")
	gameCfg := config.GameConfig{OptionsCount: 4, PointsCorrect: 10, PointsIncorrect: -5}
	engine := game.NewEngine(rounds, players, catalog, gameCfg, metricsSvc)
	cfg := config.Config{Game: gameCfg}

	server := NewServer(players, rounds, engine, catalog, metricsSvc, metricsHandler, cfg, n, pubsubMock)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, pubsubMock, teardown
}

func doRequest(t *testing.T, server *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

// startRound drives the /play endpoint and returns the question it produced.
func startRound(t *testing.T, server *Server, chatID int64) game.Question {
	t.Helper()
	rr := doRequest(t, server, "POST", fmt.Sprintf("/play?chat_id=%d&username=alice", chatID))
	require.Equal(t, http.StatusOK, rr.Code)

	var q game.Question
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &q))
	return q
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := doRequest(t, server, "GET", "/health")

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestPlayHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	q := startRound(t, server, 100)
	assert.NotEmpty(t, q.RoundID)
	assert.Equal(t, "https://flagcdn.com/w320/de.png", q.FlagURL)
	assert.Contains(t, q.Options, "Germany")

	t.Run("missing chat_id", func(t *testing.T) {
		rr := doRequest(t, server, "POST", "/play")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAnswerHandler(t *testing.T) {
	server, pubsubMock, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	q := startRound(t, server, 100)

	rr := doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text="+url.QueryEscape("  germany "))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp answerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Round.IsCorrect)
	assert.Equal(t, 10, resp.Round.Points)
	assert.Equal(t, 10, resp.Player.TotalScore)
	assert.Contains(t, resp.Outcome, "✅ Correct!")

	require.Len(t, pubsubMock.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventNotifyResult), pubsubMock.SendMessageCalls[0].Topic)

	t.Run("second answer conflicts", func(t *testing.T) {
		rr := doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text=Germany")
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("unknown round", func(t *testing.T) {
		rr := doRequest(t, server, "POST", "/answer?round_id=missing&text=Germany")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAnswerHandler_WrongAnswer(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	q := startRound(t, server, 100)

	rr := doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text=Atlantis")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp answerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Round.IsCorrect)
	assert.Equal(t, -5, resp.Player.TotalScore)
	assert.Contains(t, resp.Outcome, "❌ Wrong!")
}

func TestActiveRoundHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := doRequest(t, server, "GET", "/active?chat_id=100")
	assert.Equal(t, http.StatusNotFound, rr.Code, "no round started yet")

	q := startRound(t, server, 100)

	rr = doRequest(t, server, "GET", "/active?chat_id=100")
	require.Equal(t, http.StatusOK, rr.Code)

	var active game.Question
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &active))
	assert.Equal(t, q.RoundID, active.RoundID)
}

func TestAbandonHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	startRound(t, server, 100)

	rr := doRequest(t, server, "POST", "/abandon?chat_id=100")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, server, "GET", "/active?chat_id=100")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	q := startRound(t, server, 100)
	doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text=Germany")

	rr := doRequest(t, server, "GET", "/stats?chat_id=100")
	require.Equal(t, http.StatusOK, rr.Code)

	var summary player.StatsSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.TotalGames)
	assert.Equal(t, 1, summary.Correct)
	assert.InDelta(t, 100.0, summary.Accuracy, 0.01)
	assert.Equal(t, 10, summary.TotalScore)

	t.Run("unknown player", func(t *testing.T) {
		rr := doRequest(t, server, "GET", "/stats?chat_id=999")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestLeaderboardHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	q := startRound(t, server, 100)
	doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text=Germany")
	q = startRound(t, server, 200)
	doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text=Atlantis")

	rr := doRequest(t, server, "GET", "/leaderboard?limit=10")
	require.Equal(t, http.StatusOK, rr.Code)

	var top []player.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &top))
	require.Len(t, top, 2)
	assert.Equal(t, int64(100), top[0].ChatID)
	assert.Equal(t, 10, top[0].TotalScore)
	assert.Equal(t, int64(200), top[1].ChatID)

	t.Run("resolution invalidates the cache", func(t *testing.T) {
		q := startRound(t, server, 200)
		doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text=Germany")

		rr := doRequest(t, server, "GET", "/leaderboard?limit=10")
		require.Equal(t, http.StatusOK, rr.Code)

		var top []player.Player
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &top))
		assert.Equal(t, int64(200), top[1].ChatID)
		assert.Equal(t, 5, top[1].TotalScore)
	})
}

func TestListRoundsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	q := startRound(t, server, 100)
	doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text=Germany")
	startRound(t, server, 100)

	rr := doRequest(t, server, "GET", "/rounds?chat_id=100&limit=10")
	require.Equal(t, http.StatusOK, rr.Code)

	var rounds []game.Round
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rounds))
	require.Len(t, rounds, 2)
}

func TestSearchCountriesHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	server.Catalog.(*country.MockCatalog).SearchFunc = func(query string, limit int) []country.CountryRecord {
		return []country.CountryRecord{{Code: "DEU", Name: "Germany"}}
	}

	rr := doRequest(t, server, "GET", "/countries/search?q=germ")
	require.Equal(t, http.StatusOK, rr.Code)

	var records []country.CountryRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "DEU", records[0].Code)

	t.Run("missing query", func(t *testing.T) {
		rr := doRequest(t, server, "GET", "/countries/search")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCountryStatsHandlers(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	q := startRound(t, server, 100)
	doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text=Atlantis")

	rr := doRequest(t, server, "GET", "/countries/stats")
	require.Equal(t, http.StatusOK, rr.Code)

	var stats []game.CountryStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, "DEU", stats[0].CountryCode)
	assert.Equal(t, 1, stats[0].Attempts)

	rr = doRequest(t, server, "GET", "/countries/hardest?min_attempts=1&limit=5")
	require.Equal(t, http.StatusOK, rr.Code)

	var hardest []game.CountryStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &hardest))
	require.Len(t, hardest, 1)
	assert.InDelta(t, 0.0, hardest[0].SuccessRate, 0.01)
}

func TestResetStatsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	q := startRound(t, server, 100)
	doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text=Germany")

	rr := doRequest(t, server, "POST", "/reset?chat_id=100")
	require.Equal(t, http.StatusOK, rr.Code)

	statsRR := doRequest(t, server, "GET", "/stats?chat_id=100")
	var summary player.StatsSummary
	require.NoError(t, json.Unmarshal(statsRR.Body.Bytes(), &summary))
	assert.Equal(t, 0, summary.TotalScore)
	assert.Equal(t, 0, summary.TotalGames)
}

func TestClearStoreHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	startRound(t, server, 100)

	rr := doRequest(t, server, "POST", "/clear")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Store cleared!", rr.Body.String())

	playersRR := doRequest(t, server, "GET", "/players")
	var players []player.Player
	require.NoError(t, json.Unmarshal(playersRR.Body.Bytes(), &players))
	assert.Empty(t, players)
}

func TestNotifyResultHandler(t *testing.T) {
	notifierMock := notifier.NewMock()
	server, _, teardown := setupTestServer(t, notifierMock)
	defer teardown()

	q := startRound(t, server, 100)
	doRequest(t, server, "POST", "/answer?round_id="+q.RoundID+"&text=Germany")

	payload, err := msgpack.Marshal(pubsub.RoundResolvedEvent{RoundID: q.RoundID, ChatID: 100})
	require.NoError(t, err)

	wrapper := map[string]any{
		"subscription": "projects/test/subscriptions/notify-result",
		"message": map[string]any{
			"data": base64.StdEncoding.EncodeToString(payload),
		},
	}
	body, err := json.Marshal(wrapper)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/notify-result", strings.NewReader(string(body)))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, notifierMock.SendRoundResultCalls, 1)
	result := notifierMock.SendRoundResultCalls[0]
	assert.Equal(t, q.RoundID, result.Round.ID)
	assert.Equal(t, int64(100), result.Player.ChatID)

	t.Run("invalid wrapper", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/notify-result", strings.NewReader("not json"))
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLeaderboardCommandHandler(t *testing.T) {
	notifierMock := notifier.NewMock()
	notifierMock.FormatLeaderboardResponseFunc = func(players []player.Player) (any, error) {
		return slack.NewBlockMessage(), nil
	}
	server, _, teardown := setupTestServer(t, notifierMock)
	defer teardown()

	rr := doRequest(t, server, "POST", "/slack/command/leaderboard")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, notifierMock.LastLeaderboardResponse)
}

func TestPlayerStatsCommandHandler(t *testing.T) {
	notifierMock := notifier.NewMock()
	notifierMock.FormatPlayerStatsResponseFunc = func(p *player.Player) (any, error) {
		return slack.NewBlockMessage(), nil
	}
	notifierMock.FormatPlayerNotFoundResponseFunc = func(query string) (any, error) {
		return slack.NewBlockMessage(), nil
	}
	server, _, teardown := setupTestServer(t, notifierMock)
	defer teardown()

	startRound(t, server, 100)

	form := url.Values{}
	form.Set("text", "alice")
	req, err := http.NewRequest("POST", "/slack/command/stats", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, notifierMock.LastPlayerStatsResponse)

	t.Run("unknown player", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "nobody")
		req, err := http.NewRequest("POST", "/slack/command/stats", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotNil(t, notifierMock.LastPlayerNotFoundResponse)
	})

	t.Run("missing text", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/slack/command/stats", strings.NewReader(""))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
