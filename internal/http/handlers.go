package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/jellydator/ttlcache/v3"

	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/game"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/notifier"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/player"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/pubsub"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// chatIDFromRequest parses the required chat_id query parameter.
func chatIDFromRequest(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("chat_id")
	if raw == "" {
		return 0, errors.New("chat_id is required")
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chat_id %q", raw)
	}
	return chatID, nil
}

// intParam parses an optional integer query parameter, falling back to def.
func intParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Warn("Invalid integer parameter, using default", "param", name, "value", raw, "default", def)
		return def
	}
	return value
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

type answerResponse struct {
	Outcome string         `json:"outcome"`
	Round   *game.Round    `json:"round"`
	Player  *player.Player `json:"player"`
}

// PlayHandler registers the player if needed and starts a new round,
// abandoning any round that was still pending.
func (s *Server) PlayHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID, err := chatIDFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		query := r.URL.Query()
		if _, err := s.Players.GetOrCreate(chatID, query.Get("username"), query.Get("first_name"), query.Get("last_name")); err != nil {
			log.Error("Failed to get or create player", "error", err, "chatID", chatID)
			http.Error(w, "Failed to register player", http.StatusInternalServerError)
			return
		}

		round, err := s.Engine.StartNewRound(chatID)
		if err != nil {
			log.Error("Failed to start round", "error", err, "chatID", chatID)
			http.Error(w, "Failed to start round", http.StatusInternalServerError)
			return
		}

		respondJSON(w, s.Engine.Question(round))
	}
}

// AnswerHandler resolves a pending round with the submitted answer.
func (s *Server) AnswerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID := r.URL.Query().Get("round_id")
		if roundID == "" {
			http.Error(w, "round_id is required", http.StatusBadRequest)
			return
		}
		text := r.URL.Query().Get("text")
		if text == "" {
			http.Error(w, "text is required", http.StatusBadRequest)
			return
		}

		round, err := s.Engine.Resolve(roundID, text)
		if err != nil {
			switch {
			case errors.Is(err, game.ErrRoundNotFound):
				http.Error(w, "Round not found", http.StatusNotFound)
			case errors.Is(err, game.ErrRoundAlreadyResolved):
				http.Error(w, "Round already resolved", http.StatusConflict)
			default:
				log.Error("Failed to resolve round", "error", err, "roundID", roundID)
				http.Error(w, "Failed to resolve round", http.StatusInternalServerError)
			}
			return
		}

		p, err := s.Players.Find(round.ChatID)
		if err != nil {
			log.Error("Failed to load player after resolution", "error", err, "chatID", round.ChatID)
			http.Error(w, "Failed to load player", http.StatusInternalServerError)
			return
		}

		// Scores changed, cached leaderboards are stale.
		s.leaderboard.DeleteAll()

		event := pubsub.RoundResolvedEvent{RoundID: round.ID, ChatID: round.ChatID}
		if err := s.pubsub.SendMessage(pubsub.EventNotifyResult, event); err != nil {
			log.Error("Failed to publish round resolved event", "error", err, "roundID", round.ID)
		}

		respondJSON(w, answerResponse{
			Outcome: game.DescribeOutcome(round),
			Round:   round,
			Player:  p,
		})
	}
}

// ActiveRoundHandler returns the player's pending round with its question.
func (s *Server) ActiveRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID, err := chatIDFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		round, err := s.Engine.ActiveRound(chatID)
		if err != nil {
			log.Error("Failed to look up active round", "error", err, "chatID", chatID)
			http.Error(w, "Failed to look up active round", http.StatusInternalServerError)
			return
		}
		if round == nil {
			http.Error(w, "No active round", http.StatusNotFound)
			return
		}

		respondJSON(w, s.Engine.Question(round))
	}
}

// AbandonHandler gives up the player's pending round, if any.
func (s *Server) AbandonHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID, err := chatIDFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.Engine.Abandon(chatID); err != nil {
			log.Error("Failed to abandon round", "error", err, "chatID", chatID)
			http.Error(w, "Failed to abandon round", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

// StatsHandler serves the player's aggregate statistics.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID, err := chatIDFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		summary, err := s.Players.StatsSummary(chatID)
		if err != nil {
			if errors.Is(err, player.ErrNotFound) {
				http.Error(w, "Player not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to get player stats", "error", err, "chatID", chatID)
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			return
		}

		respondJSON(w, summary)
	}
}

// LeaderboardHandler serves the top players ordered by total score. Results
// are cached per limit for a short TTL.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := intParam(r, "limit", 10)

		if item := s.leaderboard.Get(limit); item != nil {
			respondJSON(w, item.Value())
			return
		}

		top, err := s.Players.TopPlayers(limit)
		if err != nil {
			log.Error("Failed to get leaderboard", "error", err)
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			return
		}
		s.leaderboard.Set(limit, top, ttlcache.DefaultTTL)

		respondJSON(w, top)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Players.All()
		if err != nil {
			log.Error("Failed to get players from store", "error", err)
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			return
		}
		respondJSON(w, players)
	}
}

// ListRoundsHandler serves the player's recent round history, newest first.
func (s *Server) ListRoundsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID, err := chatIDFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		limit := intParam(r, "limit", 10)

		rounds, err := s.Engine.RecentRounds(chatID, limit)
		if err != nil {
			log.Error("Failed to get rounds", "error", err, "chatID", chatID)
			http.Error(w, "Failed to get rounds", http.StatusInternalServerError)
			return
		}
		respondJSON(w, rounds)
	}
}

// SearchCountriesHandler serves catalog lookups by name fragment.
func (s *Server) SearchCountriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, "q is required", http.StatusBadRequest)
			return
		}
		limit := intParam(r, "limit", 10)

		respondJSON(w, s.Catalog.Search(query, limit))
	}
}

// CountryStatsHandler serves per-country answer aggregates.
func (s *Server) CountryStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Engine.CountryStats()
		if err != nil {
			log.Error("Failed to get country stats", "error", err)
			http.Error(w, "Failed to get country stats", http.StatusInternalServerError)
			return
		}
		respondJSON(w, stats)
	}
}

// HardestCountriesHandler serves the countries players answer worst.
func (s *Server) HardestCountriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minAttempts := intParam(r, "min_attempts", 3)
		limit := intParam(r, "limit", 5)

		stats, err := s.Engine.HardestCountries(minAttempts, limit)
		if err != nil {
			log.Error("Failed to get hardest countries", "error", err)
			http.Error(w, "Failed to get hardest countries", http.StatusInternalServerError)
			return
		}
		respondJSON(w, stats)
	}
}

// ResetStatsHandler zeroes a player's score and counters.
func (s *Server) ResetStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID, err := chatIDFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.Players.ResetStats(chatID); err != nil {
			if errors.Is(err, player.ErrNotFound) {
				http.Error(w, "Player not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to reset stats", "error", err, "chatID", chatID)
			http.Error(w, "Failed to reset stats", http.StatusInternalServerError)
			return
		}

		s.leaderboard.DeleteAll()
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Stats reset for player %d!", chatID)
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear the store")

		// Rounds reference players, so they go first.
		if err := s.Rounds.Clear(); err != nil {
			log.Error("Failed to clear rounds", "error", err)
			http.Error(w, "Failed to clear store", http.StatusInternalServerError)
			return
		}
		if err := s.Players.Clear(); err != nil {
			log.Error("Failed to clear players", "error", err)
			http.Error(w, "Failed to clear store", http.StatusInternalServerError)
			return
		}
		s.leaderboard.DeleteAll()

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

// NotifyResultHandler is the pub/sub push endpoint for resolved rounds. It
// decodes the wrapped payload and forwards the result to the notifier.
func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify result message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		event := pubsub.RoundResolvedEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		round, err := s.Rounds.Get(event.RoundID)
		if err != nil {
			log.Error("Failed to load round for notification", "error", err, "roundID", event.RoundID)
			http.Error(w, "Round not found", http.StatusNotFound)
			return
		}
		p, err := s.Players.Find(round.ChatID)
		if err != nil {
			log.Error("Failed to load player for notification", "error", err, "chatID", round.ChatID)
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}

		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendRoundResult(&notifier.RoundResult{Round: round, Player: p}, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err, "roundID", round.ID)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
