package http

import (
	"net/http"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/config"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/country"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/game"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/metrics"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/notifier"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/player"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/pubsub"
)

// leaderboardTTL bounds how stale a cached leaderboard can get. Resolutions
// also invalidate the cache, so this is a backstop.
const leaderboardTTL = 30 * time.Second

func NewServer(players player.Store, rounds game.RoundStore, engine *game.Engine, catalog country.Catalog, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	leaderboardCache := ttlcache.New[int, []player.Player](
		ttlcache.WithTTL[int, []player.Player](leaderboardTTL),
		ttlcache.WithDisableTouchOnHit[int, []player.Player](),
	)
	go leaderboardCache.Start()

	server := &Server{
		Players:        players,
		Rounds:         rounds,
		Engine:         engine,
		Catalog:        catalog,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
		leaderboard:    leaderboardCache,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/play", Chain(s.PlayHandler(), paramsMiddleware))
	s.Router.Handle("/answer", Chain(s.AnswerHandler(), paramsMiddleware))
	s.Router.Handle("/active", Chain(s.ActiveRoundHandler(), paramsMiddleware))
	s.Router.Handle("/abandon", Chain(s.AbandonHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/rounds", Chain(s.ListRoundsHandler(), paramsMiddleware))
	s.Router.Handle("/countries/search", Chain(s.SearchCountriesHandler(), paramsMiddleware))
	s.Router.Handle("/countries/stats", Chain(s.CountryStatsHandler(), paramsMiddleware))
	s.Router.Handle("/countries/hardest", Chain(s.HardestCountriesHandler(), paramsMiddleware))
	s.Router.Handle("/reset", Chain(s.ResetStatsHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/notify-result", Chain(s.NotifyResultHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/stats", Chain(s.PlayerStatsCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
