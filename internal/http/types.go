package http

import (
	"net/http"

	"github.com/jellydator/ttlcache/v3"

	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/config"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/country"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/game"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/metrics"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/notifier"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/player"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/pubsub"
)

type Server struct {
	Players        player.Store
	Rounds         game.RoundStore
	Engine         *game.Engine
	Catalog        country.Catalog
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux

	pubsub      pubsub.PubSubClient
	leaderboard *ttlcache.Cache[int, []player.Player]
}
