package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventNotifyResult       EventType = "notify-result"
	EventLeaderboardUpdated EventType = "leaderboard-updated"
)

// RoundResolvedEvent is published when a round is resolved. Handlers join the
// ids back against the stores before acting on it.
type RoundResolvedEvent struct {
	RoundID string `msgpack:"round_id"`
	ChatID  int64  `msgpack:"chat_id"`
}

// LeaderboardUpdatedEvent signals that cached leaderboards should be rebuilt.
type LeaderboardUpdatedEvent struct {
	ChatID int64 `msgpack:"chat_id"`
}
