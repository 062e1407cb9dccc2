package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	Game          GameConfig
	Catalog       CatalogConfig
	ProjectID     string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// GameConfig carries the scoring knobs. Both point values are opaque signed
// integers; the engine never assumes their sign.
type GameConfig struct {
	OptionsCount    int
	PointsCorrect   int
	PointsIncorrect int
}

// CatalogConfig controls the asynchronous country catalog refresh.
type CatalogConfig struct {
	RemoteURL  string
	LocalFile  string
	MaxRetries int
	RetryDelay time.Duration
}
