package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN"),
			ChannelID:     getEnv("SLACK_CHANNEL_ID"),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET"),
		},
		Port: getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		Game: GameConfig{
			OptionsCount:    getEnvInt("GAME_OPTIONS_COUNT", 4),
			PointsCorrect:   getEnvInt("GAME_POINTS_CORRECT", 10),
			PointsIncorrect: getEnvInt("GAME_POINTS_INCORRECT", -5),
		},
		Catalog: CatalogConfig{
			RemoteURL:  getEnvOrDefault("CATALOG_REMOTE_URL", "https://restcountries.com/v3.1/all?fields=name,cca3,flags,capital,region,population"),
			LocalFile:  getEnvOrDefault("CATALOG_LOCAL_FILE", "./all.json"),
			MaxRetries: getEnvInt("CATALOG_MAX_RETRIES", 2),
			RetryDelay: getEnvDuration("CATALOG_RETRY_DELAY", 2*time.Second),
		},
		ProjectID: getEnv("GCP_PROJECT"),
	}
	return cfg
}

func getEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Error: Environment variable %s is not a valid integer: %s", key, value)
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Error: Environment variable %s is not a valid duration: %s", key, value)
	}
	return parsed
}
