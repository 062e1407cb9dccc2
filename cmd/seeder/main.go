package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/database"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "quiz.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	// Optional remote database
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

type seedCountry struct {
	code string
	name string
	flag string
}

var seedCountries = []seedCountry{
	{"DEU", "Germany", "https://flagcdn.com/w320/de.png"},
	{"FRA", "France", "https://flagcdn.com/w320/fr.png"},
	{"JPN", "Japan", "https://flagcdn.com/w320/jp.png"},
	{"BRA", "Brazil", "https://flagcdn.com/w320/br.png"},
	{"CAN", "Canada", "https://flagcdn.com/w320/ca.png"},
	{"AUS", "Australia", "https://flagcdn.com/w320/au.png"},
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, dbTeardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer dbTeardown()

	log.Info("Successfully connected to the database.")

	// Create demo players to hang the rounds on.
	type demoPlayer struct {
		chatID    int64
		username  string
		firstName string
	}
	demoPlayers := []demoPlayer{
		{1001, "seeder_a", "Seeder Player A"},
		{1002, "seeder_b", "Seeder Player B"},
		{1003, "seeder_c", "Seeder Player C"},
		{1004, "seeder_d", "Seeder Player D"},
	}

	now := time.Now().Unix()
	for _, p := range demoPlayers {
		_, err := db.Exec(`INSERT INTO players (chat_id, username, first_name, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?) ON CONFLICT(chat_id) DO NOTHING`,
			p.chatID, p.username, p.firstName, now, now)
		if err != nil {
			log.Fatalf("Failed to insert demo player %s: %s", p.username, err)
		}
	}
	log.Info("Ensured demo players exist.")

	const batchSize = 100
	const numRounds = 5000

	log.Info("Preparing to insert resolved rounds...", "total", numRounds, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*11)

	perPlayerScore := map[int64]int{}
	perPlayerCorrect := map[int64]int{}
	perPlayerIncorrect := map[int64]int{}

	for i := 0; i < numRounds; i++ {
		p := demoPlayers[rand.Intn(len(demoPlayers))]
		c := seedCountries[rand.Intn(len(seedCountries))]
		playedAt := time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour)
		isCorrect := rand.Intn(100) < 60
		points := -5
		answer := "Atlantis"
		if isCorrect {
			points = 10
			answer = c.name
		}
		timeSpent := int64(rand.Intn(30) + 1)

		perPlayerScore[p.chatID] += points
		if isCorrect {
			perPlayerCorrect[p.chatID]++
		} else {
			perPlayerIncorrect[p.chatID]++
		}

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			p.chatID,
			c.code,
			c.name,
			c.flag,
			answer,
			isCorrect,
			points,
			timeSpent,
			"RESOLVED",
			playedAt.Unix(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numRounds {
			stmt := fmt.Sprintf(`
				INSERT INTO rounds (id, chat_id, country_code, country_name, flag_url, answer,
					is_correct, points, time_spent, status, played_at)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*11)
			log.Info("Inserted batch", "completed", i+1, "total", numRounds)
		}
	}

	// Keep the ledger consistent with the seeded history.
	for chatID, score := range perPlayerScore {
		_, err := tx.Exec(`UPDATE players SET total_score = total_score + ?,
			correct_answers = correct_answers + ?, incorrect_answers = incorrect_answers + ?,
			updated_at = ? WHERE chat_id = ?`,
			score, perPlayerCorrect[chatID], perPlayerIncorrect[chatID], time.Now().Unix(), chatID)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to update player totals: %s", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully seeded demo data.", "duration", duration)
}
