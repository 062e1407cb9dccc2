package game

import (
	"database/sql"
	"sync"
)

// Status is the lifecycle state of a round. PENDING rounds are awaiting an
// answer; RESOLVED and ABANDONED are terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusResolved  Status = "RESOLVED"
	StatusAbandoned Status = "ABANDONED"
)

// Round is one question-answer cycle for a player. The country fields are a
// snapshot captured at creation time; catalog refreshes never alter history.
type Round struct {
	ID          string `json:"id"`
	ChatID      int64  `json:"chat_id"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	FlagURL     string `json:"flag_url"`
	Answer      string `json:"answer,omitempty"`
	IsCorrect   bool   `json:"is_correct"`
	Points      int    `json:"points"`
	TimeSpent   *int64 `json:"time_spent,omitempty"` // seconds, nil until resolved
	Status      Status `json:"status"`
	PlayedAt    int64  `json:"played_at"`
}

// CountryStats is the per-country aggregate over resolved rounds.
type CountryStats struct {
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	Attempts    int     `json:"attempts"`
	Correct     int     `json:"correct"`
	SuccessRate float64 `json:"success_rate"`
}

// Question is the material the transport renders for a pending round.
type Question struct {
	RoundID string   `json:"round_id"`
	FlagURL string   `json:"flag_url"`
	Options []string `json:"options"`
}

// store handles all database operations for rounds.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
