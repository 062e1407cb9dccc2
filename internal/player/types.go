package player

import (
	"database/sql"
	"strconv"
	"sync"
)

// Player is the persisted identity plus aggregate statistics for one chat
// account. TotalScore is signed and may go negative.
type Player struct {
	ID               int64  `json:"id"`
	ChatID           int64  `json:"chat_id"`
	Username         string `json:"username,omitempty"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	TotalScore       int    `json:"total_score"`
	CorrectAnswers   int    `json:"correct_answers"`
	IncorrectAnswers int    `json:"incorrect_answers"`
	CreatedAt        int64  `json:"created_at"`
	UpdatedAt        int64  `json:"updated_at"`
}

// Accuracy is the percentage of correct answers, 0.0 when no answers have
// been recorded. It is derived, never stored.
func (p *Player) Accuracy() float64 {
	total := p.CorrectAnswers + p.IncorrectAnswers
	if total == 0 {
		return 0.0
	}
	return float64(p.CorrectAnswers) * 100.0 / float64(total)
}

// DisplayName picks the best available handle for rendering.
func (p *Player) DisplayName() string {
	if p.FirstName != "" {
		return p.FirstName
	}
	if p.Username != "" {
		return p.Username
	}
	return strconv.FormatInt(p.ChatID, 10)
}

// StatsSummary is the aggregate view exposed to the transport layer.
type StatsSummary struct {
	TotalGames int     `json:"total_games"`
	Correct    int     `json:"correct"`
	Incorrect  int     `json:"incorrect"`
	Accuracy   float64 `json:"accuracy"`
	TotalScore int     `json:"total_score"`
}

// store handles all database operations for players.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
