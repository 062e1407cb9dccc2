package player

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new player Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{db: db}
}

const playerColumns = "id, chat_id, username, first_name, last_name, total_score, correct_answers, incorrect_answers, created_at, updated_at"

func (s *store) GetOrCreate(chatID int64, username, firstName, lastName string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.find(chatID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	log.Info("Creating new player", "chatID", chatID)
	now := time.Now().Unix()
	// ON CONFLICT DO NOTHING keeps this safe against a concurrent create for
	// the same chat key; the re-select below returns whichever row won.
	_, err = s.db.Exec(`
		INSERT INTO players (chat_id, username, first_name, last_name, total_score, correct_answers, incorrect_answers, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, 0, 0, ?, ?)
		ON CONFLICT(chat_id) DO NOTHING`,
		chatID, username, firstName, lastName, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}

	return s.find(chatID)
}

func (s *store) Find(chatID int64) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(chatID)
}

func (s *store) find(chatID int64) (*Player, error) {
	row := s.db.QueryRow("SELECT "+playerColumns+" FROM players WHERE chat_id = ?", chatID)
	return scanPlayer(row)
}

func (s *store) FindByUsername(username string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT "+playerColumns+" FROM players WHERE username = ? COLLATE NOCASE", username)
	return scanPlayer(row)
}

func (s *store) Exists(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var one int
	err := s.db.QueryRow("SELECT 1 FROM players WHERE chat_id = ?", chatID).Scan(&one)
	return err == nil
}

func (s *store) ApplyOutcome(chatID int64, isCorrect bool, points int) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	column := "incorrect_answers"
	if isCorrect {
		column = "correct_answers"
	}
	// Relative update so concurrent outcomes never lose increments.
	res, err := s.db.Exec(fmt.Sprintf(`
		UPDATE players
		SET total_score = total_score + ?, %s = %s + 1, updated_at = ?
		WHERE chat_id = ?`, column, column),
		points, time.Now().Unix(), chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply outcome: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("chatID %d: %w", chatID, ErrNotFound)
	}

	updated, err := s.find(chatID)
	if err != nil {
		return nil, err
	}
	log.Info("Player stats updated", "chatID", chatID, "score", updated.TotalScore, "accuracy", updated.Accuracy())
	return updated, nil
}

func (s *store) TopPlayers(n int) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Ties resolve by ascending id, i.e. insertion order, so the ranking is
	// stable across calls.
	rows, err := s.db.Query("SELECT "+playerColumns+" FROM players ORDER BY total_score DESC, id ASC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func (s *store) All() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT " + playerColumns + " FROM players ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func (s *store) StatsSummary(chatID int64) (*StatsSummary, error) {
	p, err := s.Find(chatID)
	if err != nil {
		return nil, err
	}
	return &StatsSummary{
		TotalGames: p.CorrectAnswers + p.IncorrectAnswers,
		Correct:    p.CorrectAnswers,
		Incorrect:  p.IncorrectAnswers,
		Accuracy:   p.Accuracy(),
		TotalScore: p.TotalScore,
	}, nil
}

func (s *store) ResetStats(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE players
		SET total_score = 0, correct_answers = 0, incorrect_answers = 0, updated_at = ?
		WHERE chat_id = ?`,
		time.Now().Unix(), chatID)
	if err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("chatID %d: %w", chatID, ErrNotFound)
	}
	log.Info("Player stats reset", "chatID", chatID)
	return nil
}

func (s *store) Delete(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM players WHERE chat_id = ?", chatID)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("chatID %d: %w", chatID, ErrNotFound)
	}
	log.Info("Player deleted", "chatID", chatID)
	return nil
}

func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM players")
	return err
}

func scanPlayer(row *sql.Row) (*Player, error) {
	var p Player
	var username, firstName, lastName sql.NullString
	err := row.Scan(&p.ID, &p.ChatID, &username, &firstName, &lastName,
		&p.TotalScore, &p.CorrectAnswers, &p.IncorrectAnswers, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Username = username.String
	p.FirstName = firstName.String
	p.LastName = lastName.String
	return &p, nil
}

func scanPlayers(rows *sql.Rows) ([]Player, error) {
	players := []Player{}
	for rows.Next() {
		var p Player
		var username, firstName, lastName sql.NullString
		if err := rows.Scan(&p.ID, &p.ChatID, &username, &firstName, &lastName,
			&p.TotalScore, &p.CorrectAnswers, &p.IncorrectAnswers, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Username = username.String
		p.FirstName = firstName.String
		p.LastName = lastName.String
		players = append(players, p)
	}
	return players, rows.Err()
}
