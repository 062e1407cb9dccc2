package game

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// NewStore creates a new RoundStore backed by the given database.
func NewStore(db *sql.DB) RoundStore {
	return &store{db: db}
}

const roundColumns = "id, chat_id, country_code, country_name, flag_url, answer, is_correct, points, time_spent, status, played_at"

func (s *store) Insert(r *Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO rounds (id, chat_id, country_code, country_name, flag_url, answer, is_correct, points, time_spent, status, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ChatID, r.CountryCode, r.CountryName, r.FlagURL, r.Answer, r.IsCorrect, r.Points, r.TimeSpent, r.Status, r.PlayedAt)
	if err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}
	return nil
}

func (s *store) Get(id string) (*Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(id)
}

func (s *store) get(id string) (*Round, error) {
	row := s.db.QueryRow("SELECT "+roundColumns+" FROM rounds WHERE id = ?", id)
	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("id %s: %w", id, ErrRoundNotFound)
	}
	return r, err
}

func (s *store) FindPending(chatID int64) (*Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT "+roundColumns+" FROM rounds WHERE chat_id = ? AND status = ? ORDER BY played_at DESC LIMIT 1", chatID, StatusPending)
	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

func (s *store) MarkResolved(id, answer string, isCorrect bool, points int, timeSpent int64) (*Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The status guard in the WHERE clause is the compare-and-set: only one
	// of two concurrent resolutions can flip PENDING to RESOLVED.
	res, err := s.db.Exec(`
		UPDATE rounds
		SET answer = ?, is_correct = ?, points = ?, time_spent = ?, status = ?
		WHERE id = ? AND status = ?`,
		answer, isCorrect, points, timeSpent, StatusResolved, id, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve round: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if _, err := s.get(id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("id %s: %w", id, ErrRoundAlreadyResolved)
	}

	return s.get(id)
}

func (s *store) MarkPending(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE rounds
		SET answer = '', is_correct = 0, points = 0, time_spent = NULL, status = ?
		WHERE id = ?`,
		StatusPending, id)
	return err
}

func (s *store) AbandonPending(chatID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE rounds SET status = ? WHERE chat_id = ? AND status = ?", StatusAbandoned, chatID, StatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to abandon pending round: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		log.Info("Abandoned pending round", "chatID", chatID)
	}
	return affected > 0, nil
}

func (s *store) RoundsFor(chatID int64) ([]Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT "+roundColumns+" FROM rounds WHERE chat_id = ? ORDER BY played_at DESC, id DESC", chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRounds(rows)
}

func (s *store) Recent(chatID int64, n int) ([]Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT "+roundColumns+" FROM rounds WHERE chat_id = ? ORDER BY played_at DESC, id DESC LIMIT ?", chatID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRounds(rows)
}

func (s *store) Count(chatID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM rounds WHERE chat_id = ?", chatID).Scan(&count)
	return count, err
}

func (s *store) CountryStats() ([]CountryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT country_code, country_name, COUNT(*), SUM(is_correct)
		FROM rounds
		WHERE status = ?
		GROUP BY country_code, country_name
		ORDER BY COUNT(*) DESC`, StatusResolved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCountryStats(rows)
}

func (s *store) Hardest(minAttempts, limit int) ([]CountryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT country_code, country_name, COUNT(*) AS attempts, SUM(is_correct)
		FROM rounds
		WHERE status = ?
		GROUP BY country_code, country_name
		HAVING attempts >= ?
		ORDER BY CAST(SUM(is_correct) AS REAL) / COUNT(*) ASC
		LIMIT ?`, StatusResolved, minAttempts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCountryStats(rows)
}

func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM rounds")
	return err
}

func scanRound(scanner interface{ Scan(...any) error }) (*Round, error) {
	var r Round
	var answer, flagURL sql.NullString
	var timeSpent sql.NullInt64

	err := scanner.Scan(&r.ID, &r.ChatID, &r.CountryCode, &r.CountryName, &flagURL,
		&answer, &r.IsCorrect, &r.Points, &timeSpent, &r.Status, &r.PlayedAt)
	if err != nil {
		return nil, err
	}
	r.FlagURL = flagURL.String
	r.Answer = answer.String
	if timeSpent.Valid {
		r.TimeSpent = &timeSpent.Int64
	}
	return &r, nil
}

func scanRounds(rows *sql.Rows) ([]Round, error) {
	rounds := []Round{}
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, *r)
	}
	return rounds, rows.Err()
}

func scanCountryStats(rows *sql.Rows) ([]CountryStats, error) {
	stats := []CountryStats{}
	for rows.Next() {
		var cs CountryStats
		if err := rows.Scan(&cs.CountryCode, &cs.CountryName, &cs.Attempts, &cs.Correct); err != nil {
			return nil, err
		}
		if cs.Attempts > 0 {
			cs.SuccessRate = float64(cs.Correct) * 100.0 / float64(cs.Attempts)
		}
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}
