package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/bizsim/internal/session"
)

// ScoreEntry represents a single leaderboard record.
type ScoreEntry struct {
	ID         int64
	BusinessID string
	ProfileID  string
	Player     string
	Score      int
	Periods    int
	Outcome    string
	CreatedAt  time.Time
}

// SaveScore records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO scores (business_id, profile_id, player, score, periods, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.BusinessID, e.ProfileID, e.Player, e.Score, e.Periods, e.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveRunResult implements session.ResultSaver.
func (s *Store) SaveRunResult(r session.RunResult) error {
	_, err := s.SaveScore(ScoreEntry{
		BusinessID: r.BusinessID,
		ProfileID:  r.ProfileID,
		Player:     r.Player,
		Score:      r.Score,
		Periods:    r.Periods,
		Outcome:    string(r.Outcome),
	})
	return err
}

// Ensure Store implements ResultSaver
var _ session.ResultSaver = (*Store)(nil)

// TopScores retrieves the top N scores for the given business.
// Results are ordered by score descending.
func (s *Store) TopScores(businessID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, business_id, profile_id, player, score, periods, outcome, created_at
		 FROM scores
		 WHERE business_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		businessID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// AllScores retrieves all scores for the given business (no limit).
func (s *Store) AllScores(businessID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, business_id, profile_id, player, score, periods, outcome, created_at
		 FROM scores
		 WHERE business_id = ?
		 ORDER BY score DESC, id ASC`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.BusinessID, &e.ProfileID, &e.Player, &e.Score, &e.Periods, &e.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given business.
// Returns 0 if no scores exist.
func (s *Store) HighScore(businessID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE business_id = ?",
		businessID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given business.
func (s *Store) ClearScores(businessID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE business_id = ?", businessID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// BusinessStats contains aggregated statistics for a business.
type BusinessStats struct {
	BusinessID string
	RunsCount  int
	Victories  int
	HighScore  int
	AvgScore   float64
	AvgPeriods float64
	LastPlayed time.Time
}

// GetBusinessStats retrieves aggregated statistics for a specific business.
func (s *Store) GetBusinessStats(businessID string) (*BusinessStats, error) {
	stats := &BusinessStats{BusinessID: businessID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'victory' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(AVG(periods), 0)
		 FROM scores WHERE business_id = ?`,
		businessID,
	).Scan(&stats.RunsCount, &stats.Victories, &stats.HighScore, &stats.AvgScore, &stats.AvgPeriods)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get business stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE business_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		businessID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllStats retrieves statistics for every business that has been played.
func (s *Store) GetAllStats() (map[string]*BusinessStats, error) {
	rows, err := s.db.Query(
		`SELECT business_id, COUNT(*),
		        SUM(CASE WHEN outcome = 'victory' THEN 1 ELSE 0 END),
		        MAX(score), AVG(score), AVG(periods), MAX(created_at)
		 FROM scores
		 GROUP BY business_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*BusinessStats)
	for rows.Next() {
		var st BusinessStats
		var lastPlayed any
		if err := rows.Scan(&st.BusinessID, &st.RunsCount, &st.Victories, &st.HighScore, &st.AvgScore, &st.AvgPeriods, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.BusinessID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
