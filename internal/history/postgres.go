package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Alias1177/MoodTracker/models"
)

// PostgresStore is the database-backed prediction log, interchangeable with
// FileStore for deployments that already run Postgres.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, verifies the connection, and ensures the schema
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS predictions (
			id INTEGER PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			direction TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			strength TEXT NOT NULL,
			weighted_score DOUBLE PRECISION NOT NULL,
			price_at_prediction DOUBLE PRECISION NOT NULL,
			timeframe TEXT NOT NULL,
			signal_scores JSONB NOT NULL,
			price_after DOUBLE PRECISION,
			actual_change_pct DOUBLE PRECISION,
			was_correct BOOLEAN,
			checked_at TIMESTAMPTZ
		)
	`)
	return err
}

// Load reads the full record log ordered by id
func (s *PostgresStore) Load() ([]models.PredictionRecord, error) {
	rows, err := s.db.Query(`
		SELECT
			id, created_at, direction, confidence, strength, weighted_score,
			price_at_prediction, timeframe, signal_scores,
			price_after, actual_change_pct, was_correct, checked_at
		FROM predictions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying predictions: %w", err)
	}
	defer rows.Close()

	var records []models.PredictionRecord
	for rows.Next() {
		var (
			rec          models.PredictionRecord
			timeframe    string
			scoresJSON   []byte
			priceAfter   sql.NullFloat64
			actualChange sql.NullFloat64
			wasCorrect   sql.NullBool
			checkedAt    sql.NullTime
		)
		if err := rows.Scan(
			&rec.ID, &rec.Timestamp, &rec.Direction, &rec.Confidence, &rec.Strength,
			&rec.WeightedScore, &rec.PriceAtPrediction, &timeframe, &scoresJSON,
			&priceAfter, &actualChange, &wasCorrect, &checkedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning prediction row: %w", err)
		}

		parsed, err := time.ParseDuration(timeframe)
		if err != nil {
			return nil, fmt.Errorf("prediction %d has invalid timeframe %q: %w", rec.ID, timeframe, err)
		}
		rec.Timeframe = models.Duration(parsed)

		if err := json.Unmarshal(scoresJSON, &rec.SignalScores); err != nil {
			return nil, fmt.Errorf("prediction %d has invalid signal scores: %w", rec.ID, err)
		}

		if priceAfter.Valid {
			rec.Outcome.PriceAfter = &priceAfter.Float64
		}
		if actualChange.Valid {
			rec.Outcome.ActualChangePct = &actualChange.Float64
		}
		if wasCorrect.Valid {
			rec.Outcome.WasCorrect = &wasCorrect.Bool
		}
		if checkedAt.Valid {
			rec.Outcome.CheckedAt = &checkedAt.Time
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Replace upserts the full record log in one transaction
func (s *PostgresStore) Replace(records []models.PredictionRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO predictions (
			id, created_at, direction, confidence, strength, weighted_score,
			price_at_prediction, timeframe, signal_scores,
			price_after, actual_change_pct, was_correct, checked_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id)
		DO UPDATE SET
			price_after = EXCLUDED.price_after,
			actual_change_pct = EXCLUDED.actual_change_pct,
			was_correct = EXCLUDED.was_correct,
			checked_at = EXCLUDED.checked_at
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		scoresJSON, err := json.Marshal(rec.SignalScores)
		if err != nil {
			return fmt.Errorf("encoding signal scores for prediction %d: %w", rec.ID, err)
		}

		var (
			priceAfter   sql.NullFloat64
			actualChange sql.NullFloat64
			wasCorrect   sql.NullBool
			checkedAt    sql.NullTime
		)
		if rec.Outcome.PriceAfter != nil {
			priceAfter = sql.NullFloat64{Float64: *rec.Outcome.PriceAfter, Valid: true}
		}
		if rec.Outcome.ActualChangePct != nil {
			actualChange = sql.NullFloat64{Float64: *rec.Outcome.ActualChangePct, Valid: true}
		}
		if rec.Outcome.WasCorrect != nil {
			wasCorrect = sql.NullBool{Bool: *rec.Outcome.WasCorrect, Valid: true}
		}
		if rec.Outcome.CheckedAt != nil {
			checkedAt = sql.NullTime{Time: *rec.Outcome.CheckedAt, Valid: true}
		}

		if _, err := stmt.Exec(
			rec.ID, rec.Timestamp, rec.Direction, rec.Confidence, rec.Strength,
			rec.WeightedScore, rec.PriceAtPrediction, rec.Timeframe.String(), scoresJSON,
			priceAfter, actualChange, wasCorrect, checkedAt,
		); err != nil {
			return fmt.Errorf("upserting prediction %d: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// Close releases the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
