// Package history persists scored transactions for the service's history
// endpoint.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fraudguard/fraudguard/internal/domain"
)

// Repository handles transaction history database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new history repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "history").Logger(),
	}
}

// Create inserts a scored transaction and returns its server-assigned id.
// Position is monotonic so List can return entries in exact insertion
// order regardless of clock precision.
func (r *Repository) Create(entry domain.HistoryEntry) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	query := `
		INSERT INTO transactions
		(id, position, trans_date_trans_time, merchant, category, amt, gender,
		 state, job, city_pop, lat, long, merch_lat, merch_lon, dist,
		 prediction, risk_score, is_fraud, risk_level, action_taken, created_at)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM transactions),
		 ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		id,
		entry.TransDateTransTime,
		entry.Merchant,
		string(entry.Category),
		entry.Amt,
		entry.Gender,
		entry.State,
		entry.Job,
		entry.CityPop,
		nullFloat(entry.Lat),
		nullFloat(entry.Long),
		entry.MerchLat,
		entry.MerchLon,
		entry.Dist,
		entry.Prediction,
		entry.RiskScore,
		boolToInt(entry.IsFraud),
		string(entry.RiskLevel),
		entry.ActionTaken,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create history entry: %w", err)
	}

	r.log.Info().
		Str("id", id).
		Str("merchant", entry.Merchant).
		Str("risk_level", string(entry.RiskLevel)).
		Float64("risk_score", entry.RiskScore).
		Msg("Transaction recorded")

	return id, nil
}

// List returns all entries in insertion order (chronological ascending).
// The dashboard relies on this order and never re-sorts on ingest.
func (r *Repository) List() ([]domain.HistoryEntry, error) {
	query := `
		SELECT id, trans_date_trans_time, merchant, category, amt, gender,
		       state, job, city_pop, lat, long, merch_lat, merch_lon, dist,
		       prediction, risk_score, is_fraud, risk_level, action_taken
		FROM transactions
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetByID returns one entry, or nil if the id is unknown.
func (r *Repository) GetByID(id string) (*domain.HistoryEntry, error) {
	query := `
		SELECT id, trans_date_trans_time, merchant, category, amt, gender,
		       state, job, city_pop, lat, long, merch_lat, merch_lon, dist,
		       prediction, risk_score, is_fraud, risk_level, action_taken
		FROM transactions
		WHERE id = ?
	`

	entry, err := scanEntry(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history entry: %w", err)
	}
	return &entry, nil
}

// Count returns the number of stored entries.
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

// PurgeOlderThan deletes entries recorded before the cutoff and returns
// how many were removed. Used by the daily retention job.
func (r *Repository) PurgeOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(
		"DELETE FROM transactions WHERE created_at < ?",
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purge count: %w", err)
	}
	if n > 0 {
		r.log.Info().Int64("purged", n).Time("cutoff", cutoff).Msg("History retention purge")
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.HistoryEntry, error) {
	var (
		entry     domain.HistoryEntry
		category  string
		riskLevel string
		isFraud   int
		lat       sql.NullFloat64
		long      sql.NullFloat64
	)

	err := row.Scan(
		&entry.ID,
		&entry.TransDateTransTime,
		&entry.Merchant,
		&category,
		&entry.Amt,
		&entry.Gender,
		&entry.State,
		&entry.Job,
		&entry.CityPop,
		&lat,
		&long,
		&entry.MerchLat,
		&entry.MerchLon,
		&entry.Dist,
		&entry.Prediction,
		&entry.RiskScore,
		&isFraud,
		&riskLevel,
		&entry.ActionTaken,
	)
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	entry.Category = domain.Category(category)
	entry.RiskLevel = domain.RiskLevel(riskLevel)
	entry.IsFraud = isFraud != 0
	if lat.Valid {
		entry.Lat = &lat.Float64
	}
	if long.Valid {
		entry.Long = &long.Float64
	}
	return entry, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
