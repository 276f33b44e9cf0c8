package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"gridquote/pkg/models"
)

// QuoteRepo persists AuthenticatedQuotes. Only authenticated quotes are
// ever written: estimates have no business in durable storage, which is
// the export path's source of truth.
type QuoteRepo struct{}

// NewQuoteRepo creates a repository instance.
func NewQuoteRepo() *QuoteRepo {
	return &QuoteRepo{}
}

// Save upserts a quote by its quote id.
//
// Schema assumption (managed by migrations elsewhere):
//
//	CREATE TABLE IF NOT EXISTS quotes (
//	  quote_id TEXT PRIMARY KEY,
//	  industry TEXT,
//	  state TEXT,
//	  quote_json JSONB,
//	  created_at TIMESTAMPTZ
//	);
func (r *QuoteRepo) Save(ctx context.Context, q *models.AuthenticatedQuote) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	query := `
		INSERT INTO quotes (quote_id, industry, state, quote_json, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (quote_id)
		DO UPDATE SET
			industry = EXCLUDED.industry,
			state = EXCLUDED.state,
			quote_json = EXCLUDED.quote_json;
	`

	_, err = pool.Exec(ctx, query, q.QuoteID, q.Input.Industry, q.Input.Location.State, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save quote: %w", err)
	}
	return nil
}

// Load retrieves a quote by id.
func (r *QuoteRepo) Load(ctx context.Context, quoteID string) (*models.AuthenticatedQuote, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT quote_json FROM quotes WHERE quote_id = $1`, quoteID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no quote found for id %s", quoteID)
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	var q models.AuthenticatedQuote
	if err := json.Unmarshal(jsonData, &q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	return &q, nil
}

// ListRecent returns the newest quote ids, most recent first.
func (r *QuoteRepo) ListRecent(ctx context.Context, limit int) ([]string, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT quote_id FROM quotes ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
