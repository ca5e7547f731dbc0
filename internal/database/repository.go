package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cx-tal-miterani/flight-quote/shared/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

const uniqueViolation = "23505"

// Repository handles all database operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Connect opens a connection pool and verifies it
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Migrate creates missing tables
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// --- Airport Operations ---

// ListAirports returns user-added airports in insertion order
func (r *Repository) ListAirports(ctx context.Context) ([]models.Airport, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT code, city, created_at
		FROM custom_airports
		ORDER BY created_at ASC, code ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query airports: %w", err)
	}
	defer rows.Close()

	var airports []models.Airport
	for rows.Next() {
		var a CustomAirport
		if err := rows.Scan(&a.Code, &a.City, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan airport: %w", err)
		}
		airports = append(airports, models.Airport{City: a.City, Code: a.Code})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read airports: %w", err)
	}

	return airports, nil
}

// InsertAirport stores a user-added airport
func (r *Repository) InsertAirport(ctx context.Context, a models.Airport) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO custom_airports (code, city) VALUES ($1, $2)
	`, a.Code, a.City)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert airport: %w", err)
	}
	return nil
}

// --- Quote Operations ---

// SaveQuote stores a rendered quote with the fields it was rendered from
func (r *Repository) SaveQuote(ctx context.Context, q *models.Quote, fields models.Fields) error {
	id, err := uuid.Parse(q.ID)
	if err != nil {
		return fmt.Errorf("invalid quote id: %w", err)
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode quote fields: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO quotes (id, mode, text, fields) VALUES ($1, $2, $3, $4)
	`, id, string(q.Mode), q.Text, fieldsJSON)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

// GetQuote returns a quote by ID
func (r *Repository) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var rec QuoteRecord
	err := r.pool.QueryRow(ctx, `
		SELECT id, mode, text, fields, created_at
		FROM quotes
		WHERE id = $1
	`, id).Scan(&rec.ID, &rec.Mode, &rec.Text, &rec.Fields, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	return &models.Quote{
		ID:   rec.ID.String(),
		Mode: models.QuoteMode(rec.Mode),
		Text: rec.Text,
	}, nil
}
