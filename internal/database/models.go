package database

import (
	"time"

	"github.com/google/uuid"
)

// Schema creates the tables used by the repository
const Schema = `
CREATE TABLE IF NOT EXISTS custom_airports (
	code       CHAR(3) PRIMARY KEY,
	city       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS quotes (
	id         UUID PRIMARY KEY,
	mode       TEXT NOT NULL,
	text       TEXT NOT NULL,
	fields     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// CustomAirport represents an airport added by a user
type CustomAirport struct {
	Code      string    `json:"code"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuoteRecord represents a rendered quote in the database
type QuoteRecord struct {
	ID        uuid.UUID `json:"id"`
	Mode      string    `json:"mode"`
	Text      string    `json:"text"`
	Fields    []byte    `json:"fields"`
	CreatedAt time.Time `json:"createdAt"`
}
