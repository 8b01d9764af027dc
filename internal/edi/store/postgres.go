package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mercury/internal/edi/models"
	"mercury/pkg/platform/sentinel"
)

// Postgres reads document rows from the mercury schema.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed document store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Info(ctx context.Context, interchangeSender, ediInfoID string) (*models.DocumentInfo, error) {
	const q = `
		SELECT interchange_sender, edi_info_id, type, standard_version, transaction_name
		FROM mercury.edi_info
		WHERE interchange_sender = $1 AND edi_info_id = $2`

	var info models.DocumentInfo
	err := s.db.QueryRowContext(ctx, q, interchangeSender, ediInfoID).Scan(
		&info.InterchangeSender,
		&info.EDIInfoID,
		&info.Type,
		&info.StandardVersion,
		&info.TransactionName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("edi info %s/%s: %w", interchangeSender, ediInfoID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query edi info: %w", err)
	}
	return &info, nil
}

func (s *Postgres) RawText(ctx context.Context, ediInfoID string) (string, error) {
	return s.rawData(ctx, ediInfoID+SuffixNaturalLanguage)
}

func (s *Postgres) rawData(ctx context.Context, docID string) (string, error) {
	const q = `SELECT raw_data FROM mercury.raw_processed_data WHERE doc_id = $1`

	var raw string
	err := s.db.QueryRowContext(ctx, q, docID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("raw data %s: %w", docID, sentinel.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("query raw data: %w", err)
	}
	return raw, nil
}
