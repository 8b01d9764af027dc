package structure

import (
	"context"
	"database/sql"
	"fmt"

	"mercury/internal/edi/models"
)

// PostgresStore reads segment structure from the mercury schema tables.
// This store is pure I/O; ordering, dedup and the override-wins rule live in
// the resolver.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed structure store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const elementColumns = `position, element_id, COALESCE(description, ''), requirement_designator,
	       type, minimum_length, maximum_length`

func (s *PostgresStore) OverrideDefinitions(ctx context.Context, segmentID, agency, version string) ([]models.ElementDefinition, error) {
	query := `
		SELECT ` + elementColumns + `
		FROM mercury.custom_elementusagedefs
		WHERE UPPER(segment_id) = $1 AND agency = $2 AND version = $3
		ORDER BY position ASC
	`
	defs, err := s.queryDefinitions(ctx, query, segmentID, agency, version)
	if err != nil {
		return nil, fmt.Errorf("query override definitions: %w", err)
	}
	return defs, nil
}

func (s *PostgresStore) BaseDefinitions(ctx context.Context, segmentID, agency, version string) ([]models.ElementDefinition, error) {
	query := `
		SELECT ` + elementColumns + `
		FROM mercury.elementusagedefs
		WHERE UPPER(segment_id) = $1 AND agency = $2 AND version = $3
		ORDER BY position ASC
	`
	defs, err := s.queryDefinitions(ctx, query, segmentID, agency, version)
	if err != nil {
		return nil, fmt.Errorf("query base definitions: %w", err)
	}
	return defs, nil
}

func (s *PostgresStore) queryDefinitions(ctx context.Context, query, segmentID, agency, version string) ([]models.ElementDefinition, error) {
	rows, err := s.db.QueryContext(ctx, query, segmentID, agency, version)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []models.ElementDefinition
	for rows.Next() {
		var d models.ElementDefinition
		if err := rows.Scan(&d.Position, &d.ElementID, &d.Description, &d.Requirement, &d.Type, &d.MinLength, &d.MaxLength); err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// SegmentUsage returns the transaction-level segment ordering rows, custom
// table first with wholesale fallback to the base table.
func (s *PostgresStore) SegmentUsage(ctx context.Context, transactionSetID, agency, version string) ([]models.SegmentUsage, error) {
	usage, err := s.querySegmentUsage(ctx, "mercury.custom_segmentusage", transactionSetID, agency, version)
	if err != nil {
		return nil, fmt.Errorf("query custom segment usage: %w", err)
	}
	if len(usage) > 0 {
		return usage, nil
	}
	usage, err = s.querySegmentUsage(ctx, "mercury.segmentusage", transactionSetID, agency, version)
	if err != nil {
		return nil, fmt.Errorf("query segment usage: %w", err)
	}
	return usage, nil
}

func (s *PostgresStore) querySegmentUsage(ctx context.Context, table, transactionSetID, agency, version string) ([]models.SegmentUsage, error) {
	query := `
		SELECT position, segmentid, requirementdesignator, maximumusage, COALESCE(loopid, '')
		FROM ` + table + `
		WHERE transactionsetid = $1 AND agency = $2 AND version = $3
		ORDER BY position ASC
	`
	rows, err := s.db.QueryContext(ctx, query, transactionSetID, agency, version)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []models.SegmentUsage
	for rows.Next() {
		var u models.SegmentUsage
		if err := rows.Scan(&u.Position, &u.SegmentID, &u.Requirement, &u.MaxUsage, &u.LoopID); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
