// Package store persists document metadata and ingested raw text. The
// raw_processed_data table keys the natural-language form of a document
// under a suffixed doc ID.
package store

import (
	"context"

	"mercury/internal/edi/models"
)

// SuffixNaturalLanguage is the doc ID suffix in raw_processed_data.
const SuffixNaturalLanguage = "_NL"

// Documents provides the registered metadata and raw text for one document.
// Missing rows surface as sentinel.ErrNotFound.
type Documents interface {
	Info(ctx context.Context, interchangeSender, ediInfoID string) (*models.DocumentInfo, error)
	RawText(ctx context.Context, ediInfoID string) (string, error)
}
