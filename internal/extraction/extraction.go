// Package extraction turns free-text business documents into structured
// transaction data. The LLM is behind the Extractor interface; the rest of
// the system treats its output as an opaque, read-only TransactionData.
package extraction

import (
	"context"

	"mercury/internal/edi/models"
)

// Request carries the document text plus the hints the prompt needs.
type Request struct {
	Text            string
	TransactionType string
	MetadataSummary string
}

// Extractor produces structured transaction data from free text.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*models.TransactionData, error)
}
