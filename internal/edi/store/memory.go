package store

import (
	"context"
	"fmt"
	"sync"

	"mercury/internal/edi/models"
	"mercury/pkg/platform/sentinel"
)

// InMemory implements Documents with in-process maps, for tests and local
// development without a database.
type InMemory struct {
	mu   sync.RWMutex
	info map[string]models.DocumentInfo
	raw  map[string]string
}

// NewInMemory creates an empty in-memory document store.
func NewInMemory() *InMemory {
	return &InMemory{
		info: make(map[string]models.DocumentInfo),
		raw:  make(map[string]string),
	}
}

func infoKey(interchangeSender, ediInfoID string) string {
	return interchangeSender + "/" + ediInfoID
}

// PutInfo registers document metadata, replacing any existing entry.
func (s *InMemory) PutInfo(info models.DocumentInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info[infoKey(info.InterchangeSender, info.EDIInfoID)] = info
}

// PutRawText stores the natural-language form of a document.
func (s *InMemory) PutRawText(ediInfoID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[ediInfoID+SuffixNaturalLanguage] = text
}

func (s *InMemory) Info(_ context.Context, interchangeSender, ediInfoID string) (*models.DocumentInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.info[infoKey(interchangeSender, ediInfoID)]
	if !ok {
		return nil, fmt.Errorf("edi info %s/%s: %w", interchangeSender, ediInfoID, sentinel.ErrNotFound)
	}
	return &info, nil
}

func (s *InMemory) RawText(_ context.Context, ediInfoID string) (string, error) {
	return s.rawData(ediInfoID + SuffixNaturalLanguage)
}

func (s *InMemory) rawData(docID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.raw[docID]
	if !ok {
		return "", fmt.Errorf("raw data %s: %w", docID, sentinel.ErrNotFound)
	}
	return raw, nil
}
