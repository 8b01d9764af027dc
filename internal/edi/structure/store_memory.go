package structure

import (
	"context"
	"strings"
	"sync"

	"mercury/internal/edi/models"
)

// InMemory implements Source with in-process maps. It backs tests and local
// development when no database is configured; Seed populates it with the
// stock 004010 definitions.
type InMemory struct {
	mu        sync.RWMutex
	overrides map[string][]models.ElementDefinition
	base      map[string][]models.ElementDefinition
	usage     map[string][]models.SegmentUsage
}

// NewInMemory creates an empty in-memory structure store.
func NewInMemory() *InMemory {
	return &InMemory{
		overrides: make(map[string][]models.ElementDefinition),
		base:      make(map[string][]models.ElementDefinition),
		usage:     make(map[string][]models.SegmentUsage),
	}
}

func memKey(segmentID, agency, version string) string {
	return strings.ToUpper(segmentID) + "_" + agency + "_" + version
}

// PutOverride installs override rows for a key, replacing any existing ones.
func (s *InMemory) PutOverride(segmentID, agency, version string, defs []models.ElementDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[memKey(segmentID, agency, version)] = defs
}

// PutBase installs base rows for a key, replacing any existing ones.
func (s *InMemory) PutBase(segmentID, agency, version string, defs []models.ElementDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base[memKey(segmentID, agency, version)] = defs
}

// PutUsage installs segment usage rows for a transaction set key.
func (s *InMemory) PutUsage(transactionSetID, agency, version string, usage []models.SegmentUsage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage[memKey(transactionSetID, agency, version)] = usage
}

func (s *InMemory) OverrideDefinitions(_ context.Context, segmentID, agency, version string) ([]models.ElementDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDefs(s.overrides[memKey(segmentID, agency, version)]), nil
}

func (s *InMemory) BaseDefinitions(_ context.Context, segmentID, agency, version string) ([]models.ElementDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDefs(s.base[memKey(segmentID, agency, version)]), nil
}

func (s *InMemory) SegmentUsage(_ context.Context, transactionSetID, agency, version string) ([]models.SegmentUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.usage[memKey(transactionSetID, agency, version)]
	out := make([]models.SegmentUsage, len(rows))
	copy(out, rows)
	return out, nil
}

func cloneDefs(defs []models.ElementDefinition) []models.ElementDefinition {
	if defs == nil {
		return nil
	}
	out := make([]models.ElementDefinition, len(defs))
	copy(out, defs)
	return out
}
