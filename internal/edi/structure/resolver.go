// Package structure resolves segment element definitions from the two-tier
// schema tables: the custom (override) table wins wholesale when it has any
// rows for a (segment, agency, version) key, otherwise the base table is
// used. The two tiers are never merged element-by-element.
package structure

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"mercury/internal/edi/models"
	"mercury/pkg/platform/sentinel"
)

// Source provides raw definition rows. Implementations are pure I/O; row
// ordering and deduplication happen in the resolver.
type Source interface {
	OverrideDefinitions(ctx context.Context, segmentID, agency, version string) ([]models.ElementDefinition, error)
	BaseDefinitions(ctx context.Context, segmentID, agency, version string) ([]models.ElementDefinition, error)
	SegmentUsage(ctx context.Context, transactionSetID, agency, version string) ([]models.SegmentUsage, error)
}

// Cache is an optional read-through tier for resolved definition sets,
// keyed by (segment, agency, version). Definitions are immutable per key, so
// staleness is bounded only by the cache's own TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]models.ElementDefinition, bool, error)
	Set(ctx context.Context, key string, defs []models.ElementDefinition) error
}

// NotFoundError reports that neither the override nor the base table has
// element definitions for a key. Fatal for the segment, non-retryable
// without a data fix.
type NotFoundError struct {
	SegmentID string
	Agency    string
	Version   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no segment structure for %s agency=%s version=%s", e.SegmentID, e.Agency, e.Version)
}

func (e *NotFoundError) Unwrap() error { return sentinel.ErrNotFound }

// Resolver looks up and normalizes definition sets. Safe for concurrent use;
// the in-process map is the only shared state and is mutex-guarded.
type Resolver struct {
	source Source
	cache  Cache // optional second tier, may be nil

	mu   sync.RWMutex
	sets map[string]*models.DefinitionSet
}

// NewResolver builds a resolver over the given source. cache may be nil.
func NewResolver(source Source, cache Cache) *Resolver {
	return &Resolver{
		source: source,
		cache:  cache,
		sets:   make(map[string]*models.DefinitionSet),
	}
}

func cacheKey(segmentID, agency, version string) string {
	return segmentID + "_" + agency + "_" + version
}

// Resolve returns the definition set for a segment. Segment ID matching is
// case-insensitive; the canonical upper-case form is used everywhere
// downstream. Repeated calls for the same key are idempotent.
func (r *Resolver) Resolve(ctx context.Context, segmentID, agency, version string) (*models.DefinitionSet, error) {
	segmentID = strings.ToUpper(strings.TrimSpace(segmentID))
	key := cacheKey(segmentID, agency, version)

	r.mu.RLock()
	if set, ok := r.sets[key]; ok {
		r.mu.RUnlock()
		return set, nil
	}
	r.mu.RUnlock()

	if r.cache != nil {
		defs, ok, err := r.cache.Get(ctx, key)
		// Cache failures are soft: fall through to the source.
		if err == nil && ok {
			set := normalize(segmentID, agency, version, defs)
			r.store(key, set)
			return set, nil
		}
	}

	rows, err := r.source.OverrideDefinitions(ctx, segmentID, agency, version)
	if err != nil {
		return nil, fmt.Errorf("resolve %s override definitions: %w", segmentID, err)
	}
	if len(rows) == 0 {
		rows, err = r.source.BaseDefinitions(ctx, segmentID, agency, version)
		if err != nil {
			return nil, fmt.Errorf("resolve %s base definitions: %w", segmentID, err)
		}
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{SegmentID: segmentID, Agency: agency, Version: version}
	}

	set := normalize(segmentID, agency, version, rows)
	if r.cache != nil {
		_ = r.cache.Set(ctx, key, set.Elements)
	}
	r.store(key, set)
	return set, nil
}

// Usage returns the ordered segment usage rows for a transaction set,
// deduplicated by segment ID with first occurrence winning.
func (r *Resolver) Usage(ctx context.Context, transactionSetID, agency, version string) ([]models.SegmentUsage, error) {
	rows, err := r.source.SegmentUsage(ctx, transactionSetID, agency, version)
	if err != nil {
		return nil, fmt.Errorf("resolve %s segment usage: %w", transactionSetID, err)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, row := range rows {
		if seen[row.SegmentID] {
			continue
		}
		seen[row.SegmentID] = true
		out = append(out, row)
	}
	return out, nil
}

func (r *Resolver) store(key string, set *models.DefinitionSet) {
	r.mu.Lock()
	r.sets[key] = set
	r.mu.Unlock()
}

// normalize sorts rows by position and drops duplicate positions, keeping the
// first row per position and recording the duplicates for the caller to
// surface as a data-integrity warning.
func normalize(segmentID, agency, version string, rows []models.ElementDefinition) *models.DefinitionSet {
	sorted := make([]models.ElementDefinition, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	set := &models.DefinitionSet{SegmentID: segmentID, Agency: agency, Version: version}
	lastPos := -1
	for _, row := range sorted {
		if row.Position == lastPos {
			set.DuplicatePositions = append(set.DuplicatePositions, row.Position)
			continue
		}
		lastPos = row.Position
		set.Elements = append(set.Elements, row)
	}
	return set
}
