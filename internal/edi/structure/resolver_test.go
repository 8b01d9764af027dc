package structure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"mercury/internal/edi/models"
	"mercury/pkg/platform/sentinel"
)

type ResolverSuite struct {
	suite.Suite
	source *InMemory
	ctx    context.Context
}

func (s *ResolverSuite) SetupTest() {
	s.source = NewInMemory()
	s.ctx = context.Background()
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func def(pos int, elementID string, req models.Requirement) models.ElementDefinition {
	return models.ElementDefinition{
		Position:    pos,
		ElementID:   elementID,
		Requirement: req,
		Type:        models.TypeAlphanumeric,
		MaxLength:   30,
	}
}

// TestTwoTierLookup verifies the override table wins wholesale and the base
// table only serves keys with no override rows.
func (s *ResolverSuite) TestTwoTierLookup() {
	s.Run("base rows serve when no override exists", func() {
		s.source.PutBase("REF", "X", "004010", []models.ElementDefinition{
			def(1, "128", models.Mandatory),
			def(2, "127", models.Optional),
		})
		r := NewResolver(s.source, nil)

		set, err := r.Resolve(s.ctx, "REF", "X", "004010")
		s.Require().NoError(err)
		s.Len(set.Elements, 2)
		s.Equal("128", set.Elements[0].ElementID)
	})

	s.Run("override rows replace base rows entirely", func() {
		s.source.PutBase("REF", "X", "004010", []models.ElementDefinition{
			def(1, "128", models.Mandatory),
			def(2, "127", models.Optional),
			def(3, "352", models.Optional),
		})
		s.source.PutOverride("REF", "X", "004010", []models.ElementDefinition{
			def(1, "128", models.Mandatory),
		})
		r := NewResolver(s.source, nil)

		set, err := r.Resolve(s.ctx, "REF", "X", "004010")
		s.Require().NoError(err)
		s.Require().Len(set.Elements, 1)
		s.Equal("128", set.Elements[0].ElementID)
	})

	s.Run("segment id matching is case-insensitive", func() {
		s.source.PutBase("BIG", "X", "004010", []models.ElementDefinition{def(1, "373", models.Mandatory)})
		r := NewResolver(s.source, nil)

		set, err := r.Resolve(s.ctx, "big", "X", "004010")
		s.Require().NoError(err)
		s.Equal("BIG", set.SegmentID)
		s.Len(set.Elements, 1)
	})

	s.Run("missing key fails with NotFoundError", func() {
		r := NewResolver(s.source, nil)

		_, err := r.Resolve(s.ctx, "ZZZ", "X", "004010")
		s.Require().Error(err)
		s.ErrorIs(err, sentinel.ErrNotFound)

		var nf *NotFoundError
		s.Require().ErrorAs(err, &nf)
		s.Equal("ZZZ", nf.SegmentID)
		s.Equal("X", nf.Agency)
		s.Equal("004010", nf.Version)
	})
}

// TestNormalization verifies position ordering and duplicate handling.
func (s *ResolverSuite) TestNormalization() {
	s.Run("rows sort by position", func() {
		s.source.PutBase("N1", "X", "004010", []models.ElementDefinition{
			def(4, "67", models.Optional),
			def(1, "98", models.Mandatory),
			def(2, "93", models.Optional),
		})
		r := NewResolver(s.source, nil)

		set, err := r.Resolve(s.ctx, "N1", "X", "004010")
		s.Require().NoError(err)
		s.Equal([]int{1, 2, 4}, []int{set.Elements[0].Position, set.Elements[1].Position, set.Elements[2].Position})
	})

	s.Run("duplicate positions keep first row and are recorded", func() {
		s.source.PutBase("N1", "X", "004010", []models.ElementDefinition{
			def(1, "98", models.Mandatory),
			def(2, "93", models.Optional),
			def(2, "66", models.Optional),
		})
		r := NewResolver(s.source, nil)

		set, err := r.Resolve(s.ctx, "N1", "X", "004010")
		s.Require().NoError(err)
		s.Len(set.Elements, 2)
		s.Equal("93", set.Elements[1].ElementID)
		s.Equal([]int{2}, set.DuplicatePositions)
	})
}

// countingSource wraps InMemory and counts source hits so caching behavior
// is observable.
type countingSource struct {
	*InMemory
	overrideCalls int
}

func (c *countingSource) OverrideDefinitions(ctx context.Context, segmentID, agency, version string) ([]models.ElementDefinition, error) {
	c.overrideCalls++
	return c.InMemory.OverrideDefinitions(ctx, segmentID, agency, version)
}

// TestInProcessCaching verifies repeated resolves for one key hit the source
// once.
func (s *ResolverSuite) TestInProcessCaching() {
	s.source.PutBase("DTM", "X", "004010", []models.ElementDefinition{def(1, "374", models.Mandatory)})
	counting := &countingSource{InMemory: s.source}
	r := NewResolver(counting, nil)

	for i := 0; i < 3; i++ {
		_, err := r.Resolve(s.ctx, "DTM", "X", "004010")
		s.Require().NoError(err)
	}
	s.Equal(1, counting.overrideCalls)
}

// stubCache is a Cache with canned contents.
type stubCache struct {
	entries map[string][]models.ElementDefinition
	sets    int
}

func (c *stubCache) Get(_ context.Context, key string) ([]models.ElementDefinition, bool, error) {
	defs, ok := c.entries[key]
	return defs, ok, nil
}

func (c *stubCache) Set(_ context.Context, key string, defs []models.ElementDefinition) error {
	c.sets++
	c.entries[key] = defs
	return nil
}

// TestSecondTierCache verifies the shared cache is consulted before the
// source and populated after a source hit.
func (s *ResolverSuite) TestSecondTierCache() {
	s.Run("cache hit skips the source", func() {
		cache := &stubCache{entries: map[string][]models.ElementDefinition{
			"TDS_X_004010": {def(1, "610", models.Mandatory)},
		}}
		r := NewResolver(s.source, cache)

		set, err := r.Resolve(s.ctx, "TDS", "X", "004010")
		s.Require().NoError(err)
		s.Len(set.Elements, 1)
	})

	s.Run("source hit populates the cache", func() {
		s.source.PutBase("CTT", "X", "004010", []models.ElementDefinition{def(1, "354", models.Mandatory)})
		cache := &stubCache{entries: map[string][]models.ElementDefinition{}}
		r := NewResolver(s.source, cache)

		_, err := r.Resolve(s.ctx, "CTT", "X", "004010")
		s.Require().NoError(err)
		s.Equal(1, cache.sets)
		s.Contains(cache.entries, "CTT_X_004010")
	})
}

// TestSeededUsage verifies Seed installs usage rows for both transaction
// sets and that duplicates dedup by segment ID.
func (s *ResolverSuite) TestSeededUsage() {
	Seed(s.source, "X", "004010")
	r := NewResolver(s.source, nil)

	usage, err := r.Usage(s.ctx, models.TransactionSetInvoice, "X", "004010")
	s.Require().NoError(err)
	s.Require().NotEmpty(usage)
	s.Equal("BIG", usage[0].SegmentID)

	usage, err = r.Usage(s.ctx, models.TransactionSetPurchaseOrder, "X", "004010")
	s.Require().NoError(err)
	s.Require().NotEmpty(usage)
	s.Equal("BEG", usage[0].SegmentID)
}
