package models

// ElementType is the X12 data type of one element position.
type ElementType string

const (
	TypeDate              ElementType = "DT"
	TypeNumericNoDecimal  ElementType = "N0"
	TypeNumericTwoDecimal ElementType = "N2"
	TypeDecimal           ElementType = "R"
	TypeAlphanumeric      ElementType = "AN"
	TypeIdentifier        ElementType = "ID"
)

// Requirement is the X12 requirement designator for an element.
type Requirement string

const (
	Mandatory Requirement = "M"
	Optional  Requirement = "O"
)

// ElementDefinition describes one element position within a segment, as
// stored in the elementusagedefs tables.
//
// Invariants:
//   - Position >= 1
//   - MaxLength >= MinLength >= 0
//   - Immutable once resolved for a (segment, agency, version) key
type ElementDefinition struct {
	Position    int         `json:"position"`
	ElementID   string      `json:"element_id"`
	Description string      `json:"description,omitempty"`
	Requirement Requirement `json:"requirement_designator"`
	Type        ElementType `json:"type"`
	MinLength   int         `json:"minimum_length"`
	MaxLength   int         `json:"maximum_length"`
}

// DefinitionSet is the ordered element structure for one segment under one
// agency/version. Override rows win wholesale over base rows; the two sources
// are never merged element-by-element.
type DefinitionSet struct {
	SegmentID string
	Agency    string
	Version   string

	// Elements is sorted by Position ascending with at most one entry per
	// position.
	Elements []ElementDefinition

	// DuplicatePositions lists positions that appeared more than once in the
	// source rows. Duplicates are a data-integrity defect the caller surfaces
	// as a warning; the first row per position is kept.
	DuplicatePositions []int
}

// MaxPosition returns the highest defined element position, or 0 for an
// empty set.
func (s *DefinitionSet) MaxPosition() int {
	if len(s.Elements) == 0 {
		return 0
	}
	return s.Elements[len(s.Elements)-1].Position
}

// At returns the definition at the given 1-based position, if any.
func (s *DefinitionSet) At(position int) (ElementDefinition, bool) {
	for _, e := range s.Elements {
		if e.Position == position {
			return e, true
		}
		if e.Position > position {
			break
		}
	}
	return ElementDefinition{}, false
}

// SegmentUsage is one row of the transaction-level segment ordering tables
// (segmentusage), used to summarize the expected shape of a transaction set.
type SegmentUsage struct {
	Position    int         `json:"position"`
	SegmentID   string      `json:"segmentid"`
	Requirement Requirement `json:"requirementdesignator"`
	MaxUsage    int         `json:"maximumusage"`
	LoopID      string      `json:"loopid,omitempty"`
}
