package structure

import "mercury/internal/edi/models"

func el(pos int, id string, req models.Requirement, typ models.ElementType, min, max int) models.ElementDefinition {
	return models.ElementDefinition{Position: pos, ElementID: id, Requirement: req, Type: typ, MinLength: min, MaxLength: max}
}

// Seed loads the stock 004010 base definitions for every segment the 810 and
// 850 builders emit, plus the segment usage skeletons for both transaction
// sets. Used when no database is configured and by tests that need a fully
// populated source.
func Seed(s *InMemory, agency, version string) {
	const (
		m = models.Mandatory
		o = models.Optional
	)

	base := map[string][]models.ElementDefinition{
		"BIG": {
			el(1, "373", m, models.TypeDate, 8, 8),
			el(2, "76", m, models.TypeAlphanumeric, 1, 22),
			el(3, "373", o, models.TypeDate, 8, 8),
			el(4, "324", o, models.TypeAlphanumeric, 1, 22),
			el(5, "328", o, models.TypeAlphanumeric, 1, 30),
			el(6, "327", o, models.TypeAlphanumeric, 1, 8),
			el(7, "640", o, models.TypeIdentifier, 2, 2),
			el(8, "353", o, models.TypeIdentifier, 2, 2),
			el(9, "306", o, models.TypeIdentifier, 1, 2),
		},
		"BEG": {
			el(1, "353", m, models.TypeIdentifier, 2, 2),
			el(2, "92", m, models.TypeIdentifier, 2, 2),
			el(3, "324", m, models.TypeAlphanumeric, 1, 22),
			el(4, "328", o, models.TypeAlphanumeric, 1, 30),
			el(5, "373", m, models.TypeDate, 8, 8),
		},
		"CUR": {
			el(1, "98", m, models.TypeIdentifier, 2, 3),
			el(2, "100", m, models.TypeIdentifier, 3, 3),
		},
		"REF": {
			el(1, "128", m, models.TypeIdentifier, 2, 3),
			el(2, "127", o, models.TypeAlphanumeric, 1, 30),
			el(3, "352", o, models.TypeAlphanumeric, 1, 80),
		},
		"N1": {
			el(1, "98", m, models.TypeIdentifier, 2, 3),
			el(2, "93", o, models.TypeAlphanumeric, 1, 60),
			el(3, "66", o, models.TypeIdentifier, 1, 2),
			el(4, "67", o, models.TypeAlphanumeric, 2, 80),
			el(5, "706", o, models.TypeIdentifier, 2, 2),
			el(6, "98", o, models.TypeIdentifier, 2, 3),
		},
		"N3": {
			el(1, "166", m, models.TypeAlphanumeric, 1, 55),
			el(2, "166", o, models.TypeAlphanumeric, 1, 55),
		},
		"N4": {
			el(1, "19", o, models.TypeAlphanumeric, 2, 30),
			el(2, "156", o, models.TypeIdentifier, 2, 2),
			el(3, "116", o, models.TypeIdentifier, 3, 15),
			el(4, "26", o, models.TypeIdentifier, 2, 3),
		},
		"PER": {
			el(1, "366", m, models.TypeIdentifier, 2, 2),
			el(2, "93", o, models.TypeAlphanumeric, 1, 60),
			el(3, "365", o, models.TypeIdentifier, 2, 2),
			el(4, "364", o, models.TypeAlphanumeric, 1, 80),
			el(5, "365", o, models.TypeIdentifier, 2, 2),
			el(6, "364", o, models.TypeAlphanumeric, 1, 80),
			el(7, "365", o, models.TypeIdentifier, 2, 2),
			el(8, "364", o, models.TypeAlphanumeric, 1, 80),
		},
		"LM": {
			el(1, "559", m, models.TypeIdentifier, 2, 2),
			el(2, "822", o, models.TypeAlphanumeric, 1, 15),
		},
		"LQ": {
			el(1, "1270", o, models.TypeIdentifier, 1, 3),
			el(2, "1271", o, models.TypeAlphanumeric, 1, 30),
		},
		"FA1": {
			el(1, "559", m, models.TypeIdentifier, 2, 2),
			el(2, "1300", o, models.TypeAlphanumeric, 4, 4),
			el(3, "248", o, models.TypeIdentifier, 1, 1),
		},
		"FA2": {
			el(1, "1196", m, models.TypeIdentifier, 2, 2),
			el(2, "1195", m, models.TypeAlphanumeric, 1, 80),
		},
		"IT1": {
			el(1, "350", o, models.TypeAlphanumeric, 1, 20),
			el(2, "358", m, models.TypeDecimal, 1, 10),
			el(3, "355", m, models.TypeIdentifier, 2, 2),
			el(4, "212", m, models.TypeDecimal, 1, 17),
			el(5, "639", o, models.TypeIdentifier, 2, 2),
			el(6, "235", o, models.TypeIdentifier, 2, 2),
			el(7, "234", o, models.TypeAlphanumeric, 1, 48),
			el(8, "235", o, models.TypeIdentifier, 2, 2),
			el(9, "234", o, models.TypeAlphanumeric, 1, 48),
			el(10, "235", o, models.TypeIdentifier, 2, 2),
			el(11, "234", o, models.TypeAlphanumeric, 1, 48),
		},
		"PO1": {
			el(1, "350", o, models.TypeAlphanumeric, 1, 20),
			el(2, "330", m, models.TypeDecimal, 1, 15),
			el(3, "355", m, models.TypeIdentifier, 2, 2),
			el(4, "212", o, models.TypeDecimal, 1, 17),
			el(5, "639", o, models.TypeIdentifier, 2, 2),
			el(6, "235", o, models.TypeIdentifier, 2, 2),
			el(7, "234", o, models.TypeAlphanumeric, 1, 48),
		},
		"PID": {
			el(1, "349", m, models.TypeIdentifier, 1, 1),
			el(2, "750", o, models.TypeAlphanumeric, 2, 3),
			el(3, "559", o, models.TypeIdentifier, 2, 2),
			el(4, "751", o, models.TypeAlphanumeric, 1, 12),
			el(5, "352", o, models.TypeAlphanumeric, 1, 80),
		},
		"PO4": {
			el(1, "356", o, models.TypeNumericNoDecimal, 1, 6),
		},
		"AMT": {
			el(1, "522", m, models.TypeIdentifier, 1, 3),
			el(2, "782", m, models.TypeDecimal, 1, 18),
		},
		"DTM": {
			el(1, "374", m, models.TypeIdentifier, 3, 3),
			el(2, "373", o, models.TypeDate, 8, 8),
			el(3, "337", o, models.TypeAlphanumeric, 4, 8),
		},
		"ITD": {
			el(1, "336", o, models.TypeIdentifier, 2, 2),
			el(2, "333", o, models.TypeIdentifier, 1, 2),
			el(3, "338", o, models.TypeDecimal, 1, 6),
			el(4, "351", o, models.TypeNumericNoDecimal, 1, 3),
			el(5, "370", o, models.TypeDate, 8, 8),
			el(6, "386", o, models.TypeNumericNoDecimal, 1, 3),
			el(7, "446", o, models.TypeDate, 8, 8),
		},
		"CAD": {
			el(1, "91", o, models.TypeIdentifier, 1, 2),
			el(2, "206", o, models.TypeAlphanumeric, 1, 4),
			el(3, "207", o, models.TypeAlphanumeric, 1, 10),
			el(4, "140", o, models.TypeIdentifier, 2, 4),
			el(5, "387", o, models.TypeAlphanumeric, 1, 35),
		},
		"TD5": {
			el(1, "133", o, models.TypeIdentifier, 1, 2),
			el(2, "66", o, models.TypeIdentifier, 1, 2),
			el(3, "67", o, models.TypeAlphanumeric, 2, 80),
			el(4, "91", o, models.TypeIdentifier, 1, 2),
			el(5, "387", o, models.TypeAlphanumeric, 1, 35),
		},
		"SAC": {
			el(1, "248", m, models.TypeIdentifier, 1, 1),
			el(2, "1300", o, models.TypeIdentifier, 4, 4),
			el(3, "559", o, models.TypeIdentifier, 2, 2),
			el(4, "1301", o, models.TypeAlphanumeric, 1, 10),
			el(5, "610", o, models.TypeNumericTwoDecimal, 1, 15),
		},
		"TDS": {
			el(1, "610", m, models.TypeNumericTwoDecimal, 1, 15),
		},
		"CTT": {
			el(1, "354", m, models.TypeNumericNoDecimal, 1, 6),
			el(2, "347", o, models.TypeDecimal, 1, 10),
		},
		"FOB": {
			el(1, "146", m, models.TypeIdentifier, 2, 2),
			el(2, "309", o, models.TypeIdentifier, 1, 2),
			el(3, "352", o, models.TypeAlphanumeric, 1, 80),
			el(4, "334", o, models.TypeIdentifier, 2, 2),
		},
		"N9": {
			el(1, "128", m, models.TypeIdentifier, 2, 3),
			el(2, "127", o, models.TypeAlphanumeric, 1, 30),
		},
		"MTX": {
			el(1, "363", o, models.TypeIdentifier, 3, 3),
			el(2, "1551", o, models.TypeAlphanumeric, 1, 4096),
		},
	}

	for segmentID, defs := range base {
		s.PutBase(segmentID, agency, version, defs)
	}

	s.PutUsage(models.TransactionSetInvoice, agency, version, []models.SegmentUsage{
		{Position: 10, SegmentID: "BIG", Requirement: "M", MaxUsage: 1},
		{Position: 20, SegmentID: "REF", Requirement: "O", MaxUsage: 12},
		{Position: 30, SegmentID: "N1", Requirement: "O", MaxUsage: 1, LoopID: "N1"},
		{Position: 40, SegmentID: "LM", Requirement: "O", MaxUsage: 1, LoopID: "LM"},
		{Position: 50, SegmentID: "FA1", Requirement: "O", MaxUsage: 1, LoopID: "FA1"},
		{Position: 60, SegmentID: "IT1", Requirement: "O", MaxUsage: 1, LoopID: "IT1"},
		{Position: 70, SegmentID: "DTM", Requirement: "O", MaxUsage: 10},
		{Position: 80, SegmentID: "ITD", Requirement: "O", MaxUsage: 5},
		{Position: 90, SegmentID: "CAD", Requirement: "O", MaxUsage: 1},
		{Position: 100, SegmentID: "SAC", Requirement: "O", MaxUsage: 1, LoopID: "SAC"},
		{Position: 110, SegmentID: "TDS", Requirement: "M", MaxUsage: 1},
		{Position: 120, SegmentID: "CTT", Requirement: "O", MaxUsage: 1},
	})
	s.PutUsage(models.TransactionSetPurchaseOrder, agency, version, []models.SegmentUsage{
		{Position: 10, SegmentID: "BEG", Requirement: "M", MaxUsage: 1},
		{Position: 20, SegmentID: "CUR", Requirement: "O", MaxUsage: 1},
		{Position: 30, SegmentID: "REF", Requirement: "O", MaxUsage: 12},
		{Position: 40, SegmentID: "FOB", Requirement: "O", MaxUsage: 1},
		{Position: 50, SegmentID: "SAC", Requirement: "O", MaxUsage: 1, LoopID: "SAC"},
		{Position: 60, SegmentID: "ITD", Requirement: "O", MaxUsage: 5},
		{Position: 70, SegmentID: "DTM", Requirement: "O", MaxUsage: 10},
		{Position: 80, SegmentID: "TD5", Requirement: "O", MaxUsage: 12},
		{Position: 90, SegmentID: "N9", Requirement: "O", MaxUsage: 1, LoopID: "N9"},
		{Position: 100, SegmentID: "N1", Requirement: "O", MaxUsage: 1, LoopID: "N1"},
		{Position: 110, SegmentID: "PO1", Requirement: "M", MaxUsage: 1, LoopID: "PO1"},
		{Position: 120, SegmentID: "CTT", Requirement: "O", MaxUsage: 1, LoopID: "CTT"},
		{Position: 130, SegmentID: "AMT", Requirement: "O", MaxUsage: 1},
	})
}
