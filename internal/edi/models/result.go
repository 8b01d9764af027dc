package models

import "fmt"

// Severity classifies a build finding.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Finding is one validation or build problem. Errors are fatal for the unit
// they describe (an element, a segment, or the whole build); warnings never
// block emission.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// String renders the severity-prefixed form used in API responses,
// e.g. "ERROR: missing mandatory invoice number".
func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Severity, f.Message)
}

// SegmentInstance is one built segment before rendering: the segment ID plus
// its formatted element slots in position order. A nil-equivalent slot is the
// empty string, which still occupies its position between delimiters.
type SegmentInstance struct {
	SegmentID string
	Elements  []string
}

// BuildResult is the outcome of one transaction build. Created fresh per
// build invocation and never mutated after return.
type BuildResult struct {
	Segments []string  `json:"segments"`
	Findings []Finding `json:"findings"`
}

// HasErrors reports whether any finding carries error severity.
func (r *BuildResult) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Messages returns findings in their severity-prefixed string form, in order.
func (r *BuildResult) Messages() []string {
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.String())
	}
	return out
}
