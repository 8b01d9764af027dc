// Package builder assembles EDI X12 segment strings from extracted
// transaction data, driven by the segment definitions the structure resolver
// provides. The build itself is pure and synchronous; resolution is the only
// call that crosses into a data source.
package builder

import (
	"context"
	"fmt"
	"strings"

	"mercury/internal/edi/element"
	"mercury/internal/edi/models"
)

const (
	fieldDelimiter    = "*"
	segmentTerminator = "~"
)

// Resolver provides the ordered element definitions for one segment key.
// *structure.Resolver satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, segmentID, agency, version string) (*models.DefinitionSet, error)
}

// Policy controls how a build reacts to a mandatory element with no value.
// Either way the miss is recorded as an error finding; the policy only
// decides whether the owning segment is still emitted with an empty slot or
// withheld entirely.
type Policy struct {
	ContinueOnMissingMandatory bool
}

// DefaultPolicy emits segments with empty slots on mandatory misses so the
// caller can see exactly what is missing.
func DefaultPolicy() Policy {
	return Policy{ContinueOnMissingMandatory: true}
}

// UnsupportedTransactionTypeError aborts a whole build: no segment sequence
// is defined for the declared transaction set.
type UnsupportedTransactionTypeError struct {
	TransactionType string
}

func (e *UnsupportedTransactionTypeError) Error() string {
	return fmt.Sprintf("unsupported transaction type %q", e.TransactionType)
}

// Builder turns one TransactionData into a BuildResult. Safe for concurrent
// use; each Build call owns its own result and shares only the resolver.
type Builder struct {
	resolver Resolver
	policy   Policy
}

func New(resolver Resolver, policy Policy) *Builder {
	return &Builder{resolver: resolver, policy: policy}
}

// Build dispatches on the declared transaction set and assembles its segment
// sequence. Element- and segment-level problems are captured as findings and
// the build continues; only an unrecognized transaction set aborts outright
// with no partial segment list.
func (b *Builder) Build(ctx context.Context, data *models.TransactionData, agency, version string) (*models.BuildResult, error) {
	var pending []segment
	switch data.TransactionType {
	case models.TransactionSetInvoice:
		pending = invoiceSegments(data)
	case models.TransactionSetPurchaseOrder:
		pending = purchaseOrderSegments(data)
	default:
		return nil, &UnsupportedTransactionTypeError{TransactionType: data.TransactionType}
	}

	result := &models.BuildResult{}
	run := &buildRun{builder: b, result: result, agency: agency, version: version, warned: make(map[string]bool)}
	for _, sg := range pending {
		run.assemble(ctx, sg)
	}
	return result, nil
}

// buildRun is the per-invocation state: the accumulating result plus the set
// of segment IDs already warned about, so a repeated segment type reports its
// data-integrity defects once per build instead of once per instance.
type buildRun struct {
	builder *Builder
	result  *models.BuildResult
	agency  string
	version string
	warned  map[string]bool
}

func (r *buildRun) assemble(ctx context.Context, sg segment) {
	defs, err := r.builder.resolver.Resolve(ctx, sg.id, r.agency, r.version)
	if err != nil {
		// Fatal for this segment only: record and let siblings build.
		r.error(fmt.Sprintf("segment %s: %v", strings.ToUpper(sg.id), err))
		return
	}

	if len(defs.DuplicatePositions) > 0 && !r.warned[defs.SegmentID] {
		r.warned[defs.SegmentID] = true
		r.warning(fmt.Sprintf("segment %s: duplicate element positions %v in definition source, first row kept",
			defs.SegmentID, defs.DuplicatePositions))
	}

	instance := models.SegmentInstance{SegmentID: defs.SegmentID}
	missingMandatory := false
	for pos := 1; pos <= defs.MaxPosition(); pos++ {
		def, ok := defs.At(pos)
		if !ok {
			// Undefined interior position renders as an empty field.
			instance.Elements = append(instance.Elements, "")
			continue
		}

		value, present := sg.value(pos)
		if !present {
			if def.Requirement == models.Mandatory {
				missingMandatory = true
				r.error(fmt.Sprintf("segment %s: missing mandatory element %s at position %d",
					defs.SegmentID, def.ElementID, pos))
			}
			instance.Elements = append(instance.Elements, "")
			continue
		}

		formatted, ferr := element.Format(value, def.Type, def.MaxLength)
		if ferr != nil {
			r.error(fmt.Sprintf("segment %s: element %s at position %d: %v",
				defs.SegmentID, def.ElementID, pos, ferr))
			instance.Elements = append(instance.Elements, "")
			continue
		}
		instance.Elements = append(instance.Elements, formatted)
	}

	if missingMandatory && !r.builder.policy.ContinueOnMissingMandatory {
		return
	}
	r.result.Segments = append(r.result.Segments, render(instance))
}

// render joins the element slots with the field delimiter and appends the
// segment terminator. Trailing empty slots are dropped; interior gaps keep
// their position as empty fields.
func render(instance models.SegmentInstance) string {
	elements := instance.Elements
	for len(elements) > 0 && elements[len(elements)-1] == "" {
		elements = elements[:len(elements)-1]
	}
	if len(elements) == 0 {
		return instance.SegmentID + segmentTerminator
	}
	return instance.SegmentID + fieldDelimiter + strings.Join(elements, fieldDelimiter) + segmentTerminator
}

func (r *buildRun) error(msg string) {
	r.result.Findings = append(r.result.Findings, models.Finding{Severity: models.SeverityError, Message: msg})
}

func (r *buildRun) warning(msg string) {
	r.result.Findings = append(r.result.Findings, models.Finding{Severity: models.SeverityWarning, Message: msg})
}
