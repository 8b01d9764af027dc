package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mercury/internal/edi/models"
	"mercury/pkg/edierrors"
	"mercury/pkg/platform/httputil"
	"mercury/pkg/requestcontext"
)

// DocumentSeeder accepts documents for later conversion. The in-memory
// document store implements it; the postgres store is fed by the ingestion
// pipeline instead, so admin seeding stays a development affordance.
type DocumentSeeder interface {
	PutInfo(info models.DocumentInfo)
	PutRawText(ediInfoID, text string)
}

// DefinitionSeeder accepts segment structure rows.
type DefinitionSeeder interface {
	PutOverride(segmentID, agency, version string, defs []models.ElementDefinition)
	PutBase(segmentID, agency, version string, defs []models.ElementDefinition)
	PutUsage(transactionSetID, agency, version string, usage []models.SegmentUsage)
}

// Admin exposes seed endpoints for stores that support direct writes.
type Admin struct {
	documents      DocumentSeeder
	definitions    DefinitionSeeder
	logger         *slog.Logger
	defaultAgency  string
	defaultVersion string
}

// NewAdmin constructs the admin seed handler. Defaults fill in agency and
// version when seed requests omit them.
func NewAdmin(documents DocumentSeeder, definitions DefinitionSeeder, logger *slog.Logger, defaultAgency, defaultVersion string) *Admin {
	return &Admin{
		documents:      documents,
		definitions:    definitions,
		logger:         logger,
		defaultAgency:  defaultAgency,
		defaultVersion: defaultVersion,
	}
}

// Register mounts the seed endpoints on the router. The caller is expected to
// guard the group with the admin token middleware.
func (a *Admin) Register(r chi.Router) {
	r.Post("/admin/documents", a.HandleSeedDocument)
	r.Post("/admin/definitions", a.HandleSeedDefinitions)
	r.Post("/admin/usage", a.HandleSeedUsage)
}

// SeedDocumentRequest registers a document and its natural-language text.
type SeedDocumentRequest struct {
	InterchangeSender string `json:"interchange_sender"`
	EDIInfoID         string `json:"edi_info_id"`
	Type              string `json:"type"`
	StandardVersion   string `json:"standard_version"`
	TransactionName   string `json:"transaction_name"`
	RawText           string `json:"raw_text"`
}

// Validate normalizes and checks the seed document payload.
func (r *SeedDocumentRequest) Validate() error {
	r.InterchangeSender = strings.TrimSpace(r.InterchangeSender)
	r.EDIInfoID = strings.TrimSpace(r.EDIInfoID)
	r.TransactionName = strings.TrimSpace(r.TransactionName)
	if r.InterchangeSender == "" {
		return edierrors.New(edierrors.CodeValidation, "interchange_sender is required")
	}
	if r.EDIInfoID == "" {
		return edierrors.New(edierrors.CodeValidation, "edi_info_id is required")
	}
	if r.RawText == "" {
		return edierrors.New(edierrors.CodeValidation, "raw_text is required")
	}
	return nil
}

// SeedElement is one element definition row in a seed request.
type SeedElement struct {
	Position    int    `json:"position"`
	ElementID   string `json:"element_id"`
	Description string `json:"description"`
	Requirement string `json:"requirement"`
	Type        string `json:"type"`
	MinLength   int    `json:"min_length"`
	MaxLength   int    `json:"max_length"`
}

// SeedDefinitionsRequest installs element definitions for one segment.
// Override rows replace the base set wholesale at resolve time.
type SeedDefinitionsRequest struct {
	SegmentID string        `json:"segment_id"`
	Agency    string        `json:"agency"`
	Version   string        `json:"version"`
	Override  bool          `json:"override"`
	Elements  []SeedElement `json:"elements"`
}

// Validate normalizes and checks the seed definitions payload.
func (r *SeedDefinitionsRequest) Validate() error {
	r.SegmentID = strings.ToUpper(strings.TrimSpace(r.SegmentID))
	if r.SegmentID == "" {
		return edierrors.New(edierrors.CodeValidation, "segment_id is required")
	}
	if len(r.Elements) == 0 {
		return edierrors.New(edierrors.CodeValidation, "elements must not be empty")
	}
	for i, el := range r.Elements {
		if el.Position < 1 {
			return edierrors.Newf(edierrors.CodeValidation, "elements[%d]: position must be >= 1", i)
		}
		if el.ElementID == "" {
			return edierrors.Newf(edierrors.CodeValidation, "elements[%d]: element_id is required", i)
		}
	}
	return nil
}

func (r *SeedDefinitionsRequest) definitions() []models.ElementDefinition {
	defs := make([]models.ElementDefinition, 0, len(r.Elements))
	for _, el := range r.Elements {
		req := models.Requirement(el.Requirement)
		if req == "" {
			req = models.Optional
		}
		defs = append(defs, models.ElementDefinition{
			Position:    el.Position,
			ElementID:   el.ElementID,
			Description: el.Description,
			Requirement: req,
			Type:        models.ElementType(el.Type),
			MinLength:   el.MinLength,
			MaxLength:   el.MaxLength,
		})
	}
	return defs
}

// SeedUsageItem is one segment usage row in a seed request.
type SeedUsageItem struct {
	Position    int    `json:"position"`
	SegmentID   string `json:"segment_id"`
	Requirement string `json:"requirement"`
	MaxUsage    int    `json:"max_usage"`
	LoopID      string `json:"loop_id"`
}

// SeedUsageRequest installs segment usage rows for one transaction set.
type SeedUsageRequest struct {
	TransactionSetID string          `json:"transaction_set_id"`
	Agency           string          `json:"agency"`
	Version          string          `json:"version"`
	Segments         []SeedUsageItem `json:"segments"`
}

// Validate normalizes and checks the seed usage payload.
func (r *SeedUsageRequest) Validate() error {
	r.TransactionSetID = strings.TrimSpace(r.TransactionSetID)
	if r.TransactionSetID == "" {
		return edierrors.New(edierrors.CodeValidation, "transaction_set_id is required")
	}
	if len(r.Segments) == 0 {
		return edierrors.New(edierrors.CodeValidation, "segments must not be empty")
	}
	return nil
}

// HandleSeedDocument handles POST /admin/documents requests.
func (a *Admin) HandleSeedDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SeedDocumentRequest](w, r, a.logger, ctx, requestID)
	if !ok {
		return
	}

	a.documents.PutInfo(models.DocumentInfo{
		InterchangeSender: req.InterchangeSender,
		EDIInfoID:         req.EDIInfoID,
		Type:              req.Type,
		StandardVersion:   req.StandardVersion,
		TransactionName:   req.TransactionName,
	})
	a.documents.PutRawText(req.EDIInfoID, req.RawText)

	a.logger.InfoContext(ctx, "document seeded",
		"request_id", requestID,
		"interchange_sender", req.InterchangeSender,
		"edi_info_id", req.EDIInfoID,
	)
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// HandleSeedDefinitions handles POST /admin/definitions requests.
func (a *Admin) HandleSeedDefinitions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SeedDefinitionsRequest](w, r, a.logger, ctx, requestID)
	if !ok {
		return
	}

	agency, version := a.scope(req.Agency, req.Version)
	if req.Override {
		a.definitions.PutOverride(req.SegmentID, agency, version, req.definitions())
	} else {
		a.definitions.PutBase(req.SegmentID, agency, version, req.definitions())
	}

	a.logger.InfoContext(ctx, "definitions seeded",
		"request_id", requestID,
		"segment_id", req.SegmentID,
		"agency", agency,
		"version", version,
		"override", req.Override,
		"elements", len(req.Elements),
	)
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// HandleSeedUsage handles POST /admin/usage requests.
func (a *Admin) HandleSeedUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SeedUsageRequest](w, r, a.logger, ctx, requestID)
	if !ok {
		return
	}

	agency, version := a.scope(req.Agency, req.Version)
	usage := make([]models.SegmentUsage, 0, len(req.Segments))
	for _, seg := range req.Segments {
		usage = append(usage, models.SegmentUsage{
			Position:    seg.Position,
			SegmentID:   seg.SegmentID,
			Requirement: models.Requirement(seg.Requirement),
			MaxUsage:    seg.MaxUsage,
			LoopID:      seg.LoopID,
		})
	}
	a.definitions.PutUsage(req.TransactionSetID, agency, version, usage)

	a.logger.InfoContext(ctx, "usage seeded",
		"request_id", requestID,
		"transaction_set_id", req.TransactionSetID,
		"agency", agency,
		"version", version,
		"segments", len(usage),
	)
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (a *Admin) scope(agency, version string) (string, string) {
	if agency == "" {
		agency = a.defaultAgency
	}
	if version == "" {
		version = a.defaultVersion
	}
	return agency, version
}
