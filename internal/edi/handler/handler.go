package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mercury/internal/edi/service"
	"mercury/pkg/platform/httputil"
	"mercury/pkg/requestcontext"
)

// Service defines the conversion operations the handler exposes.
type Service interface {
	Convert(ctx context.Context, req service.ConvertRequest) (*service.ConvertResult, error)
	ConvertBatch(ctx context.Context, reqs []service.ConvertRequest, concurrency int) []service.BatchItem
}

// Handler wires conversion endpoints to the conversion service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a conversion handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts conversion endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/convert_text_to_edi_v2", h.HandleConvert)
	r.Post("/convert_batch", h.HandleConvertBatch)
}

// HandleConvert handles POST /convert_text_to_edi_v2 requests.
func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ConvertRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Convert(ctx, req.toDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "conversion failed",
			"request_id", requestID,
			"interchange_sender", req.InterchangeSender,
			"edi_info_id", req.EDIInfoID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "conversion handled",
		"request_id", requestID,
		"interchange_sender", req.InterchangeSender,
		"edi_info_id", req.EDIInfoID,
		"status", result.Status,
		"segments", len(result.Segments),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleConvertBatch handles POST /convert_batch requests.
func (h *Handler) HandleConvertBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchConvertRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	domainReqs := make([]service.ConvertRequest, 0, len(req.Documents))
	for i := range req.Documents {
		domainReqs = append(domainReqs, req.Documents[i].toDomain())
	}
	items := h.service.ConvertBatch(ctx, domainReqs, req.Concurrency)

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	h.logger.InfoContext(ctx, "batch conversion handled",
		"request_id", requestID,
		"documents", len(items),
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromBatch(items))
}
