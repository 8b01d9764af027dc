// Package service orchestrates the conversion pipeline: document lookup,
// LLM extraction, validation, and deterministic segment building.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"mercury/internal/edi/builder"
	"mercury/internal/edi/metrics"
	"mercury/internal/edi/models"
	"mercury/internal/edi/store"
	"mercury/internal/edi/structure"
	"mercury/internal/extraction"
	dErrors "mercury/pkg/edierrors"
	"mercury/pkg/platform/sentinel"
)

// Conversion statuses returned to the API.
const (
	StatusSuccess        = "success"
	StatusExtractionOnly = "extraction_only"
	StatusNeedsReview    = "needs_review"
	StatusFailed         = "failed"
)

// agencyMap translates the registered EDI standard family onto the agency
// code the structure tables are keyed by.
var agencyMap = map[string]string{
	"EDI/X12": "X",
	"EDIFACT": "E",
}

// ConvertRequest identifies one registered document and whether to build
// segments or stop after extraction.
type ConvertRequest struct {
	InterchangeSender string
	EDIInfoID         string
	BuildEDI          bool
}

// ConvertResult is the full pipeline outcome for one document.
type ConvertResult struct {
	ExtractedData    *models.TransactionData
	Segments         []string
	ValidationErrors []string
	Status           string
	TransactionType  string
}

// Service runs the conversion pipeline. Safe for concurrent use.
type Service struct {
	documents store.Documents
	extractor extraction.Extractor
	builder   *builder.Builder
	resolver  *structure.Resolver
	metrics   *metrics.Metrics
	logger    *slog.Logger

	defaultAgency  string
	defaultVersion string
	extractTimeout time.Duration
}

// Config carries the service dependencies and defaults.
type Config struct {
	Documents      store.Documents
	Extractor      extraction.Extractor
	Builder        *builder.Builder
	Resolver       *structure.Resolver
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	DefaultAgency  string
	DefaultVersion string
	ExtractTimeout time.Duration
}

// New validates the dependencies and builds the service.
func New(cfg Config) (*Service, error) {
	if cfg.Documents == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if cfg.Builder == nil {
		return nil, fmt.Errorf("builder is required")
	}
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("structure resolver is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DefaultAgency == "" {
		cfg.DefaultAgency = "X"
	}
	if cfg.DefaultVersion == "" {
		cfg.DefaultVersion = "004010"
	}
	return &Service{
		documents:      cfg.Documents,
		extractor:      cfg.Extractor,
		builder:        cfg.Builder,
		resolver:       cfg.Resolver,
		metrics:        cfg.Metrics,
		logger:         cfg.Logger,
		defaultAgency:  cfg.DefaultAgency,
		defaultVersion: cfg.DefaultVersion,
		extractTimeout: cfg.ExtractTimeout,
	}, nil
}

// Convert runs the whole pipeline for one document: metadata and raw text
// load in parallel, the extractor produces structured data, validation
// findings decide whether segment building proceeds, and the build result is
// folded into the response.
func (s *Service) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	var (
		info    *models.DocumentInfo
		rawText string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = s.documents.Info(gctx, req.InterchangeSender, req.EDIInfoID)
		return err
	})
	g.Go(func() error {
		var err error
		rawText, err = s.documents.RawText(gctx, req.EDIInfoID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound,
				fmt.Sprintf("document %s/%s not registered or not ingested", req.InterchangeSender, req.EDIInfoID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load document")
	}

	agency := s.defaultAgency
	if mapped, ok := agencyMap[info.Type]; ok {
		agency = mapped
	}
	version := info.StandardVersion
	if version == "" {
		version = s.defaultVersion
	}
	transactionType := info.TransactionName

	data, err := s.extract(ctx, rawText, transactionType, agency, version)
	if err != nil {
		s.metrics.IncrementConversion(StatusFailed, transactionType)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "extract transaction data")
	}

	findings := Validate(data, transactionType)
	result := &ConvertResult{ExtractedData: data, TransactionType: transactionType}

	switch {
	case !req.BuildEDI:
		result.Status = StatusExtractionOnly

	case !hasErrors(findings):
		built, buildErr := s.builder.Build(ctx, data, agency, version)
		if buildErr != nil {
			var unsupported *builder.UnsupportedTransactionTypeError
			if !errors.As(buildErr, &unsupported) {
				s.metrics.IncrementConversion(StatusFailed, transactionType)
				return nil, dErrors.Wrap(buildErr, dErrors.CodeInternal, "build EDI segments")
			}
			findings = append(findings, models.Finding{
				Severity: models.SeverityError,
				Message:  fmt.Sprintf("failed to build EDI segments: %v", buildErr),
			})
			result.Status = StatusFailed
			break
		}
		result.Segments = built.Segments
		findings = append(findings, built.Findings...)
		if built.HasErrors() {
			result.Status = StatusNeedsReview
		} else {
			result.Status = StatusSuccess
		}
		s.metrics.AddSegments(transactionType, len(built.Segments))

	default:
		result.Status = StatusNeedsReview
	}

	result.ValidationErrors = messages(findings)
	s.recordFindings(findings)
	s.metrics.IncrementConversion(result.Status, transactionType)
	s.logger.Info("conversion finished",
		"interchange_sender", req.InterchangeSender,
		"edi_info_id", req.EDIInfoID,
		"transaction_set", transactionType,
		"status", result.Status,
		"segments", len(result.Segments),
		"findings", len(findings))
	return result, nil
}

// BatchItem pairs one batch request with its outcome.
type BatchItem struct {
	Request ConvertRequest
	Result  *ConvertResult
	Err     error
}

// ConvertBatch runs conversions with bounded concurrency. Individual
// failures land in their item; the batch itself always returns.
func (s *Service) ConvertBatch(ctx context.Context, reqs []ConvertRequest, concurrency int) []BatchItem {
	if concurrency < 1 {
		concurrency = 1
	}
	items := make([]BatchItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, req := range reqs {
		items[i].Request = req
		g.Go(func() error {
			items[i].Result, items[i].Err = s.Convert(gctx, req)
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// extract prepares the metadata summary and calls the extractor under the
// configured timeout.
func (s *Service) extract(ctx context.Context, rawText, transactionType, agency, version string) (*models.TransactionData, error) {
	summary := fmt.Sprintf("Transaction %s version %s", transactionType, version)
	usage, err := s.resolver.Usage(ctx, transactionType, agency, version)
	if err != nil {
		// The summary is a prompt hint only; extraction proceeds without it.
		s.logger.Warn("segment usage lookup failed", "transaction_set", transactionType, "error", err)
	} else {
		summary = fmt.Sprintf("Transaction %s version %s with %d segments", transactionType, version, len(usage))
	}

	if s.extractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.extractTimeout)
		defer cancel()
	}

	start := time.Now()
	data, err := s.extractor.Extract(ctx, extraction.Request{
		Text:            rawText,
		TransactionType: transactionType,
		MetadataSummary: summary,
	})
	s.metrics.ObserveExtractionLatency(time.Since(start))
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Service) recordFindings(findings []models.Finding) {
	errorsN, warningsN := 0, 0
	for _, f := range findings {
		if f.Severity == models.SeverityError {
			errorsN++
		} else {
			warningsN++
		}
	}
	s.metrics.IncrementFindings(string(models.SeverityError), errorsN)
	s.metrics.IncrementFindings(string(models.SeverityWarning), warningsN)
}

func hasErrors(findings []models.Finding) bool {
	for _, f := range findings {
		if f.Severity == models.SeverityError {
			return true
		}
	}
	return false
}

func messages(findings []models.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.String())
	}
	return out
}
