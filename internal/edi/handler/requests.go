package handler

import (
	"strings"

	"mercury/internal/edi/service"
	dErrors "mercury/pkg/edierrors"
)

// ConvertRequest is the HTTP request body for POST /convert_text_to_edi_v2.
type ConvertRequest struct {
	InterchangeSender string `json:"interchange_sender"`
	EDIInfoID         string `json:"edi_info_id"`
	BuildEDI          *bool  `json:"build_edi"`
}

// Validate normalizes and validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ConvertRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.InterchangeSender = strings.TrimSpace(r.InterchangeSender)
	if r.InterchangeSender == "" {
		return dErrors.New(dErrors.CodeValidation, "interchange_sender is required")
	}
	r.EDIInfoID = strings.TrimSpace(r.EDIInfoID)
	if r.EDIInfoID == "" {
		return dErrors.New(dErrors.CodeValidation, "edi_info_id is required")
	}
	return nil
}

// buildEDI defaults to true when the flag is omitted.
func (r *ConvertRequest) buildEDI() bool {
	return r.BuildEDI == nil || *r.BuildEDI
}

func (r *ConvertRequest) toDomain() service.ConvertRequest {
	return service.ConvertRequest{
		InterchangeSender: r.InterchangeSender,
		EDIInfoID:         r.EDIInfoID,
		BuildEDI:          r.buildEDI(),
	}
}

// BatchConvertRequest is the HTTP request body for POST /convert_batch.
type BatchConvertRequest struct {
	Documents   []ConvertRequest `json:"documents"`
	Concurrency int              `json:"concurrency"`
}

const maxBatchSize = 50

// Validate checks the batch shape and every contained document.
func (r *BatchConvertRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Documents) == 0 {
		return dErrors.New(dErrors.CodeValidation, "documents is required")
	}
	if len(r.Documents) > maxBatchSize {
		return dErrors.Newf(dErrors.CodeValidation, "documents must contain at most %d entries", maxBatchSize)
	}
	for i := range r.Documents {
		if err := r.Documents[i].Validate(); err != nil {
			return err
		}
	}
	if r.Concurrency == 0 {
		r.Concurrency = 4
	}
	if r.Concurrency < 1 || r.Concurrency > 16 {
		return dErrors.New(dErrors.CodeValidation, "concurrency must be between 1 and 16")
	}
	return nil
}
