package handler

import (
	"mercury/internal/edi/models"
	"mercury/internal/edi/service"
)

// ConvertResponse is the HTTP response body for POST /convert_text_to_edi_v2.
type ConvertResponse struct {
	ExtractedData    *models.TransactionData `json:"extracted_data"`
	RawEDISegments   []string                `json:"raw_edi_segments"`
	ValidationErrors []string                `json:"validation_errors"`
	Status           string                  `json:"status"`
}

// FromResult maps a pipeline result onto the response shape. Slices are
// never null in the JSON so clients can iterate without guarding.
func FromResult(result *service.ConvertResult) ConvertResponse {
	segments := result.Segments
	if segments == nil {
		segments = []string{}
	}
	validationErrors := result.ValidationErrors
	if validationErrors == nil {
		validationErrors = []string{}
	}
	return ConvertResponse{
		ExtractedData:    result.ExtractedData,
		RawEDISegments:   segments,
		ValidationErrors: validationErrors,
		Status:           result.Status,
	}
}

// BatchItemResponse is one entry of the batch response.
type BatchItemResponse struct {
	InterchangeSender string           `json:"interchange_sender"`
	EDIInfoID         string           `json:"edi_info_id"`
	Result            *ConvertResponse `json:"result,omitempty"`
	Error             string           `json:"error,omitempty"`
}

// BatchConvertResponse is the HTTP response body for POST /convert_batch.
type BatchConvertResponse struct {
	Items []BatchItemResponse `json:"items"`
}

// FromBatch maps batch items onto the response shape. Failed items carry an
// error message instead of a result.
func FromBatch(items []service.BatchItem) BatchConvertResponse {
	out := BatchConvertResponse{Items: make([]BatchItemResponse, 0, len(items))}
	for _, item := range items {
		entry := BatchItemResponse{
			InterchangeSender: item.Request.InterchangeSender,
			EDIInfoID:         item.Request.EDIInfoID,
		}
		if item.Err != nil {
			entry.Error = item.Err.Error()
		} else if item.Result != nil {
			resp := FromResult(item.Result)
			entry.Result = &resp
		}
		out.Items = append(out.Items, entry)
	}
	return out
}
