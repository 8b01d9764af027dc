// Package httputil centralizes JSON encoding and domain error translation for
// HTTP handlers so transport concerns stay out of services.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mercury/pkg/edierrors"
)

// Validatable is implemented by request types that normalize and validate
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON error envelope shared by all endpoints.
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteError translates a domain error into an HTTP response. Internal errors
// omit the description so infrastructure details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := edierrors.CodeOf(err)
	body := errorBody{Error: string(code)}
	if code != edierrors.CodeInternal {
		var e *edierrors.Error
		if errors.As(err, &e) {
			body.ErrorDescription = e.Message
		}
	}
	WriteJSON(w, toHTTPStatus(code), body)
}

func toHTTPStatus(code edierrors.Code) int {
	switch code {
	case edierrors.CodeBadRequest, edierrors.CodeValidation:
		return http.StatusBadRequest
	case edierrors.CodeNotFound:
		return http.StatusNotFound
	case edierrors.CodeConflict:
		return http.StatusConflict
	case edierrors.CodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndPrepare decodes the request body into T, runs its Validate method,
// and writes the appropriate error response on failure. The bool result tells
// the handler whether to continue.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	req := PT(new(T))
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, edierrors.New(edierrors.CodeBadRequest, "invalid JSON body"))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
