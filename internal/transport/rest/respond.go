package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/pkg/ctxutil"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// writeServiceError maps domain errors onto HTTP statuses. Unexpected errors
// are logged and hidden from the client.
func writeServiceError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		body := errorBody{Code: "VALIDATION", Message: "invalid input"}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			for _, fe := range ve.Errors {
				body.Fields = append(body.Fields, fieldError{Field: fe.Field, Message: fe.Message})
			}
		} else {
			body.Message = validationMessage(err)
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: body})

	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", notFoundMessage(err))

	case errors.Is(err, domain.ErrDuplicateApplication):
		writeError(w, http.StatusConflict, "DUPLICATE_APPLICATION", "an application is already pending or approved")

	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "INVALID_TRANSITION", "application has already been decided")

	case errors.Is(err, domain.ErrIdempotencyMismatch):
		writeError(w, http.StatusConflict, "IDEMPOTENCY_MISMATCH", "idempotency key was used with a different deposit")

	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", "conflict")

	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")

	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "forbidden")

	case errors.Is(err, domain.ErrUnavailable):
		log.With(ctxutil.LogAttrs(ctx)...).WarnContext(ctx, "store unavailable", slog.String("error", err.Error()))
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "service temporarily unavailable")

	case errors.Is(err, domain.ErrInvariant):
		log.With(ctxutil.LogAttrs(ctx)...).ErrorContext(ctx, "invariant violation", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INVARIANT", "account state is inconsistent")

	default:
		log.With(ctxutil.LogAttrs(ctx)...).ErrorContext(ctx, "unexpected error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownMaterial):
		return "unknown material"
	case errors.Is(err, domain.ErrInvalidWeight):
		return "weight_kg must be a positive number within the deposit limit"
	case errors.Is(err, domain.ErrXPOverflow):
		return "deposit would exceed the xp limit"
	default:
		return "invalid input"
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrBinNotFound):
		return "bin not found"
	case errors.Is(err, domain.ErrApplicationNotFound):
		return "collector application not found"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account not found"
	default:
		return "not found"
	}
}

// decodeJSON reads a bounded JSON body and rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", bodyErrorMessage(err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "must contain a single JSON object")
	}
	return nil
}

func bodyErrorMessage(err error) string {
	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "must not be empty"
	case errors.As(err, &maxErr):
		return fmt.Sprintf("must not exceed %d bytes", maxErr.Limit)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %q has the wrong type", typeErr.Field)
	default:
		return "malformed JSON"
	}
}

// callerID returns the authenticated account, writing 401 when absent.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := ctxutil.AccountIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter. Missing means def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return v, nil
}

// pagination parses limit and offset, collecting both errors.
func pagination(r *http.Request) (limit, offset int, err error) {
	var errs []domain.FieldError
	limit, lerr := queryInt(r, "limit", 0)
	if lerr != nil {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
	}
	offset, oerr := queryInt(r, "offset", 0)
	if oerr != nil {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
	}
	if len(errs) > 0 {
		return 0, 0, domain.NewValidationErrors(errs)
	}
	return limit, offset, nil
}
