package transport

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	errors "github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/pkg/logger"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// Log returns the request scoped logger when the request carries one.
func (h *BaseHandler) Log(r *http.Request) *slog.Logger {
	if r == nil {
		return h.Logger
	}
	return logger.From(r.Context())
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteAppError renders err with its status and the error envelope.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, r *http.Request, err *errors.AppError) {
	lg := h.Log(r)
	if err.StatusCode >= http.StatusInternalServerError {
		lg.Error("http error", "status", err.StatusCode, "code", err.Code, "error", err)
	} else {
		lg.Warn("http error", "status", err.StatusCode, "code", err.Code, "message", err.GetDetailedMessage())
	}

	status, body := err.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// HandleServiceError maps any error coming out of a service to a response.
// Anything that is not an AppError is reported as a bare 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := errors.IsAppError(err); ok {
		h.WriteAppError(w, r, appErr)
		return
	}
	h.WriteAppError(w, r, errors.NewInternalError("Internal server error", err))
}

// DecodeJSON reads a single JSON document from the request body into dst.
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) *errors.AppError {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return errors.ErrInvalidBody.WithCause(err)
		}
		return errors.NewValidationError("invalid request body: "+err.Error(), errors.ErrCodeInvalidBody).WithCause(err)
	}
	return nil
}

// ExtractTokenFromHeader returns the credentials of a Bearer Authorization
// header, or "" when the header is absent, uses another scheme or is empty.
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	scheme, credentials, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}

	return strings.TrimSpace(credentials)
}

// QueryInt reads an integer query parameter; absent or empty yields nil.
func QueryInt(values url.Values, name string) (*int, *errors.AppError) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.NewValidationFieldError(name, name+" must be an integer", errors.ErrCodeInvalidPeriod)
	}
	return &n, nil
}
