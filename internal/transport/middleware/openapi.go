package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	errors "github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/pkg/logger"
)

// OpenAPIValidator checks requests against the documented contract before
// they reach a handler. Requests for operations the document does not
// describe are passed through so the router can answer 404 or 405.
type OpenAPIValidator struct {
	router routers.Router
}

func NewOpenAPIValidator(spec []byte) (*OpenAPIValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return &OpenAPIValidator{router: router}, nil
}

func (v *OpenAPIValidator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, pathParams, err := v.router.FindRoute(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				MultiError:         true,
			},
		}

		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			appErr := requestValidationError(err)
			logger.From(r.Context()).Warn("request rejected by openapi validation",
				"path", r.URL.Path, "message", appErr.GetDetailedMessage())

			status, body := appErr.ToHTTPResponse()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requestValidationError(err error) *errors.AppError {
	var details []errors.ValidationError
	collectValidationErrors(err, "request", &details)

	return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: details}).
		WithCause(err)
}

func collectValidationErrors(err error, field string, out *[]errors.ValidationError) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			collectValidationErrors(inner, field, out)
		}
	case *openapi3filter.RequestError:
		switch {
		case e.Parameter != nil:
			field = e.Parameter.Name
		case e.RequestBody != nil:
			field = "body"
		}
		if e.Err != nil {
			collectValidationErrors(e.Err, field, out)
			return
		}
		*out = append(*out, validationDetail(field, e.Reason))
	case *openapi3.SchemaError:
		if ptr := e.JSONPointer(); len(ptr) > 0 {
			field = strings.Join(ptr, ".")
		}
		*out = append(*out, validationDetail(field, e.Reason))
	default:
		*out = append(*out, validationDetail(field, err.Error()))
	}
}

func validationDetail(field, reason string) errors.ValidationError {
	return errors.ValidationError{
		Field:   field,
		Message: field + ": " + reason,
		Code:    string(errors.ErrCodeValidationFailed),
	}
}
