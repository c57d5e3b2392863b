package analytics

import (
	"context"
	"net/http"

	errors "github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/auth"
	"github.com/frahmantamala/smartexpense/internal/transport"
	"github.com/frahmantamala/smartexpense/pkg/logger"
)

type ServiceAPI interface {
	Summary(ctx context.Context, userID int64, q SummaryQuery) (*Summary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     svc,
	}
}

// GetSummary handles GET /analytics/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Log(r).Error("GetSummary: user not found in context")
		h.WriteAppError(w, r, errors.ErrNotAuthenticated)
		return
	}

	values := r.URL.Query()
	month, appErr := transport.QueryInt(values, "month")
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}
	year, appErr := transport.QueryInt(values, "year")
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	summary, err := h.Service.Summary(r.Context(), user.ID, SummaryQuery{Month: month, Year: year})
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
