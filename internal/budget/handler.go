package budget

import (
	"context"
	"net/http"

	errors "github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/auth"
	"github.com/frahmantamala/smartexpense/internal/transport"
	"github.com/frahmantamala/smartexpense/pkg/logger"
)

type ServiceAPI interface {
	GetBudget(ctx context.Context, userID int64) (*Budget, error)
	UpdateBudget(ctx context.Context, userID int64, dto UpdateBudgetDTO) (*Budget, error)
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

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Log(r).Error("GetBudget: user not found in context")
		h.WriteAppError(w, r, errors.ErrNotAuthenticated)
		return
	}

	b, err := h.Service.GetBudget(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Log(r).Error("UpdateBudget: user not found in context")
		h.WriteAppError(w, r, errors.ErrNotAuthenticated)
		return
	}

	var dto UpdateBudgetDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	b, err := h.Service.UpdateBudget(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}
