package category

import (
	"context"
	"net/http"

	errors "github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/auth"
	"github.com/frahmantamala/smartexpense/internal/transport"
)

type ServiceAPI interface {
	GetUserCategories(ctx context.Context, userID int64) ([]CategoryResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetCategories handles GET /categories
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Log(r).Error("GetCategories: user not found in context")
		h.WriteAppError(w, r, errors.ErrNotAuthenticated)
		return
	}

	categories, err := h.Service.GetUserCategories(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Categories: categories,
	})
}
