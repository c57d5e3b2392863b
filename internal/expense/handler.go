package expense

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi"

	errors "github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/auth"
	"github.com/frahmantamala/smartexpense/internal/transport"
	"github.com/frahmantamala/smartexpense/pkg/logger"
)

type ServiceAPI interface {
	ListExpenses(ctx context.Context, userID int64, q ListQuery) ([]*Expense, error)
	CreateExpense(ctx context.Context, userID int64, dto CreateExpenseDTO) (*Expense, error)
	UpdateExpense(ctx context.Context, id, userID int64, dto UpdateExpenseDTO) (*Expense, error)
	DeleteExpense(ctx context.Context, id, userID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Log(r).Error("ListExpenses: user not found in context")
		h.WriteAppError(w, r, errors.ErrNotAuthenticated)
		return
	}

	q, appErr := parseListQuery(r.URL.Query())
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	expenses, err := h.Service.ListExpenses(r.Context(), user.ID, q)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, expenses)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Log(r).Error("CreateExpense: user not found in context")
		h.WriteAppError(w, r, errors.ErrNotAuthenticated)
		return
	}

	var dto CreateExpenseDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	expense, err := h.Service.CreateExpense(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, expense)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Log(r).Error("UpdateExpense: user not found in context")
		h.WriteAppError(w, r, errors.ErrNotAuthenticated)
		return
	}

	expenseID, appErr := expenseIDParam(r)
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	var dto UpdateExpenseDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	expense, err := h.Service.UpdateExpense(r.Context(), expenseID, user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, expense)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Log(r).Error("DeleteExpense: user not found in context")
		h.WriteAppError(w, r, errors.ErrNotAuthenticated)
		return
	}

	expenseID, appErr := expenseIDParam(r)
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	if err := h.Service.DeleteExpense(r.Context(), expenseID, user.ID); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func expenseIDParam(r *http.Request) (int64, *errors.AppError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationFieldError("id", "invalid expense ID", errors.ErrCodeValidationFailed)
	}
	return id, nil
}

func parseListQuery(values url.Values) (ListQuery, *errors.AppError) {
	q := ListQuery{
		Category: values.Get("category"),
		Search:   values.Get("search"),
	}

	var appErr *errors.AppError
	q.Month, appErr = transport.QueryInt(values, "month")
	if appErr != nil {
		return q, appErr
	}
	q.Year, appErr = transport.QueryInt(values, "year")
	if appErr != nil {
		return q, appErr
	}
	return q, nil
}
