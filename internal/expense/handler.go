package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/expense/workflow"
	"github.com/ShahHet2812/IITxOdoo-Enterance/pkg/middleware"
	"github.com/ShahHet2812/IITxOdoo-Enterance/pkg/response"
	"github.com/ShahHet2812/IITxOdoo-Enterance/pkg/validate"
)

// Handler handles HTTP requests for expense claims
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}/status", h.UpdateStatus)

	return r
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrClaimNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCompanyNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrApproverRoleRequired), errors.Is(err, ErrWrongCompany):
		response.Forbidden(w, err.Error())
	case errors.Is(err, workflow.ErrNoPendingStep),
		errors.Is(err, workflow.ErrInvalidDecision),
		errors.Is(err, ErrInvalidDate):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrDecisionConflict):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, "Failed to process expense request")
	}
}

// Create handles POST /expenses
// @Summary      Submit an expense claim
// @Description  Create a claim; the approval workflow is built from the company policy
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense claim"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	claim, err := h.service.Submit(r.Context(), principal.UserID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, claim.ToResponse())
}

// List handles GET /expenses
// @Summary      List expense claims
// @Description  Role-scoped listing: admins see the company, managers see their team, own, and assigned claims, employees see their own
// @Tags         expenses
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Router       /expenses [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	expenses, err := h.service.List(r.Context(), principal.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = e.ToResponse()
	}
	response.JSON(w, http.StatusOK, resp)
}

// GetByID handles GET /expenses/{id}
// @Summary      Get an expense claim
// @Tags         expenses
// @Produce      json
// @Param        id path int true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	claim, err := h.service.Get(r.Context(), principal.UserID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, claim.ToResponse())
}

// UpdateStatus handles PUT /expenses/{id}/status
// @Summary      Approve or reject an expense claim
// @Description  Records the acting approver's decision on their pending step
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path int true "Expense ID"
// @Param        request body DecideRequest true "Decision"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /expenses/{id}/status [put]
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	claim, err := h.service.Decide(r.Context(), principal.UserID, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, claim.ToResponse())
}
