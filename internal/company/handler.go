package company

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ShahHet2812/IITxOdoo-Enterance/pkg/middleware"
	"github.com/ShahHet2812/IITxOdoo-Enterance/pkg/response"
	"github.com/ShahHet2812/IITxOdoo-Enterance/pkg/validate"
)

// Handler handles HTTP requests for company operations
type Handler struct {
	service *Service
}

// NewHandler creates a new company handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for company endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Get)
	r.Put("/", h.Update)

	return r
}

// Get handles GET /company
// @Summary      Get company details
// @Description  Get the caller's company including its approval policy
// @Tags         company
// @Produce      json
// @Success      200 {object} response.APIResponse{data=CompanyResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /company [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	c, err := h.service.Get(r.Context(), principal.CompanyID)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get company")
		return
	}

	response.JSON(w, http.StatusOK, c.ToResponse())
}

// Update handles PUT /company
// @Summary      Update company policy
// @Description  Admin updates company details, approval threshold, and approval flags
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body UpdateCompanyRequest true "Company update request"
// @Success      200 {object} response.APIResponse{data=CompanyResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /company [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	c, err := h.service.Update(r.Context(), principal.Role, principal.CompanyID, &req)
	if err != nil {
		if errors.Is(err, ErrAdminRequired) {
			response.Forbidden(w, err.Error())
			return
		}
		if errors.Is(err, ErrCompanyNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update company")
		return
	}

	response.JSON(w, http.StatusOK, c.ToResponse())
}
