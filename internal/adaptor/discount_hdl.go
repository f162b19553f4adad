package adaptor

import (
	"net/http"

	"box-office/internal/dto/request"
	"box-office/internal/usecase"
	"box-office/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DiscountHandler serves concession types, discounts and misc costs.
type DiscountHandler struct {
	service usecase.DiscountService
	log     *zap.Logger
}

func NewDiscountHandler(service usecase.DiscountService, log *zap.Logger) *DiscountHandler {
	return &DiscountHandler{
		service: service,
		log:     log.With(zap.String("handler", "discount")),
	}
}

// CreateConcessionType handles POST /api/concession-types
func (h *DiscountHandler) CreateConcessionType(w http.ResponseWriter, r *http.Request) {
	var req request.CreateConcessionTypeRequest
	if !decode(w, r, &req) {
		return
	}

	concession, err := h.service.CreateConcessionType(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create concession type")
		return
	}

	utils.ResponseCreated(w, "success", concession)
}

// GetConcessionTypes handles GET /api/concession-types
func (h *DiscountHandler) GetConcessionTypes(w http.ResponseWriter, r *http.Request) {
	concessions, err := h.service.GetConcessionTypes(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get concession types")
		return
	}

	utils.ResponseSuccess(w, "success", concessions)
}

// CreateDiscount handles POST /api/discounts
func (h *DiscountHandler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDiscountRequest
	if !decode(w, r, &req) {
		return
	}

	discount, err := h.service.CreateDiscount(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create discount")
		return
	}

	utils.ResponseCreated(w, "success", discount)
}

// DeleteDiscount handles DELETE /api/discounts/{id}
func (h *DiscountHandler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDiscount(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete discount")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetPerformanceDiscounts handles GET /api/performances/{id}/discounts
func (h *DiscountHandler) GetPerformanceDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.service.GetPerformanceDiscounts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get performance discounts")
		return
	}

	utils.ResponseSuccess(w, "success", discounts)
}

// CreateMiscCost handles POST /api/misc-costs
func (h *DiscountHandler) CreateMiscCost(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMiscCostRequest
	if !decode(w, r, &req) {
		return
	}

	cost, err := h.service.CreateMiscCost(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create misc cost")
		return
	}

	utils.ResponseCreated(w, "success", cost)
}

// GetMiscCosts handles GET /api/misc-costs
func (h *DiscountHandler) GetMiscCosts(w http.ResponseWriter, r *http.Request) {
	costs, err := h.service.GetMiscCosts(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get misc costs")
		return
	}

	utils.ResponseSuccess(w, "success", costs)
}
