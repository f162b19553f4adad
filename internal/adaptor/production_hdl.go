package adaptor

import (
	"net/http"

	"box-office/internal/dto/request"
	"box-office/internal/usecase"
	"box-office/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductionHandler struct {
	service usecase.ProductionService
	log     *zap.Logger
}

func NewProductionHandler(service usecase.ProductionService, log *zap.Logger) *ProductionHandler {
	return &ProductionHandler{
		service: service,
		log:     log.With(zap.String("handler", "production")),
	}
}

// CreateProduction handles POST /api/productions
func (h *ProductionHandler) CreateProduction(w http.ResponseWriter, r *http.Request) {
	var req request.CreateProductionRequest
	if !decode(w, r, &req) {
		return
	}

	production, err := h.service.CreateProduction(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create production")
		return
	}

	utils.ResponseCreated(w, "success", production)
}

// GetProductions handles GET /api/productions
func (h *ProductionHandler) GetProductions(w http.ResponseWriter, r *http.Request) {
	productions, err := h.service.GetProductions(r.Context(), paginated(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get productions")
		return
	}

	utils.ResponseSuccess(w, "success", productions)
}

// GetProductionByID handles GET /api/productions/{id}
func (h *ProductionHandler) GetProductionByID(w http.ResponseWriter, r *http.Request) {
	production, err := h.service.GetProductionByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get production by ID")
		return
	}

	utils.ResponseSuccess(w, "success", production)
}

// DeleteProduction handles DELETE /api/productions/{id}
func (h *ProductionHandler) DeleteProduction(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduction(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete production")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreatePerformance handles POST /api/productions/{id}/performances
func (h *ProductionHandler) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePerformanceRequest
	if !decode(w, r, &req) {
		return
	}

	performance, err := h.service.CreatePerformance(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create performance")
		return
	}

	utils.ResponseCreated(w, "success", performance)
}

// GetPerformanceByID handles GET /api/performances/{id}
func (h *ProductionHandler) GetPerformanceByID(w http.ResponseWriter, r *http.Request) {
	performance, err := h.service.GetPerformanceByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get performance by ID")
		return
	}

	utils.ResponseSuccess(w, "success", performance)
}

// SetPerformanceSeatGroup handles PUT /api/performances/{id}/seat-groups/{seatGroupID}
func (h *ProductionHandler) SetPerformanceSeatGroup(w http.ResponseWriter, r *http.Request) {
	var req request.SetSeatGroupRequest
	if !decode(w, r, &req) {
		return
	}

	performance, err := h.service.SetPerformanceSeatGroup(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "seatGroupID"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set performance seat group")
		return
	}

	utils.ResponseSuccess(w, "success", performance)
}
