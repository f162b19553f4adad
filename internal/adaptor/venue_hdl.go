package adaptor

import (
	"net/http"

	"box-office/internal/dto/request"
	"box-office/internal/usecase"
	"box-office/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VenueHandler struct {
	service usecase.VenueService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log.With(zap.String("handler", "venue")),
	}
}

// CreateVenue handles POST /api/venues
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req request.CreateVenueRequest
	if !decode(w, r, &req) {
		return
	}

	venue, err := h.service.CreateVenue(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create venue")
		return
	}

	utils.ResponseCreated(w, "success", venue)
}

// GetVenues handles GET /api/venues
func (h *VenueHandler) GetVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.service.GetVenues(r.Context(), paginated(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get venues")
		return
	}

	utils.ResponseSuccess(w, "success", venues)
}

// GetVenueByID handles GET /api/venues/{id}
func (h *VenueHandler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	venue, err := h.service.GetVenueByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get venue by ID")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// CreateSeatGroup handles POST /api/venues/{id}/seat-groups
func (h *VenueHandler) CreateSeatGroup(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSeatGroupRequest
	if !decode(w, r, &req) {
		return
	}

	group, err := h.service.CreateSeatGroup(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create seat group")
		return
	}

	utils.ResponseCreated(w, "success", group)
}
