package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"box-office/internal/dto/request"
	"box-office/internal/pricing"
	"box-office/internal/usecase"
	"box-office/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Venue      *VenueHandler
	Production *ProductionHandler
	Discount   *DiscountHandler
	Booking    *BookingHandler
	Health     *HealthHandler
}

func NewHandler(service *usecase.Service, db Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Venue:      NewVenueHandler(service.Venue, log),
		Production: NewProductionHandler(service.Production, log),
		Discount:   NewDiscountHandler(service.Discount, log),
		Booking:    NewBookingHandler(service.Booking, log),
		Health:     NewHealthHandler(db, log),
	}
}

// decode reads a JSON body into dst and validates it, writing a 400 on
// failure. It reports whether the handler should continue.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

func paginated(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// handleServiceError maps usecase and pricing errors onto HTTP statuses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError
	var capacityErr *usecase.CapacityError

	switch {
	case errors.As(err, &capacityErr):
		log.Info(operation+" failed - capacity", zap.Error(err))
		utils.ResponseConflict(w, capacityErr.Error(), map[string]any{
			"seat_group": capacityErr.SeatGroup,
			"requested":  capacityErr.Requested,
			"remaining":  capacityErr.Remaining,
		})

	case errors.Is(err, usecase.ErrInvalidState):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, pricing.ErrPriceNotConfigured),
		errors.Is(err, pricing.ErrInvalidCombination),
		errors.Is(err, pricing.ErrSearchSpaceTooLarge),
		errors.Is(err, usecase.ErrAmountMismatch):
		log.Warn(operation+" failed - unprocessable", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrValidation):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, context.DeadlineExceeded):
		log.Warn(operation+" timed out", zap.Error(err))
		utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Service busy, try again", nil, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log *zap.Logger
}

func NewHealthHandler(db Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log.With(zap.String("handler", "health"))}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.log.Error("Database ping failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "database unavailable", nil, nil)
			return
		}
	}
	utils.ResponseSuccess(w, "OK", nil)
}
