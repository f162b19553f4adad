package adaptor

import (
	"net/http"

	"box-office/internal/dto/request"
	"box-office/internal/usecase"
	"box-office/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if !decode(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBookingByID handles GET /api/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBookingByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetPerformanceBookings handles GET /api/performances/{id}/bookings
func (h *BookingHandler) GetPerformanceBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetPerformanceBookings(r.Context(), chi.URLParam(r, "id"), paginated(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get performance bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// QuoteBooking handles POST /api/bookings/{id}/quote
func (h *BookingHandler) QuoteBooking(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if !decode(w, r, &req) {
		return
	}

	quote, err := h.service.QuoteBooking(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote booking")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// PayBooking handles POST /api/bookings/{id}/pay
func (h *BookingHandler) PayBooking(w http.ResponseWriter, r *http.Request) {
	var req request.PayBookingRequest
	if !decode(w, r, &req) {
		return
	}

	paid, err := h.service.PayBooking(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "pay booking")
		return
	}

	utils.ResponseSuccess(w, "success", paid)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBookingPayments handles GET /api/bookings/{id}/payments
func (h *BookingHandler) GetBookingPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.GetBookingPayments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}
