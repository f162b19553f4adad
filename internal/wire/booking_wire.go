package wire

import (
	"box-office/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Post("/{id}/quote", bookingHandler.QuoteBooking)
		r.Post("/{id}/pay", bookingHandler.PayBooking)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
		r.Get("/{id}/payments", bookingHandler.GetBookingPayments)
	})
}
