package wire

import (
	"box-office/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProduction(
	r chi.Router,
	productionHandler *adaptor.ProductionHandler,
	discountHandler *adaptor.DiscountHandler,
	bookingHandler *adaptor.BookingHandler,
) {
	r.Route("/api/productions", func(r chi.Router) {
		r.Post("/", productionHandler.CreateProduction)
		r.Get("/", productionHandler.GetProductions)
		r.Get("/{id}", productionHandler.GetProductionByID)
		r.Delete("/{id}", productionHandler.DeleteProduction)
		r.Post("/{id}/performances", productionHandler.CreatePerformance)
	})

	r.Route("/api/performances/{id}", func(r chi.Router) {
		r.Get("/", productionHandler.GetPerformanceByID)
		r.Put("/seat-groups/{seatGroupID}", productionHandler.SetPerformanceSeatGroup)
		r.Get("/discounts", discountHandler.GetPerformanceDiscounts)
		r.Get("/bookings", bookingHandler.GetPerformanceBookings)
	})
}
