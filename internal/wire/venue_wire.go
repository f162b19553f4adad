package wire

import (
	"box-office/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireVenue(r chi.Router, venueHandler *adaptor.VenueHandler) {
	r.Route("/api/venues", func(r chi.Router) {
		r.Post("/", venueHandler.CreateVenue)
		r.Get("/", venueHandler.GetVenues)
		r.Get("/{id}", venueHandler.GetVenueByID)
		r.Post("/{id}/seat-groups", venueHandler.CreateSeatGroup)
	})
}
