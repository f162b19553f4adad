package wire

import (
	"box-office/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDiscount(r chi.Router, discountHandler *adaptor.DiscountHandler) {
	r.Post("/api/concession-types", discountHandler.CreateConcessionType)
	r.Get("/api/concession-types", discountHandler.GetConcessionTypes)

	r.Post("/api/discounts", discountHandler.CreateDiscount)
	r.Delete("/api/discounts/{id}", discountHandler.DeleteDiscount)

	r.Post("/api/misc-costs", discountHandler.CreateMiscCost)
	r.Get("/api/misc-costs", discountHandler.GetMiscCosts)
}
