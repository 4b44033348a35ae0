package vehicles

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/add", h.Form)
	r.Post("/add", h.Create)
	r.Get("/view/{id}", h.Show)
	r.Get("/edit/{id}", h.EditForm)
	r.Post("/edit/{id}", h.Update)
	r.Post("/delete/{id}", h.Delete)
	r.Get("/customer/{id}", h.ByCustomer)
}
