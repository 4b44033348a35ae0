package jobcards

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/filter", h.Filter)
	r.Get("/add", h.Form)
	r.Post("/add", h.Create)
	r.Get("/view/{id}", h.Show)
	r.Get("/edit/{id}", h.EditForm)
	r.Post("/edit/{id}", h.Update)
	r.Post("/delete/{id}", h.Delete)
	r.Post("/complete/{id}", h.Complete)
	r.Post("/cancel/{id}", h.Cancel)
	r.Post("/{id}/services", h.AddService)
	r.Post("/jobservices/{id}/status", h.UpdateServiceStatus)
}
