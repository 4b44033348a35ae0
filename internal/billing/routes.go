package billing

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/jobcard/{id}/add", h.Form)
	r.Post("/jobcard/{id}", h.Create)
	r.Post("/pay/{id}", h.MarkPaid)
}
