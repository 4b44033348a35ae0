package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/motorhaus/motorhaus/internal/shared"
	"github.com/motorhaus/motorhaus/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	catalog   *Catalog
	templates *view.Engine
	csrf      *shared.CSRFManager
	sessions  *shared.SessionManager
}

func NewHandler(logger *slog.Logger, catalog *Catalog, templates *view.Engine, csrf *shared.CSRFManager, sessions *shared.SessionManager) *Handler {
	return &Handler{logger: logger, catalog: catalog, templates: templates, csrf: csrf, sessions: sessions}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("list services failed", "error", err)
		http.Error(w, "Failed to load service catalog", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/services_list.html", map[string]any{
		"Services":   services,
		"SearchTerm": "",
	}, http.StatusOK)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	services, err := h.catalog.SearchByName(r.Context(), term)
	if err != nil {
		h.logger.Error("search services failed", "error", err, "term", term)
		http.Error(w, "Failed to search service catalog", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/services_list.html", map[string]any{
		"Services":   services,
		"SearchTerm": term,
	}, http.StatusOK)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}

	service, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get service failed", "error", err, "id", id)
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}

	h.render(w, r, "pages/service_detail.html", map[string]any{
		"Service": service,
	}, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/service_form.html", map[string]any{
		"Service": Service{},
		"Error":   "",
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	service := serviceFromForm(r)
	created, err := h.catalog.Create(r.Context(), service)
	if err != nil {
		h.render(w, r, "pages/service_form.html", map[string]any{
			"Service": service,
			"Error":   formError(err, "Could not save service"),
		}, http.StatusBadRequest)
		return
	}

	h.redirectWithFlash(w, r, "/services/view/"+strconv.FormatInt(created.ID, 10), "success", "Service created successfully")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}

	service, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get service failed", "error", err, "id", id)
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}

	h.render(w, r, "pages/service_form.html", map[string]any{
		"Service": service,
		"Error":   "",
	}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	service := serviceFromForm(r)
	service.ID = id
	if err := h.catalog.Update(r.Context(), id, service); err != nil {
		h.render(w, r, "pages/service_form.html", map[string]any{
			"Service": service,
			"Error":   formError(err, "Could not update service"),
		}, http.StatusBadRequest)
		return
	}

	h.redirectWithFlash(w, r, "/services/view/"+strconv.FormatInt(id, 10), "success", "Service updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete service failed", "error", err, "id", id)
		if errors.Is(err, shared.ErrConflict) {
			h.redirectWithFlash(w, r, "/services", "error", "Service is referenced by job cards and cannot be deleted")
			return
		}
		h.redirectWithFlash(w, r, "/services", "error", "Could not delete service")
		return
	}

	h.redirectWithFlash(w, r, "/services", "success", "Service deleted successfully")
}

func serviceFromForm(r *http.Request) Service {
	price, _ := strconv.ParseFloat(r.PostFormValue("standard_price"), 64)
	hours, _ := strconv.ParseFloat(r.PostFormValue("estimated_hours"), 64)
	return Service{
		Name:           r.PostFormValue("service_name"),
		Description:    r.PostFormValue("description"),
		StandardPrice:  price,
		EstimatedHours: hours,
	}
}

func formError(err error, fallback string) string {
	if errors.Is(err, shared.ErrValidation) {
		return "Service details are incomplete or invalid"
	}
	if errors.Is(err, shared.ErrConflict) {
		return "A service with this name already exists"
	}
	return fallback
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Service catalog",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	w.WriteHeader(status)
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", "error", err, "template", template)
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
