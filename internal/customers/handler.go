package customers

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
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	sessions  *shared.SessionManager
}

func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager, sessions *shared.SessionManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf, sessions: sessions}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list customers failed", "error", err)
		http.Error(w, "Failed to load customers", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/customers_list.html", map[string]any{
		"Customers":  customers,
		"SearchTerm": "",
	}, http.StatusOK)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	customers, err := h.service.SearchByName(r.Context(), term)
	if err != nil {
		h.logger.Error("search customers failed", "error", err, "term", term)
		http.Error(w, "Failed to search customers", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/customers_list.html", map[string]any{
		"Customers":  customers,
		"SearchTerm": term,
	}, http.StatusOK)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get customer failed", "error", err, "id", id)
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	h.render(w, r, "pages/customer_detail.html", map[string]any{
		"Customer": customer,
	}, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/customer_form.html", map[string]any{
		"Customer": Customer{},
		"Error":    "",
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	customer := customerFromForm(r)
	created, err := h.service.Create(r.Context(), customer)
	if err != nil {
		h.render(w, r, "pages/customer_form.html", map[string]any{
			"Customer": customer,
			"Error":    formError(err, "Could not save customer"),
		}, http.StatusBadRequest)
		return
	}

	h.redirectWithFlash(w, r, "/customers/view/"+strconv.FormatInt(created.ID, 10), "success", "Customer created successfully")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get customer failed", "error", err, "id", id)
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	h.render(w, r, "pages/customer_form.html", map[string]any{
		"Customer": customer,
		"Error":    "",
	}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	customer := customerFromForm(r)
	customer.ID = id
	if err := h.service.Update(r.Context(), id, customer); err != nil {
		h.render(w, r, "pages/customer_form.html", map[string]any{
			"Customer": customer,
			"Error":    formError(err, "Could not update customer"),
		}, http.StatusBadRequest)
		return
	}

	h.redirectWithFlash(w, r, "/customers/view/"+strconv.FormatInt(id, 10), "success", "Customer updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete customer failed", "error", err, "id", id)
		if errors.Is(err, shared.ErrConflict) {
			h.redirectWithFlash(w, r, "/customers", "error", "Customer still has vehicles on file and cannot be deleted")
			return
		}
		h.redirectWithFlash(w, r, "/customers", "error", "Could not delete customer")
		return
	}

	h.redirectWithFlash(w, r, "/customers", "success", "Customer deleted successfully")
}

func customerFromForm(r *http.Request) Customer {
	return Customer{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Phone:     r.PostFormValue("phone"),
		Email:     r.PostFormValue("email"),
		Address:   r.PostFormValue("address"),
		City:      r.PostFormValue("city"),
		State:     r.PostFormValue("state"),
		ZipCode:   r.PostFormValue("zip_code"),
	}
}

func formError(err error, fallback string) string {
	if errors.Is(err, shared.ErrValidation) {
		return "Customer details are incomplete or invalid"
	}
	if errors.Is(err, shared.ErrConflict) {
		return "A customer with these details already exists"
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
		Title:       "Customers",
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
