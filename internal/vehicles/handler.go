package vehicles

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/motorhaus/motorhaus/internal/customers"
	"github.com/motorhaus/motorhaus/internal/shared"
	"github.com/motorhaus/motorhaus/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	owners    *customers.Service
	history   HistoryProvider
	templates *view.Engine
	csrf      *shared.CSRFManager
	sessions  *shared.SessionManager
}

func NewHandler(logger *slog.Logger, service *Service, owners *customers.Service, history HistoryProvider, templates *view.Engine, csrf *shared.CSRFManager, sessions *shared.SessionManager) *Handler {
	return &Handler{logger: logger, service: service, owners: owners, history: history, templates: templates, csrf: csrf, sessions: sessions}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list vehicles failed", "error", err)
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/vehicles_list.html", map[string]any{
		"Vehicles": vehicles,
	}, http.StatusOK)
}

func (h *Handler) ByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	owner, err := h.owners.Get(r.Context(), customerID)
	if err != nil {
		h.logger.Error("get customer failed", "error", err, "id", customerID)
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	vehicles, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Error("list customer vehicles failed", "error", err, "customer_id", customerID)
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/customer_vehicles.html", map[string]any{
		"Customer": owner,
		"Vehicles": vehicles,
	}, http.StatusOK)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
		return
	}

	vehicle, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get vehicle failed", "error", err, "id", id)
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	owner, err := h.owners.Get(r.Context(), vehicle.CustomerID)
	if err != nil {
		h.logger.Error("get vehicle owner failed", "error", err, "customer_id", vehicle.CustomerID)
	}

	var visits []ServiceHistoryEntry
	if h.history != nil {
		visits, err = h.history.VehicleHistory(r.Context(), id)
		if err != nil {
			h.logger.Error("load vehicle history failed", "error", err, "vehicle_id", id)
		}
	}

	h.render(w, r, "pages/vehicle_detail.html", map[string]any{
		"Vehicle":  vehicle,
		"Owner":    owner,
		"JobCards": visits,
	}, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	owners, err := h.owners.List(r.Context())
	if err != nil {
		h.logger.Error("list customers failed", "error", err)
		http.Error(w, "Failed to load customers", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/vehicle_form.html", map[string]any{
		"Vehicle":   Vehicle{},
		"Customers": owners,
		"Error":     "",
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	vehicle := vehicleFromForm(r)
	created, err := h.service.Create(r.Context(), vehicle)
	if err != nil {
		h.renderFormError(w, r, vehicle, err, "Could not save vehicle")
		return
	}

	h.redirectWithFlash(w, r, "/vehicles/view/"+strconv.FormatInt(created.ID, 10), "success", "Vehicle created successfully")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
		return
	}

	vehicle, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get vehicle failed", "error", err, "id", id)
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	owners, err := h.owners.List(r.Context())
	if err != nil {
		h.logger.Error("list customers failed", "error", err)
		http.Error(w, "Failed to load customers", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/vehicle_form.html", map[string]any{
		"Vehicle":   vehicle,
		"Customers": owners,
		"Error":     "",
	}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	vehicle := vehicleFromForm(r)
	vehicle.ID = id
	if err := h.service.Update(r.Context(), id, vehicle); err != nil {
		h.renderFormError(w, r, vehicle, err, "Could not update vehicle")
		return
	}

	h.redirectWithFlash(w, r, "/vehicles/view/"+strconv.FormatInt(id, 10), "success", "Vehicle updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete vehicle failed", "error", err, "id", id)
		if errors.Is(err, shared.ErrConflict) {
			h.redirectWithFlash(w, r, "/vehicles", "error", "Vehicle still has job cards on file and cannot be deleted")
			return
		}
		h.redirectWithFlash(w, r, "/vehicles", "error", "Could not delete vehicle")
		return
	}

	h.redirectWithFlash(w, r, "/vehicles", "success", "Vehicle deleted successfully")
}

func (h *Handler) renderFormError(w http.ResponseWriter, r *http.Request, vehicle Vehicle, err error, fallback string) {
	owners, listErr := h.owners.List(r.Context())
	if listErr != nil {
		h.logger.Error("list customers failed", "error", listErr)
	}

	msg := fallback
	if errors.Is(err, shared.ErrValidation) {
		msg = "Vehicle details are incomplete or invalid"
	} else if errors.Is(err, shared.ErrConflict) {
		msg = "A vehicle with this license plate or VIN already exists"
	}

	h.render(w, r, "pages/vehicle_form.html", map[string]any{
		"Vehicle":   vehicle,
		"Customers": owners,
		"Error":     msg,
	}, http.StatusBadRequest)
}

func vehicleFromForm(r *http.Request) Vehicle {
	customerID, _ := strconv.ParseInt(r.PostFormValue("customer_id"), 10, 64)
	year, _ := strconv.Atoi(r.PostFormValue("year"))
	mileage, _ := strconv.Atoi(r.PostFormValue("mileage"))
	return Vehicle{
		CustomerID:   customerID,
		Make:         r.PostFormValue("make"),
		Model:        r.PostFormValue("model"),
		Year:         year,
		LicensePlate: r.PostFormValue("license_plate"),
		VIN:          r.PostFormValue("vin"),
		Color:        r.PostFormValue("color"),
		Mileage:      mileage,
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Vehicles",
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
