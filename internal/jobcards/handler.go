package jobcards

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/motorhaus/motorhaus/internal/billing"
	"github.com/motorhaus/motorhaus/internal/catalog"
	"github.com/motorhaus/motorhaus/internal/shared"
	"github.com/motorhaus/motorhaus/internal/vehicles"
	"github.com/motorhaus/motorhaus/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	vehicles  *vehicles.Service
	catalog   *catalog.Catalog
	bills     *billing.Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	sessions  *shared.SessionManager
}

func NewHandler(logger *slog.Logger, service *Service, fleet *vehicles.Service, cat *catalog.Catalog, bills *billing.Service, templates *view.Engine, csrf *shared.CSRFManager, sessions *shared.SessionManager) *Handler {
	return &Handler{logger: logger, service: service, vehicles: fleet, catalog: cat, bills: bills, templates: templates, csrf: csrf, sessions: sessions}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list job cards failed", "error", err)
		http.Error(w, "Failed to load job cards", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/jobcards_list.html", map[string]any{
		"JobCards":      cards,
		"Statuses":      AllStatuses(),
		"CurrentStatus": Status(""),
	}, http.StatusOK)
}

func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	status, err := ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		h.List(w, r)
		return
	}

	cards, err := h.service.ListByStatus(r.Context(), status)
	if err != nil {
		h.logger.Error("filter job cards failed", "error", err, "status", status)
		http.Error(w, "Failed to load job cards", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/jobcards_list.html", map[string]any{
		"JobCards":      cards,
		"Statuses":      AllStatuses(),
		"CurrentStatus": status,
	}, http.StatusOK)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job card ID", http.StatusBadRequest)
		return
	}

	card, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get job card failed", "error", err, "id", id)
		http.Error(w, "Job card not found", http.StatusNotFound)
		return
	}

	vehicle, err := h.vehicles.Get(r.Context(), card.VehicleID)
	if err != nil {
		h.logger.Error("get job card vehicle failed", "error", err, "vehicle_id", card.VehicleID)
	}

	services, err := h.service.Services(r.Context(), id)
	if err != nil {
		h.logger.Error("list job services failed", "error", err, "job_card_id", id)
	}

	priceList, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("list catalog failed", "error", err)
	}

	bills, err := h.bills.ListByJobCard(r.Context(), id)
	if err != nil {
		h.logger.Error("list job card bills failed", "error", err, "job_card_id", id)
	}

	h.render(w, r, "pages/jobcard_detail.html", map[string]any{
		"JobCard":            card,
		"Vehicle":            vehicle,
		"JobServices":        services,
		"JobServiceStatuses": AllJobServiceStatuses(),
		"Catalog":            priceList,
		"Bills":              bills,
	}, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.vehicles.List(r.Context())
	if err != nil {
		h.logger.Error("list vehicles failed", "error", err)
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/jobcard_form.html", map[string]any{
		"JobCard":  JobCard{},
		"Vehicles": fleet,
		"Statuses": AllStatuses(),
		"Error":    "",
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	vehicleID, _ := strconv.ParseInt(r.PostFormValue("vehicle_id"), 10, 64)
	card := JobCard{
		VehicleID:          vehicleID,
		TechnicianNotes:    r.PostFormValue("technician_notes"),
		CustomerComplaints: r.PostFormValue("customer_complaints"),
	}

	created, err := h.service.Open(r.Context(), card)
	if err != nil {
		h.renderFormError(w, r, card, err, "Could not open job card")
		return
	}

	h.redirectWithFlash(w, r, "/jobcards/view/"+strconv.FormatInt(created.ID, 10), "success", "Job card opened")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job card ID", http.StatusBadRequest)
		return
	}

	card, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get job card failed", "error", err, "id", id)
		http.Error(w, "Job card not found", http.StatusNotFound)
		return
	}

	fleet, err := h.vehicles.List(r.Context())
	if err != nil {
		h.logger.Error("list vehicles failed", "error", err)
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/jobcard_form.html", map[string]any{
		"JobCard":  card,
		"Vehicles": fleet,
		"Statuses": AllStatuses(),
		"Error":    "",
	}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job card ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	vehicleID, _ := strconv.ParseInt(r.PostFormValue("vehicle_id"), 10, 64)
	card := JobCard{
		ID:                 id,
		VehicleID:          vehicleID,
		Status:             Status(r.PostFormValue("status")),
		TechnicianNotes:    r.PostFormValue("technician_notes"),
		CustomerComplaints: r.PostFormValue("customer_complaints"),
	}

	if err := h.service.Update(r.Context(), id, card); err != nil {
		h.renderFormError(w, r, card, err, "Could not update job card")
		return
	}

	h.redirectWithFlash(w, r, "/jobcards/view/"+strconv.FormatInt(id, 10), "success", "Job card updated")
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job card ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Complete(r.Context(), id); err != nil {
		h.logger.Error("complete job card failed", "error", err, "id", id)
		h.redirectWithFlash(w, r, "/jobcards/view/"+strconv.FormatInt(id, 10), "error", "Could not complete job card")
		return
	}

	h.redirectWithFlash(w, r, "/jobcards/view/"+strconv.FormatInt(id, 10), "success", "Job card completed")
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job card ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		h.logger.Error("cancel job card failed", "error", err, "id", id)
		h.redirectWithFlash(w, r, "/jobcards/view/"+strconv.FormatInt(id, 10), "error", "Could not cancel job card")
		return
	}

	h.redirectWithFlash(w, r, "/jobcards/view/"+strconv.FormatInt(id, 10), "success", "Job card cancelled")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job card ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete job card failed", "error", err, "id", id)
		if errors.Is(err, shared.ErrConflict) {
			h.redirectWithFlash(w, r, "/jobcards", "error", "Job card has bills on file and cannot be deleted")
			return
		}
		h.redirectWithFlash(w, r, "/jobcards", "error", "Could not delete job card")
		return
	}

	h.redirectWithFlash(w, r, "/jobcards", "success", "Job card deleted")
}

func (h *Handler) AddService(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job card ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	serviceID, _ := strconv.ParseInt(r.PostFormValue("service_id"), 10, 64)
	if _, err := h.service.AddService(r.Context(), id, serviceID); err != nil {
		h.logger.Error("add job service failed", "error", err, "job_card_id", id, "service_id", serviceID)
		h.redirectWithFlash(w, r, "/jobcards/view/"+strconv.FormatInt(id, 10), "error", "Could not add service to job card")
		return
	}

	h.redirectWithFlash(w, r, "/jobcards/view/"+strconv.FormatInt(id, 10), "success", "Service added to job card")
}

func (h *Handler) UpdateServiceStatus(w http.ResponseWriter, r *http.Request) {
	jobServiceID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job service ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	// The form carries the owning card so the redirect lands back on it.
	jobCardID, _ := strconv.ParseInt(r.PostFormValue("job_card_id"), 10, 64)
	back := "/jobcards"
	if jobCardID > 0 {
		back = "/jobcards/view/" + strconv.FormatInt(jobCardID, 10)
	}

	status, err := ParseJobServiceStatus(r.PostFormValue("status"))
	if err != nil {
		h.redirectWithFlash(w, r, back, "error", "Unknown service status")
		return
	}

	if err := h.service.SetServiceStatus(r.Context(), jobServiceID, status); err != nil {
		h.logger.Error("update job service status failed", "error", err, "job_service_id", jobServiceID)
		h.redirectWithFlash(w, r, back, "error", "Could not update service status")
		return
	}

	h.redirectWithFlash(w, r, back, "success", "Service status updated")
}

func (h *Handler) renderFormError(w http.ResponseWriter, r *http.Request, card JobCard, err error, fallback string) {
	fleet, listErr := h.vehicles.List(r.Context())
	if listErr != nil {
		h.logger.Error("list vehicles failed", "error", listErr)
	}

	msg := fallback
	if errors.Is(err, shared.ErrValidation) {
		msg = "Job card details are incomplete or invalid"
	} else if errors.Is(err, shared.ErrConflict) {
		msg = "The selected vehicle no longer exists"
	}

	h.render(w, r, "pages/jobcard_form.html", map[string]any{
		"JobCard":  card,
		"Vehicles": fleet,
		"Statuses": AllStatuses(),
		"Error":    msg,
	}, http.StatusBadRequest)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Job cards",
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
