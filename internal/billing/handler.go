package billing

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

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	jobCardID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job card ID", http.StatusBadRequest)
		return
	}

	h.render(w, r, "pages/bill_form.html", map[string]any{
		"JobCardID": jobCardID,
		"Bill":      Bill{},
		"Error":     "",
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	jobCardID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job card ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	bill := billFromForm(r)
	bill.JobCardID = jobCardID

	created, err := h.service.Record(r.Context(), bill)
	if err != nil {
		msg := "Could not record bill"
		if errors.Is(err, shared.ErrValidation) {
			msg = "Bill amounts are incomplete or invalid"
		} else if errors.Is(err, shared.ErrConflict) {
			msg = "The job card no longer exists"
		}
		h.render(w, r, "pages/bill_form.html", map[string]any{
			"JobCardID": jobCardID,
			"Bill":      bill,
			"Error":     msg,
		}, http.StatusBadRequest)
		return
	}

	h.logger.Info("bill recorded", "bill_id", created.ID, "job_card_id", jobCardID, "grand_total", created.GrandTotal)
	h.redirectWithFlash(w, r, "/jobcards/view/"+strconv.FormatInt(jobCardID, 10), "success", "Bill recorded")
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid bill ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	jobCardID, _ := strconv.ParseInt(r.PostFormValue("job_card_id"), 10, 64)
	back := "/jobcards"
	if jobCardID > 0 {
		back = "/jobcards/view/" + strconv.FormatInt(jobCardID, 10)
	}

	if err := h.service.MarkPaid(r.Context(), id, r.PostFormValue("payment_method")); err != nil {
		h.logger.Error("mark bill paid failed", "error", err, "bill_id", id)
		h.redirectWithFlash(w, r, back, "error", "Could not mark bill as paid")
		return
	}

	h.redirectWithFlash(w, r, back, "success", "Bill marked as paid")
}

func billFromForm(r *http.Request) Bill {
	serviceCost, _ := strconv.ParseFloat(r.PostFormValue("total_service_cost"), 64)
	partsCost, _ := strconv.ParseFloat(r.PostFormValue("total_parts_cost"), 64)
	tax, _ := strconv.ParseFloat(r.PostFormValue("tax_amount"), 64)
	discount, _ := strconv.ParseFloat(r.PostFormValue("discount_amount"), 64)
	grandTotal, _ := strconv.ParseFloat(r.PostFormValue("grand_total"), 64)
	return Bill{
		TotalServiceCost: serviceCost,
		TotalPartsCost:   partsCost,
		TaxAmount:        tax,
		DiscountAmount:   discount,
		GrandTotal:       grandTotal,
		Notes:            r.PostFormValue("notes"),
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
		Title:       "Billing",
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
