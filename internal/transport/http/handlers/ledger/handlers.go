package ledgerhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/ledger"
	"staffhub/internal/domain/people"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
)

type Handler struct {
	Ledger *ledger.Service
	People *people.Service
}

func NewHandler(ledgerSvc *ledger.Service, peopleSvc *people.Service) *Handler {
	return &Handler{Ledger: ledgerSvc, People: peopleSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/empleados/{employeeID}/vacaciones", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Post("/toggle", h.handleToggleDay)
		r.Post("/pendientes/toggle", h.handleTogglePending)
	})
}

type ledgerView struct {
	ledger.Ledger
	Taken     int `json:"dias_cogidos"`
	Remaining int `json:"dias_restantes"`
	Allowance int `json:"dias_anuales"`
}

func view(l ledger.Ledger) ledgerView {
	return ledgerView{
		Ledger:    l,
		Taken:     l.TakenCount(),
		Remaining: l.Remaining(),
		Allowance: ledger.AnnualAllowance,
	}
}

type toggleRequest struct {
	Date string `json:"fecha"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.scopedEmployeeID(w, r)
	if !ok {
		return
	}
	current, err := h.Ledger.Load(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vacaciones_load_failed", "failed to load vacation ledger", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view(current), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleToggleDay(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Ledger.ToggleDay)
}

func (h *Handler) handleTogglePending(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Ledger.TogglePending)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, employeeID, date string) (ledger.Ledger, error)) {
	employeeID, ok := h.scopedEmployeeID(w, r)
	if !ok {
		return
	}

	var payload toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Date == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "fecha is required", middleware.GetRequestID(r.Context()))
		return
	}

	current, err := fn(r.Context(), employeeID, payload.Date)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "vacaciones_toggle_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view(current), middleware.GetRequestID(r.Context()))
}

// scopedEmployeeID checks the employee exists and sits inside the caller's
// location scope before any ledger operation runs.
func (h *Handler) scopedEmployeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, _ := middleware.GetUser(r.Context())
	employee, err := h.People.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, people.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "empleado_not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return "", false
		}
		api.Fail(w, http.StatusInternalServerError, "empleado_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return "", false
	}
	if !user.CanAccessLocale(employee.Locale) {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee belongs to another location", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return employee.ID, true
}
