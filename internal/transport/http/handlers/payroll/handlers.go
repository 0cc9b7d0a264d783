package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/payroll"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service   *payroll.Service
	Employees payroll.EmployeeSource
}

func NewHandler(service *payroll.Service, employees payroll.EmployeeSource) *Handler {
	return &Handler{Service: service, Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/nominas", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleUpsert)
		r.Post("/{nominaID}/estado", h.handleSetState)
		r.Post("/{nominaID}/payslip", h.handleGeneratePayslip)
		r.Delete("/{nominaID}", h.handleDelete)
	})
}

func requestLocale(r *http.Request, user auth.UserContext) string {
	if user.Role != auth.RoleAdmin && user.Locale != auth.LocaleAll {
		return user.Locale
	}
	return r.URL.Query().Get("locale")
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	locale := requestLocale(r, user)
	if locale == "" {
		api.Fail(w, http.StatusBadRequest, "locale_required", "locale query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}

	ref := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be in YYYY-MM-DD format", middleware.GetRequestID(r.Context()))
			return
		}
		ref = parsed
	}

	nominas, err := h.Service.List(r.Context(), locale, ref)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "nominas_list_failed", "failed to list payslips", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, nominas, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var payload payroll.Nomina
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("empleado_id", payload.EmployeeID, "empleado_id is required")
	validator.Required("periodo_inicio", payload.PeriodStart, "periodo_inicio is required")
	validator.Required("periodo_fin", payload.PeriodEnd, "periodo_fin is required")
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	user, _ := middleware.GetUser(r.Context())
	employee, err := h.Employees.GetEmployee(r.Context(), payload.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "empleado_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if !user.CanAccessLocale(employee.Locale) {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee belongs to another location", middleware.GetRequestID(r.Context()))
		return
	}

	nomina, err := h.Service.Upsert(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "nomina_upsert_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, nomina, middleware.GetRequestID(r.Context()))
}

type stateRequest struct {
	State string `json:"estado"`
}

func (h *Handler) handleSetState(w http.ResponseWriter, r *http.Request) {
	var payload stateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.State == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "estado is required", middleware.GetRequestID(r.Context()))
		return
	}

	id, ok := h.scopedNominaID(w, r)
	if !ok {
		return
	}
	nomina, err := h.Service.SetState(r.Context(), id, payroll.State(payload.State))
	if err != nil {
		h.failNomina(w, r, err, "nomina_state_failed")
		return
	}
	api.Success(w, nomina, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGeneratePayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := h.scopedNominaID(w, r)
	if !ok {
		return
	}
	nomina, err := h.Service.GeneratePayslip(r.Context(), id)
	if err != nil {
		h.failNomina(w, r, err, "payslip_failed")
		return
	}
	api.Success(w, nomina, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.scopedNominaID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.failNomina(w, r, err, "nomina_delete_failed")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

// scopedNominaID checks the payslip exists and sits inside the caller's
// location scope before any by-id mutation runs.
func (h *Handler) scopedNominaID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, _ := middleware.GetUser(r.Context())
	nomina, err := h.Service.Get(r.Context(), chi.URLParam(r, "nominaID"))
	if err != nil {
		h.failNomina(w, r, err, "nomina_get_failed")
		return "", false
	}
	if !user.CanAccessLocale(nomina.Locale) {
		api.Fail(w, http.StatusForbidden, "forbidden", "payslip belongs to another location", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return nomina.ID, true
}

func (h *Handler) failNomina(w http.ResponseWriter, r *http.Request, err error, code string) {
	if errors.Is(err, payroll.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "nomina_not_found", "payslip not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusBadRequest, code, err.Error(), middleware.GetRequestID(r.Context()))
}
