package rosterhandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/roster"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service *roster.Service
}

func NewHandler(service *roster.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/roster", func(r chi.Router) {
		r.Get("/week", h.handleWeek)
		r.Get("/month", h.handleMonth)
		r.Get("/export", h.handleExport)
		r.Put("/", h.handleAssign)
		r.Delete("/", h.handleUnassign)
	})
	r.Route("/locales/{local}/horario", func(r chi.Router) {
		r.Get("/", h.handleGetHours)
		r.Put("/", h.handlePutHours)
	})
}

func requestLocale(r *http.Request, user auth.UserContext, explicit string) string {
	if user.Role != auth.RoleAdmin && user.Locale != auth.LocaleAll {
		return user.Locale
	}
	if explicit != "" {
		return explicit
	}
	return r.URL.Query().Get("locale")
}

// weekStart parses ?start= and snaps it to the Monday of its week. An empty
// value means the current week.
func weekStart(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("start")
	if raw == "" {
		return shared.MondayOf(time.Now().UTC()), nil
	}
	day, err := shared.ParseDate(raw)
	if err != nil {
		return time.Time{}, err
	}
	return shared.MondayOf(day), nil
}

func (h *Handler) handleWeek(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	locale := requestLocale(r, user, "")
	if locale == "" {
		api.Fail(w, http.StatusBadRequest, "locale_required", "locale query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}
	start, err := weekStart(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "start must be a date in YYYY-MM-DD format", middleware.GetRequestID(r.Context()))
		return
	}

	grid, err := h.Service.WeekGrid(r.Context(), locale, start, r.URL.Query().Get("q"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "roster_week_failed", "failed to build week grid", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, grid, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	locale := requestLocale(r, user, "")
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

	buckets, err := h.Service.Month(r.Context(), locale, ref)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "roster_month_failed", "failed to load month", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, buckets, middleware.GetRequestID(r.Context()))
}

type assignRequest struct {
	Locale string `json:"locale"`
	Person string `json:"empleado"`
	Date   string `json:"fecha"`
	Shift  string `json:"turno"`
	Hours  string `json:"horas,omitempty"`
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload assignRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	locale := requestLocale(r, user, payload.Locale)

	validator := shared.NewValidator()
	validator.Required("locale", locale, "locale is required")
	validator.Required("empleado", payload.Person, "empleado is required")
	validator.Required("fecha", payload.Date, "fecha is required")
	validator.Required("turno", payload.Shift, "turno is required")
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	assignment, err := h.Service.Assign(r.Context(), locale, payload.Person, payload.Date, payload.Shift, payload.Hours)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "roster_assign_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assignment, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUnassign(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	locale := requestLocale(r, user, "")
	person := r.URL.Query().Get("empleado")
	date := r.URL.Query().Get("fecha")
	if locale == "" || person == "" || date == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "locale, empleado and fecha query parameters are required", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.Unassign(r.Context(), locale, person, date); err != nil {
		api.Fail(w, http.StatusBadRequest, "roster_unassign_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "cleared"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	locale := requestLocale(r, user, "")
	if locale == "" {
		api.Fail(w, http.StatusBadRequest, "locale_required", "locale query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}
	start, err := weekStart(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "start must be a date in YYYY-MM-DD format", middleware.GetRequestID(r.Context()))
		return
	}

	data, err := h.Service.ExportWeekPDF(r.Context(), locale, start, r.URL.Query().Get("q"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "roster_export_failed", "failed to render export", middleware.GetRequestID(r.Context()))
		return
	}

	filename := fmt.Sprintf("horario-%s-%s.pdf", url.PathEscape(locale), start.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

func (h *Handler) handleGetHours(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	locale := chi.URLParam(r, "local")
	if !user.CanAccessLocale(locale) {
		api.Fail(w, http.StatusForbidden, "forbidden", "location belongs to another scope", middleware.GetRequestID(r.Context()))
		return
	}
	hours, err := h.Service.HoursConfig(r.Context(), locale)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "horario_get_failed", "failed to load shift windows", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, hours, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePutHours(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	locale := chi.URLParam(r, "local")
	if !user.CanAccessLocale(locale) {
		api.Fail(w, http.StatusForbidden, "forbidden", "location belongs to another scope", middleware.GetRequestID(r.Context()))
		return
	}

	var payload roster.LocalHours
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.Locale = locale

	updated, err := h.Service.UpdateHoursConfig(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "horario_update_failed", "failed to save shift windows", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}
