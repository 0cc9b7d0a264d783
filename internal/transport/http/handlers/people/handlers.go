package peoplehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/people"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
)

const maxDocumentBytes = 5 * 1024 * 1024

// FileStore keeps uploaded employee documents.
type FileStore interface {
	Upload(path string, data []byte) (string, error)
	Delete(path string) error
}

type Handler struct {
	Service *people.Service
	Files   FileStore
}

func NewHandler(service *people.Service, files FileStore) *Handler {
	return &Handler{Service: service, Files: files}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/empleados", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Post("/import", h.handleImportEmployees)
		r.Get("/{employeeID}", h.handleGetEmployee)
		r.Put("/{employeeID}", h.handleUpdateEmployee)
		r.Delete("/{employeeID}", h.handleDeleteEmployee)
		r.Get("/{employeeID}/documentos", h.handleListDocuments)
		r.Post("/{employeeID}/documentos", h.handleUploadDocument)
		r.Delete("/{employeeID}/documentos", h.handleRemoveDocument)
	})
	r.Route("/extras", func(r chi.Router) {
		r.Get("/", h.handleListExtras)
		r.Post("/", h.handleCreateExtra)
		r.Delete("/{extraID}", h.handleDeleteExtra)
	})
}

// requestLocale resolves the location a request operates on. Location-scoped
// users are always forced onto their own location, whatever they asked for.
func requestLocale(r *http.Request, user auth.UserContext) string {
	if user.Role != auth.RoleAdmin && user.Locale != auth.LocaleAll {
		return user.Locale
	}
	return r.URL.Query().Get("locale")
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	locale := requestLocale(r, user)
	if locale == "" {
		api.Fail(w, http.StatusBadRequest, "locale_required", "locale query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}
	employees, err := h.Service.ListEmployees(r.Context(), locale)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "empleados_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.loadScopedEmployee(w, r)
	if !ok {
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload people.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if !user.CanAccessLocale(payload.Locale) {
		payload.Locale = user.Locale
	}

	created, err := h.Service.CreateEmployee(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "empleado_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadScopedEmployee(w, r)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())

	var payload people.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if !user.CanAccessLocale(payload.Locale) {
		payload.Locale = existing.Locale
	}

	updated, err := h.Service.UpdateEmployee(r.Context(), existing.ID, payload)
	if err != nil {
		h.failEmployee(w, r, err, "empleado_update_failed", "failed to update employee")
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadScopedEmployee(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), existing.ID); err != nil {
		h.failEmployee(w, r, err, "empleado_delete_failed", "failed to delete employee")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleImportEmployees(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "multipart form with a file field is required", middleware.GetRequestID(r.Context()))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "file field is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	imported, skipped, err := h.Service.ImportEmployeesCSV(r.Context(), file)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "import_failed", "failed to read CSV", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"imported": imported, "skipped": skipped}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.loadScopedEmployee(w, r)
	if !ok {
		return
	}
	docs, err := h.Service.ListDocuments(r.Context(), employee.ID)
	if err != nil {
		h.failEmployee(w, r, err, "documentos_list_failed", "failed to list documents")
		return
	}
	api.Success(w, docs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.loadScopedEmployee(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "multipart form with a file field is required", middleware.GetRequestID(r.Context()))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "file field is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentBytes+1))
	if err != nil || len(data) > maxDocumentBytes {
		api.Fail(w, http.StatusRequestEntityTooLarge, "file_too_large", "document exceeds the size limit", middleware.GetRequestID(r.Context()))
		return
	}

	path := fmt.Sprintf("documentos/%s/%d-%s%s",
		employee.ID, time.Now().Unix(), uuid.NewString()[:8], filepath.Ext(header.Filename))
	url, err := h.Files.Upload(path, data)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store document", middleware.GetRequestID(r.Context()))
		return
	}

	docs, err := h.Service.AddDocument(r.Context(), employee.ID, people.Document{
		Name: header.Filename,
		URL:  url,
		Size: int64(len(data)),
	})
	if err != nil {
		h.failEmployee(w, r, err, "documento_add_failed", "failed to attach document")
		return
	}
	api.Created(w, docs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveDocument(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.loadScopedEmployee(w, r)
	if !ok {
		return
	}
	url := r.URL.Query().Get("url")
	if url == "" {
		api.Fail(w, http.StatusBadRequest, "url_required", "url query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}
	docs, err := h.Service.RemoveDocument(r.Context(), employee.ID, url)
	if err != nil {
		h.failEmployee(w, r, err, "documento_remove_failed", "failed to remove document")
		return
	}
	api.Success(w, docs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListExtras(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	locale := requestLocale(r, user)
	if locale == "" {
		api.Fail(w, http.StatusBadRequest, "locale_required", "locale query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}
	extras, err := h.Service.ListExtras(r.Context(), locale)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "extras_list_failed", "failed to list extras", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, extras, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateExtra(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload people.Extra
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if !user.CanAccessLocale(payload.Locale) {
		payload.Locale = user.Locale
	}

	created, err := h.Service.CreateExtra(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "extra_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteExtra(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	extra, err := h.Service.GetExtra(r.Context(), chi.URLParam(r, "extraID"))
	if err != nil {
		if errors.Is(err, people.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "extra_not_found", "extra not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "extra_get_failed", "failed to load extra", middleware.GetRequestID(r.Context()))
		return
	}
	if !user.CanAccessLocale(extra.Locale) {
		api.Fail(w, http.StatusForbidden, "forbidden", "extra belongs to another location", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.DeleteExtra(r.Context(), extra.ID); err != nil {
		if errors.Is(err, people.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "extra_not_found", "extra not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "extra_delete_failed", "failed to delete extra", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

// loadScopedEmployee fetches the employee in the URL and enforces the caller's
// location scope. It writes the error response itself.
func (h *Handler) loadScopedEmployee(w http.ResponseWriter, r *http.Request) (people.Employee, bool) {
	user, _ := middleware.GetUser(r.Context())
	employee, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.failEmployee(w, r, err, "empleado_get_failed", "failed to load employee")
		return people.Employee{}, false
	}
	if !user.CanAccessLocale(employee.Locale) {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee belongs to another location", middleware.GetRequestID(r.Context()))
		return people.Employee{}, false
	}
	return employee, true
}

func (h *Handler) failEmployee(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	if errors.Is(err, people.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "empleado_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusInternalServerError, code, message, middleware.GetRequestID(r.Context()))
}
