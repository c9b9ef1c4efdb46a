package httpd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/container"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/middleware"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	store    container.Connector
	renderer *view.Renderer
	logger   zerolog.Logger
}

func NewHandler(store container.Connector, renderer *view.Renderer, logger zerolog.Logger) *Handler {
	return &Handler{
		store:    store,
		renderer: renderer,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/editstudent", http.StatusFound)
	})

	router.Get("/editstudent", h.EditStudentForm)
	router.Post("/editstudent", h.EditStudentSubmit)
	router.Get("/student/{id}", h.ShowStudent)

	router.Get("/editcampus", h.EditCampusForm)
	router.Post("/editcampus", h.EditCampusSubmit)
	router.Get("/campus/{id}", h.ShowCampus)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "campus-portal",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

// requestLogger prefers the request-scoped logger so container and thunk logs
// carry the request id.
func (h *Handler) requestLogger(r *http.Request) zerolog.Logger {
	if l := middleware.LoggerFromContext(r.Context()); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return h.logger
}

// changeEvents turns a posted form into change events in a stable order.
func changeEvents(r *http.Request) []container.ChangeEvent {
	names := make([]string, 0, len(r.PostForm))
	for name := range r.PostForm {
		names = append(names, name)
	}
	sort.Strings(names)

	events := make([]container.ChangeEvent, 0, len(names))
	for _, name := range names {
		events = append(events, container.ChangeEvent{Name: name, Value: r.PostForm.Get(name)})
	}
	return events
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// statusFor maps a container or store error to the response status of a
// re-rendered page.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// writeHTML renders into a buffer first so template failures become a clean 500.
func (h *Handler) writeHTML(w http.ResponseWriter, r *http.Request, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logger := h.requestLogger(r)
		logger.Error().Err(err).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *Handler) writeErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeHTML(w, r, status, func(buf *bytes.Buffer) error {
		return h.renderer.Error(buf, view.ErrorPage{
			Status:  status,
			Title:   http.StatusText(status),
			Message: message,
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}
