package httpd

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/container"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/store"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/view"
)

func (h *Handler) EditCampusForm(w http.ResponseWriter, r *http.Request) {
	c := container.NewEditCampusContainer(h.store, h.requestLogger(r))
	err := c.Mount(r.Context())
	defer c.Unmount()

	h.renderCampusContainer(w, r, c, statusFor(err))
}

func (h *Handler) EditCampusSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeErrorPage(w, r, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	c := container.NewEditCampusContainer(h.store, h.requestLogger(r))
	// A failed collection load only affects the id bound; the edit can proceed.
	_ = c.Mount(r.Context())
	defer c.Unmount()

	for _, ev := range changeEvents(r) {
		if err := c.HandleChange(ev); errors.Is(err, container.ErrUnknownField) {
			logger := h.requestLogger(r)
			logger.Debug().Str("field", ev.Name).Msg("Ignoring unknown campus field")
		}
	}

	err := c.HandleSubmit(r.Context())
	h.renderCampusContainer(w, r, c, statusFor(err))
}

func (h *Handler) renderCampusContainer(w http.ResponseWriter, r *http.Request, c *container.EditCampusContainer, status int) {
	out := c.Render()
	if out.RedirectTo != "" {
		http.Redirect(w, r, out.RedirectTo, http.StatusSeeOther)
		return
	}

	h.writeHTML(w, r, status, func(buf *bytes.Buffer) error {
		return h.renderer.EditCampus(buf, out.Form)
	})
}

func (h *Handler) ShowCampus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.writeErrorPage(w, r, http.StatusBadRequest, "Campus id must be a positive whole number.")
		return
	}

	var campus models.CampusDetail
	if err := h.store.Dispatch(r.Context(), store.FetchCampusThunk(id, &campus)); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.writeErrorPage(w, r, http.StatusNotFound, fmt.Sprintf("No campus with id %d.", id))
			return
		}
		logger := h.requestLogger(r)
		logger.Error().Err(err).Int("campus_id", id).Msg("Failed to load campus")
		h.writeErrorPage(w, r, http.StatusBadGateway, "The campus could not be loaded. Please try again later.")
		return
	}

	h.writeHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.Campus(buf, view.CampusPage{Campus: campus})
	})
}
