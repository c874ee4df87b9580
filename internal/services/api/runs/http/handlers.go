// Package http provides http transport for discovery runs
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"prospector/internal/modkit/httpkit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/services/api/runs/domain"
)

// Register mounts run endpoints on the given router
func Register(r httpkit.Router, p domain.Ports) {
	h := &handlers{ports: p}

	// start a run (optionally dry)
	httpkit.PostJSON[domain.InvokeRequest](r, "/", h.invoke)

	// recent runs, newest first
	httpkit.Get(r, "/", h.recent)

	// one run with its stats
	httpkit.Get(r, "/{id}", h.get)
}

type handlers struct{ ports domain.Ports }

func (h *handlers) invoke(r *stdhttp.Request, in domain.InvokeRequest) (any, error) {
	return h.ports.Runner.Run(r.Context(), in.ToRunRequest("api"))
}

func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return nil, perr.InvalidArgf("limit must be an integer between 1 and 100")
		}
		limit = n
	}
	return h.ports.Reader.Recent(r.Context(), limit)
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return nil, perr.InvalidArgf("run id is required")
	}
	return h.ports.Reader.Get(r.Context(), id)
}
