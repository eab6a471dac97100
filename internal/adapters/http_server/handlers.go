// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lakeshore_hotel/internal/app"
	"lakeshore_hotel/internal/domain"
)

// Renderer writes a named page. Nothing may be written when it fails.
type Renderer interface {
	Render(w io.Writer, page string, data any) error
}

type Handlers struct {
	Pages  *app.PageService
	Client *app.Client
	View   Renderer
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/readyz", h.ready)
	s.mux.Get("/api/v1/collections/{name}", h.getCollection)

	s.mux.Get("/", page(h, "home", h.Pages.Home))
	s.mux.Get("/rooms", page(h, "rooms", h.Pages.Rooms))
	s.mux.Get("/amenities", page(h, "amenities", h.Pages.Amenities))
	s.mux.Get("/dining", page(h, "dining", h.Pages.Dining))
	s.mux.Get("/attractions", page(h, "attractions", h.Pages.Attractions))
	s.mux.Get("/offers", page(h, "offers", h.Pages.Offers))
	s.mux.Get("/policies", page(h, "policies", h.Pages.Policies))
	s.mux.Get("/ratings", page(h, "ratings", h.Pages.Ratings))

	s.mux.NotFound(notFound)
}

// notFound sends unknown pages home; unknown API paths get a problem.
func notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeProblem(w, http.StatusNotFound, "Not Found", "no such endpoint")
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// page adapts a view-model builder into an HTML handler.
func page[V any](h *Handlers, name string, build func(context.Context) (V, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := build(r.Context())
		if err != nil {
			// only a cancelled request gets here; nobody is listening
			log.Debug().Str("page", name).Err(err).Msg("page build aborted")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.View.Render(w, name, v); err != nil {
			log.Error().Str("page", name).Err(err).Msg("render failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeFetchError maps the fetch taxonomy onto HTTP statuses.
func writeFetchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "collection not found")
	case errors.Is(err, domain.ErrMalformed):
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "content store returned malformed data")
	case errors.Is(err, domain.ErrTransient):
		var fe *domain.FetchError
		if errors.As(err, &fe) && fe.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(fe.RetryAfter.Seconds()))))
		}
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "content store unavailable")
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) getCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	res, err := h.Client.Collection(r.Context(), name)
	if err != nil {
		log.Warn().Str("collection", name).Str("kind", domain.KindOf(err)).Err(err).Msg("collection request failed")
		writeFetchError(w, err)
		return
	}

	etag, body := calcETagAndBody(res)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "encode failed")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write collection body")
	}
}

func (h *Handlers) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	store := h.Client.Store()
	if err := store.Ping(ctx); err != nil {
		log.Warn().Str("store", store.Name()).Err(err).Msg("readiness check failed")
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", store.Name()+" content store unreachable")
		return
	}
	w.WriteHeader(200)
	_, _ = w.Write([]byte("ready"))
}
