package httpserver

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"
	"net/http"
	"time"
)

type Server struct{ mux *chi.Mux }

// requestTimeout bounds every request, content fetches included.
const requestTimeout = 15 * time.Second

// New builds the router. ratePerMin <= 0 disables per-IP rate limiting.
func New(ratePerMin int) *Server {
	return newServer(ratePerMin, requestTimeout)
}

func newServer(ratePerMin int, timeout time.Duration) *Server {
	m := chi.NewRouter()

	// All middlewares go here (before any routes are added)
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer) // chi's built-in recover
	m.Use(Headers)
	m.Use(Metrics)
	m.Use(Logger(log.Logger))
	m.Use(Timeout(timeout)) // inside Metrics/Logger so a 504 is recorded
	if ratePerMin > 0 {
		m.Use(httprate.LimitByIP(ratePerMin, time.Minute))
	}
	m.Use(chimw.Compress(5, "text/html", "application/json", "application/problem+json"))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
