// Package server implements the lotcheck HTTP API.
//
// The API exposes a single validation endpoint plus a health probe:
//
//	POST /v1/validate  - validate a layout JSON document, returns a report
//	GET  /healthz      - liveness probe
//
// Validation is pure, so reports are cached by a content hash of the layout
// and the active policy. The cache backend is pluggable; deployments without
// one get the null cache.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/lotcheck/pkg/cache"
	"github.com/matzehuels/lotcheck/pkg/rules"
	"github.com/matzehuels/lotcheck/pkg/validate"
)

// defaultCacheTTL bounds how long a cached report is served before it is
// recomputed. Reports are immutable per (layout, policy), so the TTL exists
// only to bound cache growth.
const defaultCacheTTL = 24 * time.Hour

// Server holds the validation engine and its report cache.
type Server struct {
	engine *validate.Engine
	cache  cache.Cache
	logger *log.Logger
	ttl    time.Duration
}

// Options configures a Server. Zero values select the defaults: the default
// policy, the null cache, the default logger, and a 24 hour report TTL.
type Options struct {
	Policy   rules.Policy
	Cache    cache.Cache
	Logger   *log.Logger
	CacheTTL time.Duration
}

// New creates a Server from the given options.
func New(opts Options) *Server {
	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	l := opts.Logger
	if l == nil {
		l = log.Default()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Server{
		engine: validate.New(opts.Policy),
		cache:  c,
		logger: l,
		ttl:    ttl,
	}
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/validate", s.handleValidate)

	return r
}
