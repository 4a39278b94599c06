package server

import (
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/calculation"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/fiscalio/fiscalio/internal/regime"
	"github.com/fiscalio/fiscalio/internal/strategy"
)

// Server exposes the calculation core over HTTP. It holds only
// immutable state (the bareme registry and the strategy rules), so
// concurrent requests need no locking.
type Server struct {
	Registry *bareme.Registry
	Rules    strategy.Rules
	Logger   calculation.Logger
}

// New creates a server over a loaded registry
func New(registry *bareme.Registry, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{Registry: registry, Rules: strategy.DefaultRules(), Logger: logger}
}

// CalculationRequest is the inbound payload of /api/calculate and
// /api/regime. Year selects the bareme; zero means the latest loaded.
type CalculationRequest struct {
	Year    int                   `json:"year"`
	Profile *domain.FiscalProfile `json:"profile"`
}

// OptimizationRequest additionally carries the caller context
type OptimizationRequest struct {
	Year    int                         `json:"year"`
	Profile *domain.FiscalProfile       `json:"profile"`
	Context *domain.OptimizationContext `json:"context"`
}

// OptimizationResponse bundles the fresh calculation with the ranked
// recommendations derived from it.
type OptimizationResponse struct {
	Result       *domain.TaxCalculationResult `json:"result"`
	Optimization *domain.OptimizationResult   `json:"optimization"`
}

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Handler routes all API requests; pass it to fasthttp.ListenAndServe
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/healthz" && method == fasthttp.MethodGet:
		s.handleHealth(ctx)
	case path == "/api/calculate" && method == fasthttp.MethodPost:
		s.handleCalculate(ctx)
	case path == "/api/optimize" && method == fasthttp.MethodPost:
		s.handleOptimize(ctx)
	case path == "/api/regime" && method == fasthttp.MethodPost:
		s.handleRegime(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"status": "ok", "years": s.Registry.Years()})
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx) {
	var req CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Profile == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "profile is required")
		return
	}

	b, err := s.baremeFor(req.Year)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	result, err := calculation.NewEngine(b).Calculate(req.Profile)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleOptimize(ctx *fasthttp.RequestCtx) {
	var req OptimizationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Profile == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "profile is required")
		return
	}

	b, err := s.baremeFor(req.Year)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	result, err := calculation.NewEngine(b).Calculate(req.Profile)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	opt, err := strategy.NewOrchestrator(b, s.Rules).Optimize(result, req.Profile, req.Context)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, OptimizationResponse{Result: result, Optimization: opt})
}

func (s *Server) handleRegime(ctx *fasthttp.RequestCtx) {
	var req CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Profile == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "profile is required")
		return
	}

	b, err := s.baremeFor(req.Year)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	cmp, err := regime.NewComparator(b).Compare(req.Profile)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, cmp)
}

func (s *Server) baremeFor(year int) (*bareme.Bareme, error) {
	if year == 0 {
		years := s.Registry.Years()
		if len(years) == 0 {
			return nil, &domain.ConfigurationError{Field: "baremes", Reason: "no bareme loaded"}
		}
		year = years[len(years)-1]
	}
	return s.Registry.ForYear(year)
}

// writeDomainError maps the error taxonomy onto HTTP statuses:
// ValidationError is the caller's fault, everything else is ours.
// Invariant violations are defects and get reported to Sentry when a
// DSN is configured.
func (s *Server) writeDomainError(ctx *fasthttp.RequestCtx, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	var iErr *domain.DomainInvariantError
	if errors.As(err, &iErr) {
		s.Logger.Errorf("invariant violation: %v", err)
		sentry.CaptureException(err)
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	var cErr *domain.ConfigurationError
	if errors.As(err, &cErr) {
		s.Logger.Errorf("configuration error: %v", err)
		sentry.CaptureException(err)
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	s.Logger.Errorf("calculation failed: %v", err)
	writeError(ctx, fasthttp.StatusInternalServerError, "calculation failed")
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		fmt.Fprintf(ctx, `{"status":500,"message":"encoding failed"}`)
		return
	}
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}
