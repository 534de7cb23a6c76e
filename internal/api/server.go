// Package api serves plans over HTTP.
package api

import (
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rpgo/dignity-planner/internal/calculation"
	"github.com/rpgo/dignity-planner/internal/config"
	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/rpgo/dignity-planner/internal/store"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server routes plan requests to the planner and repository.
type Server struct {
	planner *calculation.Planner
	repo    store.Repository
	parser  *config.InputParser
	log     zerolog.Logger

	// base is handed to the planner and repository; it ends on shutdown.
	base context.Context
}

// NewServer creates a server. repo may be nil, which disables identity routes.
func NewServer(planner *calculation.Planner, repo store.Repository, log zerolog.Logger) *Server {
	return &Server{
		planner: planner,
		repo:    repo,
		parser:  config.NewInputParser(),
		log:     log.With().Str("component", "api").Logger(),
		base:    context.Background(),
	}
}

// Handle is the fasthttp request handler.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch path {
	case "/healthz":
		s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/v1/plan":
		switch {
		case ctx.IsPost():
			s.handlePlanBody(ctx)
		case ctx.IsGet():
			s.handlePlanIdentity(ctx)
		default:
			s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		}
	case "/v1/snapshot":
		if !ctx.IsPut() {
			s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
			break
		}
		s.handleSaveSnapshot(ctx)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}

	s.log.Debug().
		Str("method", string(ctx.Method())).
		Str("path", path).
		Int("status", ctx.Response.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("request")
}

// decodeSnapshot parses and validates a JSON snapshot body.
func (s *Server) decodeSnapshot(ctx *fasthttp.RequestCtx) (*domain.Snapshot, bool) {
	var snap domain.Snapshot
	if err := json.Unmarshal(ctx.PostBody(), &snap); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	config.ApplyDefaults(&snap)
	if err := s.parser.ValidateConfiguration(&snap); err != nil {
		s.writeError(ctx, statusFor(err), err.Error())
		return nil, false
	}
	return &snap, true
}

func (s *Server) handlePlanBody(ctx *fasthttp.RequestCtx) {
	snap, ok := s.decodeSnapshot(ctx)
	if !ok {
		return
	}
	s.plan(ctx, snap)
}

func (s *Server) handlePlanIdentity(ctx *fasthttp.RequestCtx) {
	identity, ok := s.identity(ctx)
	if !ok {
		return
	}
	snap, err := s.repo.Load(s.base, identity)
	if err != nil {
		s.writeError(ctx, statusFor(err), err.Error())
		return
	}
	s.plan(ctx, snap)
}

func (s *Server) handleSaveSnapshot(ctx *fasthttp.RequestCtx) {
	identity, ok := s.identity(ctx)
	if !ok {
		return
	}
	snap, ok := s.decodeSnapshot(ctx)
	if !ok {
		return
	}
	if err := s.repo.Save(s.base, identity, snap); err != nil {
		s.log.Error().Err(err).Str("identity", identity).Msg("save failed")
		s.writeError(ctx, statusFor(err), err.Error())
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Server) identity(ctx *fasthttp.RequestCtx) (string, bool) {
	if s.repo == nil {
		s.writeError(ctx, fasthttp.StatusServiceUnavailable, "no snapshot repository configured")
		return "", false
	}
	identity := string(ctx.QueryArgs().Peek("identity"))
	if err := store.ValidateIdentity(identity); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return "", false
	}
	return identity, true
}

func (s *Server) plan(ctx *fasthttp.RequestCtx, snap *domain.Snapshot) {
	report, err := s.planner.Run(s.base, snap)
	if err != nil {
		s.writeError(ctx, statusFor(err), err.Error())
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, report)
}

func statusFor(err error) int {
	switch {
	case domain.IsConfigError(err):
		return fasthttp.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fasthttp.StatusServiceUnavailable
	default:
		return fasthttp.StatusInternalServerError
	}
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
		status = fasthttp.StatusInternalServerError
		body = []byte(`{"status":500,"message":"failed to encode response"}`)
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	s.writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.base = ctx
	srv := &fasthttp.Server{
		Handler:      s.Handle,
		Name:         "dignity-planner",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		return srv.Shutdown()
	}
}
