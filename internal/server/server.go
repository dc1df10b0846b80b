// Package server exposes the onboarding-tools HTTP API: service order and
// spec listings from OpenSlice, risk specification intake, and Security
// Orchestrator policy handling.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/diogosantosua/onboarding-tools/internal/config"
	"github.com/diogosantosua/onboarding-tools/internal/policy"
	"github.com/diogosantosua/onboarding-tools/internal/tmf"
)

// OpenSliceAPI is the slice of the TMF client the handlers need.
type OpenSliceAPI interface {
	ListActiveServiceOrders(ctx context.Context) ([]tmf.ServiceOrder, error)
	ListServiceSpecs(ctx context.Context) ([]tmf.ServiceSpec, error)
	GetServiceSpec(ctx context.Context, id string) (*tmf.ServiceSpec, error)
	UpdateServiceOrderAndInventories(ctx context.Context, orderID string, spec tmf.ServiceSpec) (*tmf.ServiceOrder, error)
	UpdateServiceOrdersFromSpec(ctx context.Context, spec tmf.ServiceSpec) ([]tmf.ServiceOrder, error)
}

// Orchestrator forwards MSPL documents to the Security Orchestrator.
type Orchestrator interface {
	SendMSPL(ctx context.Context, mspl []byte) error
}

// Server wires the HTTP handlers to the OpenSlice and orchestrator clients.
type Server struct {
	settings     config.Settings
	openslice    OpenSliceAPI
	orchestrator Orchestrator
	queues       *policy.WaitingQueues
}

// New creates a Server over the given backends.
func New(settings config.Settings, openslice OpenSliceAPI, orchestrator Orchestrator) *Server {
	return &Server{
		settings:     settings,
		openslice:    openslice,
		orchestrator: orchestrator,
		queues:       policy.NewWaitingQueues(),
	}
}

// Router builds the chi router with all routes mounted under the versioned
// prefix. CORS mirrors the permissive policy the service has always shipped
// with; the API is only reachable inside the orchestration domain.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route(s.settings.APIPrefix(), func(r chi.Router) {
		r.Get("/serviceOrders", s.listServiceOrders)
		r.Get("/serviceSpecs", s.listServiceSpecs)
		r.Post("/osl/{serviceOrderID}", s.handleOpenSliceServiceOrder)
		r.Post("/risk", s.handleRiskSpecification)
		r.Post("/so", s.handleNMTDPolicy)
		r.Post("/telemetry", policyHandler[policy.TelemetryPolicy](s))
		r.Post("/firewall", policyHandler[policy.FirewallPolicy](s))
		r.Post("/siem", policyHandler[policy.SIEMPolicy](s))
		r.Post("/channelProtection", policyHandler[policy.ChannelProtectionPolicy](s))
	})

	return r
}

// ListenAndServe runs the HTTP server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.settings.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("prefix", s.settings.APIPrefix()).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("http server stopped")
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
