// Package httpapi wires the HTTP surface of the payment ledger service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
    "log/slog"
    "net/http"

    chi "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"

    "github.com/pharmadesk/pharmapay/internal/report"
    "github.com/pharmadesk/pharmapay/internal/service/party"
    "github.com/pharmadesk/pharmapay/internal/service/transaction"
)

// Server wires handlers and middleware using Chi.
type Server struct {
    partySvc party.Service
    txSvc    transaction.Service
    summary  SummaryProvider
    store    Store
    org      report.Org
    auth     AuthConfig
    log      *slog.Logger
    rt       *chi.Mux
}

// New constructs the HTTP server with routes and middleware. The summary
// provider is usually the analytics refresher; tests may pass the live
// service directly.
func New(store Store, summary SummaryProvider, org report.Org, auth AuthConfig, logger *slog.Logger) *Server {
    r := chi.NewRouter()
    r.Use(chimw.RequestID)
    r.Use(requestLogger(logger))
    r.Use(recoverer(logger))
    r.Use(metricsMiddleware)

    s := &Server{
        partySvc: party.New(store, store),
        txSvc:    transaction.New(store, store, store),
        summary:  summary,
        store:    store,
        org:      org,
        auth:     auth,
        log:      logger,
        rt:       r,
    }
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
    auth := s.requireIdentity()
    // Parties (v1)
    s.rt.With(auth).Post("/v1/parties", s.postParty)
    s.rt.With(auth).Get("/v1/parties", s.listParties)
    s.rt.With(auth).Patch("/v1/parties/{id}", s.renameParty)
    s.rt.With(auth).Delete("/v1/parties/{id}", s.deleteParty)
    // Transactions (v1)
    s.rt.With(auth).Post("/v1/transactions", s.postTransaction)
    s.rt.With(auth).Get("/v1/transactions", s.listTransactions)
    s.rt.With(auth).Put("/v1/transactions/{id}", s.putTransaction)
    s.rt.With(auth).Post("/v1/transactions/{id}/toggle", s.toggleTransaction)
    // Summaries (v1)
    s.rt.With(auth).Get("/v1/dashboard", s.getDashboard)
    s.rt.With(auth).Get("/v1/analytics", s.getAnalytics)
    // Reports (v1)
    s.rt.With(auth).Get("/v1/reports/export", s.exportReport)
    // Ops (unversioned)
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Handle("/metrics", metricsHandler())
}
