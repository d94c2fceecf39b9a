package main

import (
    "context"
    "flag"
    "log/slog"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "syscall"
    "time"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/config"
    "github.com/pharmadesk/pharmapay/internal/httpapi"
    "github.com/pharmadesk/pharmapay/internal/ledger"
    "github.com/pharmadesk/pharmapay/internal/report"
    "github.com/pharmadesk/pharmapay/internal/service/analytics"
    "github.com/pharmadesk/pharmapay/internal/storage/memory"
    pgstore "github.com/pharmadesk/pharmapay/internal/storage/postgres"
)

func main() {
    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    configPath := flag.String("config", "", "path to config file (default: ./config.yaml)")
    flag.Parse()

    cfg, err := config.Load(*configPath)
    if err != nil {
        slog.Error("failed to load config", "err", err)
        os.Exit(1)
    }

    logger := buildLogger(cfg.Log)
    slog.SetDefault(logger)

    org := report.Org{
        Name:    cfg.Org.Name,
        Address: cfg.Org.Address,
        GSTIN:   cfg.Org.GSTIN,
        Phone:   cfg.Org.Phone,
    }
    auth := httpapi.AuthConfig{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.Issuer}

    var (
        store   httpapi.Store
        summary httpapi.SummaryProvider
        closeFn func()
    )

    if dsn := strings.TrimSpace(cfg.Database.URL); dsn != "" {
        pg, err := pgstore.Open(ctx, dsn)
        if err != nil {
            logger.Error("failed to connect to postgres", "err", err)
            os.Exit(1)
        }
        closeFn = pg.Close
        store = pg
        // No change feed from postgres, so summaries are computed live.
        summary = analytics.New(pg)
        logger.Info("storage backend: postgres")
    } else {
        mem := memory.New()
        if cfg.DevSeed {
            seedDev(mem, logger)
        }
        store = mem
        refresher := analytics.NewRefresher(analytics.New(mem), logger)
        go refresher.Run(ctx, mem.Subscribe())
        summary = refresher
        logger.Info("storage backend: memory")
    }

    api := httpapi.New(store, summary, org, auth, logger)

    srv := &http.Server{
        Addr:              cfg.Server.Address,
        Handler:           api.Handler(),
        ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
        ReadHeaderTimeout: 5 * time.Second,
        WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
        IdleTimeout:       time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
    }

    errCh := make(chan error, 1)
    go func() {
        logger.Info("payment ledger listening", "addr", srv.Addr)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            errCh <- err
        }
    }()

    select {
    case <-ctx.Done():
        ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        if err := srv.Shutdown(ctxShutdown); err != nil {
            logger.Error("server shutdown error", "err", err)
        }
    case err := <-errCh:
        logger.Error("server error", "err", err)
    }
    if closeFn != nil {
        closeFn()
    }
}

// seedDev loads a small party set for local testing against the memory store.
func seedDev(store *memory.Store, l *slog.Logger) {
    names := []string{"ISHA PHARMA", "MEDLINE AGENCIES", "SRI SAI DISTRIBUTORS"}
    ids := make(map[string]string, len(names))
    for _, name := range names {
        p := ledger.Party{ID: uuid.New(), Name: name}
        store.SeedParty(p)
        ids[name] = p.ID.String()
    }
    l.Info("DEV seed (memory)", "party_ids", ids)
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
    switch strings.ToLower(s) {
    case "debug":
        return slog.LevelDebug
    case "warn", "warning":
        return slog.LevelWarn
    case "error", "err":
        return slog.LevelError
    default:
        return slog.LevelInfo
    }
}

func buildLogger(cfg config.LogConfig) *slog.Logger {
    level := parseLogLevel(cfg.Level)
    if strings.ToLower(strings.TrimSpace(cfg.Format)) == "text" {
        return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
    }
    // default to JSON
    return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
