package analytics

import (
    "context"
    "log/slog"
    "sync"

    "github.com/pharmadesk/pharmapay/internal/policy"
)

// Refresher keeps a warm dashboard snapshot and recomputes it whenever the
// storage layer signals a change. Aggregation is idempotent, so overlapping
// or coalesced signals are harmless.
type Refresher struct {
    svc Service
    log *slog.Logger

    mu     sync.RWMutex
    snap   Dashboard
    primed bool
}

func NewRefresher(svc Service, log *slog.Logger) *Refresher {
    return &Refresher{svc: svc, log: log}
}

// Run recomputes the snapshot once up front and then on every change signal
// until the context is cancelled. It is meant to run in its own goroutine.
func (r *Refresher) Run(ctx context.Context, changes <-chan struct{}) {
    r.refresh(ctx)
    for {
        select {
        case <-ctx.Done():
            return
        case _, ok := <-changes:
            if !ok {
                return
            }
            r.refresh(ctx)
        }
    }
}

func (r *Refresher) refresh(ctx context.Context) {
    snap, err := r.svc.Dashboard(ctx, policy.RoleOwner)
    if err != nil {
        r.log.Error("dashboard refresh failed", "err", err)
        return
    }
    r.mu.Lock()
    r.snap = snap
    r.primed = true
    r.mu.Unlock()
    r.log.Debug("dashboard snapshot refreshed",
        "today_count", snap.TodayCount, "month_count", snap.MonthCount)
}

// Dashboard serves the cached snapshot filtered for the caller's role,
// falling back to a live computation before the first refresh completes.
func (r *Refresher) Dashboard(ctx context.Context, role policy.Role) (Dashboard, error) {
    r.mu.RLock()
    snap, primed := r.snap, r.primed
    r.mu.RUnlock()
    if !primed {
        return r.svc.Dashboard(ctx, role)
    }
    return filterDashboard(snap, role), nil
}

// Overview always computes live; the analytics page is on-demand.
func (r *Refresher) Overview(ctx context.Context, role policy.Role, months int) (Overview, error) {
    return r.svc.Overview(ctx, role, months)
}
