package analytics

import (
    "context"
    "io"
    "log/slog"
    "testing"
    "time"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/ledger"
    "github.com/pharmadesk/pharmapay/internal/policy"
    "github.com/pharmadesk/pharmapay/internal/storage/memory"
)

func testLogger() *slog.Logger {
    return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func waitForSnapshot(t *testing.T, r *Refresher, want int64) Dashboard {
    t.Helper()
    deadline := time.Now().Add(2 * time.Second)
    for time.Now().Before(deadline) {
        snap, err := r.Dashboard(context.Background(), policy.RoleOwner)
        if err != nil {
            t.Fatalf("dashboard: %v", err)
        }
        if snap.TodayTotalMinor == want {
            return snap
        }
        time.Sleep(5 * time.Millisecond)
    }
    t.Fatalf("snapshot never reached today total %d", want)
    return Dashboard{}
}

func TestRefresher_RecomputesOnStoreChange(t *testing.T) {
    store := memory.New()
    party := ledger.Party{ID: uuid.New(), Name: "ISHA PHARMA"}
    store.SeedParty(party)

    now := time.Now().UTC()
    svc := NewAt(store, func() time.Time { return now })
    r := NewRefresher(svc, testLogger())

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    done := make(chan struct{})
    go func() {
        defer close(done)
        r.Run(ctx, store.Subscribe())
    }()

    // initial refresh primes an empty snapshot
    waitForSnapshot(t, r, 0)

    tax, err := ledger.ComputeTax(ledger.MustAmount(100000))
    if err != nil {
        t.Fatalf("compute tax: %v", err)
    }
    paid := ledger.Transaction{
        ID:          uuid.New(),
        PartyID:     party.ID,
        Date:        now,
        Subtotal:    ledger.MustAmount(100000),
        CGST:        tax.CGST,
        SGST:        tax.SGST,
        Total:       tax.Total,
        PaymentType: ledger.PaymentTypeCash,
        Status:      ledger.StatusPaid,
        CreatedAt:   now,
    }
    if _, err := store.InsertTransaction(context.Background(), paid); err != nil {
        t.Fatalf("insert: %v", err)
    }

    // the write signals the change channel and the snapshot catches up
    snap := waitForSnapshot(t, r, 105000)
    if snap.TodayCount != 1 || snap.MonthTotalMinor != 105000 {
        t.Fatalf("unexpected snapshot: %+v", snap)
    }
    if len(snap.TodayParties) != 1 || snap.TodayParties[0] != party.Name {
        t.Fatalf("today parties: %v", snap.TodayParties)
    }

    // cached snapshot is role-filtered like the live view
    mgr, err := r.Dashboard(context.Background(), policy.RoleManager)
    if err != nil {
        t.Fatalf("manager dashboard: %v", err)
    }
    if mgr.TodayTotalMinor != 0 || mgr.TodayCount != 1 {
        t.Fatalf("manager filtering on snapshot: %+v", mgr)
    }

    cancel()
    select {
    case <-done:
    case <-time.After(time.Second):
        t.Fatal("refresher did not stop on context cancel")
    }
}

func TestRefresher_FallsBackLiveBeforeFirstRefresh(t *testing.T) {
    store := memory.New()
    party := ledger.Party{ID: uuid.New(), Name: "MEDLINE AGENCIES"}
    store.SeedParty(party)
    now := time.Now().UTC()
    svc := NewAt(store, func() time.Time { return now })

    tax, err := ledger.ComputeTax(ledger.MustAmount(40000))
    if err != nil {
        t.Fatalf("compute tax: %v", err)
    }
    if _, err := store.InsertTransaction(context.Background(), ledger.Transaction{
        ID:          uuid.New(),
        PartyID:     party.ID,
        Date:        now,
        Subtotal:    ledger.MustAmount(40000),
        CGST:        tax.CGST,
        SGST:        tax.SGST,
        Total:       tax.Total,
        PaymentType: ledger.PaymentTypeUPI,
        Status:      ledger.StatusPaid,
        CreatedAt:   now,
    }); err != nil {
        t.Fatalf("insert: %v", err)
    }

    // Run was never started; Dashboard must compute live instead of serving
    // a zero snapshot.
    r := NewRefresher(svc, testLogger())
    snap, err := r.Dashboard(context.Background(), policy.RoleOwner)
    if err != nil {
        t.Fatalf("dashboard: %v", err)
    }
    if snap.TodayTotalMinor != 42000 {
        t.Fatalf("expected live fallback total 42000, got %d", snap.TodayTotalMinor)
    }
}
