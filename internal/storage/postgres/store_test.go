package postgres

import (
    "context"
    "errors"
    "os"
    "path/filepath"
    "runtime"
    "testing"
    "time"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/errs"
    "github.com/pharmadesk/pharmapay/internal/ledger"
)

func getTestDSN(t *testing.T) string {
    t.Helper()
    dsn := os.Getenv("TEST_DATABASE_URL")
    if dsn == "" {
        t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
    }
    return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
    t.Helper()
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    s, err := Open(ctx, dsn)
    if err != nil {
        t.Fatalf("open: %v", err)
    }
    return s
}

func applyInitSQL(t *testing.T, dsn string) {
    t.Helper()
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    s, err := Open(ctx, dsn)
    if err != nil {
        t.Fatalf("open for init: %v", err)
    }
    defer s.Close()
    // Resolve init SQL path relative to this test file so CWD doesn't matter
    _, thisFile, _, _ := runtime.Caller(0)
    repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "../../../"))
    path := filepath.Join(repoRoot, "db", "migrations", "0001_init.sql")
    b, err := os.ReadFile(path)
    if err != nil {
        t.Fatalf("read init sql: %v", err)
    }
    if _, err := s.pool.Exec(ctx, string(b)); err != nil {
        t.Fatalf("apply init sql: %v", err)
    }
}

func truncateAll(t *testing.T, dsn string) {
    t.Helper()
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    s, err := Open(ctx, dsn)
    if err != nil {
        t.Fatalf("open for truncate: %v", err)
    }
    defer s.Close()
    _, _ = s.pool.Exec(ctx, `truncate table transactions, parties cascade`)
}

func TestStore_PartiesAndTransactions(t *testing.T) {
    dsn := getTestDSN(t)
    applyInitSQL(t, dsn)
    truncateAll(t, dsn)
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    s := mustOpen(t, dsn)
    defer s.Close()

    if err := s.Ready(ctx); err != nil {
        t.Fatalf("ready: %v", err)
    }

    // Parties: create + duplicate + lookup
    p, err := s.CreateParty(ctx, ledger.Party{ID: uuid.New(), Name: "ISHA PHARMA"})
    if err != nil {
        t.Fatalf("create party: %v", err)
    }
    if _, err := s.CreateParty(ctx, ledger.Party{ID: uuid.New(), Name: "isha pharma"}); !errors.Is(err, errs.ErrConflict) {
        t.Fatalf("expected ErrConflict for duplicate name, got %v", err)
    }
    byName, err := s.FindPartyByName(ctx, "  ISHA PHARMA ")
    if err != nil || byName.ID != p.ID {
        t.Fatalf("find by name: %v %+v", err, byName)
    }

    // Transactions: insert + get + query
    tax, err := ledger.ComputeTax(ledger.MustAmount(100000))
    if err != nil {
        t.Fatalf("compute tax: %v", err)
    }
    tx := ledger.Transaction{
        ID:          uuid.New(),
        PartyID:     p.ID,
        Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
        Subtotal:    ledger.MustAmount(100000),
        CGST:        tax.CGST,
        SGST:        tax.SGST,
        Total:       tax.Total,
        PaymentType: ledger.PaymentTypeCash,
        Status:      ledger.StatusUnpaid,
        CreatedAt:   time.Now().UTC(),
    }
    if _, err := s.InsertTransaction(ctx, tx); err != nil {
        t.Fatalf("insert transaction: %v", err)
    }
    got, err := s.GetTransaction(ctx, tx.ID)
    if err != nil {
        t.Fatalf("get transaction: %v", err)
    }
    if ledger.Minor(got.Total) != 105000 || got.Status != ledger.StatusUnpaid {
        t.Fatalf("round trip mismatch: %+v", got)
    }

    // Referential integrity: cannot delete a referenced party
    if err := s.DeleteParty(ctx, p.ID); !errors.Is(err, errs.ErrReferencedParty) {
        t.Fatalf("expected ErrReferencedParty, got %v", err)
    }

    // Update flips status
    got.Status = got.Status.Toggle()
    if _, err := s.UpdateTransaction(ctx, got); err != nil {
        t.Fatalf("update transaction: %v", err)
    }
    status := ledger.StatusPaid
    paid, err := s.QueryTransactions(ctx, ledger.TransactionFilter{Status: &status})
    if err != nil {
        t.Fatalf("query: %v", err)
    }
    if len(paid) != 1 || paid[0].ID != tx.ID {
        t.Fatalf("status query: %+v", paid)
    }

    // Unknown IDs surface the sentinel
    if _, err := s.GetTransaction(ctx, uuid.New()); !errors.Is(err, errs.ErrTransactionNotFound) {
        t.Fatalf("expected ErrTransactionNotFound, got %v", err)
    }
    if _, err := s.GetParty(ctx, uuid.New()); !errors.Is(err, errs.ErrPartyNotFound) {
        t.Fatalf("expected ErrPartyNotFound, got %v", err)
    }
}
