package httpapi

import (
    "context"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/ledger"
    "github.com/pharmadesk/pharmapay/internal/policy"
    "github.com/pharmadesk/pharmapay/internal/service/analytics"
)

// Store composes the repository and writer operations the API needs. It is
// a convenience union satisfied by both storage backends.
type Store interface {
    // Parties
    ListParties(ctx context.Context) ([]ledger.Party, error)
    GetParty(ctx context.Context, id uuid.UUID) (ledger.Party, error)
    FindPartyByName(ctx context.Context, name string) (ledger.Party, error)
    CreateParty(ctx context.Context, p ledger.Party) (ledger.Party, error)
    UpdateParty(ctx context.Context, p ledger.Party) (ledger.Party, error)
    DeleteParty(ctx context.Context, id uuid.UUID) error
    // Transactions
    QueryTransactions(ctx context.Context, f ledger.TransactionFilter) ([]ledger.Transaction, error)
    GetTransaction(ctx context.Context, id uuid.UUID) (ledger.Transaction, error)
    InsertTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error)
    UpdateTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error)
}

// SummaryProvider serves the role-filtered aggregate views. Satisfied by the
// live analytics service and by the snapshot refresher.
type SummaryProvider interface {
    Dashboard(ctx context.Context, role policy.Role) (analytics.Dashboard, error)
    Overview(ctx context.Context, role policy.Role, months int) (analytics.Overview, error)
}

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
    Ready(ctx context.Context) error
}
