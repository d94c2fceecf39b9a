package ledger

import (
    "time"

    "github.com/google/uuid"
)

// TransactionFilter narrows a transaction query. Nil fields match everything.
type TransactionFilter struct {
    PartyID *uuid.UUID
    // From and To bound the invoice date, inclusive at both ends.
    From   *time.Time
    To     *time.Time
    Status *PaymentStatus
}

// Matches reports whether t satisfies the filter. Date bounds compare
// calendar instants; callers pass day-granular bounds.
func (f TransactionFilter) Matches(t Transaction) bool {
    if f.PartyID != nil && t.PartyID != *f.PartyID {
        return false
    }
    if f.From != nil && t.Date.Before(*f.From) {
        return false
    }
    if f.To != nil && t.Date.After(*f.To) {
        return false
    }
    if f.Status != nil && t.Status != *f.Status {
        return false
    }
    return true
}
