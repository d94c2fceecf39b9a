package memory

// Package memory provides a simple in-memory implementation used for
// development and tests. It keeps code paths easy to follow while allowing
// us to plug in a real DB later.
import (
    "context"
    "sort"
    "strings"
    "sync"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/errs"
    "github.com/pharmadesk/pharmapay/internal/ledger"
)

// Store is an in-memory implementation of the repository+writer interfaces
// used by the services. It is guarded by an RWMutex for concurrent
// reads/writes and broadcasts a change signal on every transaction write.
type Store struct {
    mu           sync.RWMutex
    parties      map[uuid.UUID]ledger.Party
    transactions map[uuid.UUID]ledger.Transaction
    subscribers  []chan struct{}
}

// New constructs an empty in-memory store.
func New() *Store {
    return &Store{
        parties:      make(map[uuid.UUID]ledger.Party),
        transactions: make(map[uuid.UUID]ledger.Transaction),
    }
}

// Seed helpers for local dev/tests.
func (s *Store) SeedParty(p ledger.Party) { s.mu.Lock(); s.parties[p.ID] = p; s.mu.Unlock() }
func (s *Store) SeedTransaction(t ledger.Transaction) {
    s.mu.Lock()
    s.transactions[t.ID] = t
    s.mu.Unlock()
}
func (s *Store) Reset() {
    s.mu.Lock()
    s.parties = map[uuid.UUID]ledger.Party{}
    s.transactions = map[uuid.UUID]ledger.Transaction{}
    s.mu.Unlock()
}

// Subscribe registers a change listener. The channel has capacity one and
// sends are non-blocking, so bursts of writes coalesce into a single signal.
func (s *Store) Subscribe() <-chan struct{} {
    ch := make(chan struct{}, 1)
    s.mu.Lock()
    s.subscribers = append(s.subscribers, ch)
    s.mu.Unlock()
    return ch
}

// notifyLocked signals all subscribers. Caller must hold s.mu.
func (s *Store) notifyLocked() {
    for _, ch := range s.subscribers {
        select {
        case ch <- struct{}{}:
        default:
        }
    }
}

// --- Parties ---

// ListParties returns all parties ordered by name.
func (s *Store) ListParties(_ context.Context) ([]ledger.Party, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]ledger.Party, 0, len(s.parties))
    for _, p := range s.parties {
        out = append(out, p)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
    return out, nil
}

// GetParty returns a party by ID.
func (s *Store) GetParty(_ context.Context, id uuid.UUID) (ledger.Party, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    p, ok := s.parties[id]
    if !ok {
        return ledger.Party{}, errs.ErrPartyNotFound
    }
    return p, nil
}

// FindPartyByName resolves a party by case-insensitive name.
func (s *Store) FindPartyByName(_ context.Context, name string) (ledger.Party, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    for _, p := range s.parties {
        if strings.EqualFold(p.Name, name) {
            return p, nil
        }
    }
    return ledger.Party{}, errs.ErrPartyNotFound
}

// CreateParty persists a new party. Name uniqueness is enforced
// case-insensitively under the store lock.
func (s *Store) CreateParty(_ context.Context, p ledger.Party) (ledger.Party, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    for _, other := range s.parties {
        if strings.EqualFold(other.Name, p.Name) {
            return ledger.Party{}, errs.ErrConflict
        }
    }
    s.parties[p.ID] = p
    return p, nil
}

// UpdateParty persists changes to a party.
func (s *Store) UpdateParty(_ context.Context, p ledger.Party) (ledger.Party, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.parties[p.ID]; !ok {
        return ledger.Party{}, errs.ErrPartyNotFound
    }
    for _, other := range s.parties {
        if other.ID != p.ID && strings.EqualFold(other.Name, p.Name) {
            return ledger.Party{}, errs.ErrConflict
        }
    }
    s.parties[p.ID] = p
    return p, nil
}

// DeleteParty removes a party. The referential check and the delete run
// under the same lock, which is the atomicity this store guarantees.
func (s *Store) DeleteParty(_ context.Context, id uuid.UUID) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.parties[id]; !ok {
        return errs.ErrPartyNotFound
    }
    for _, t := range s.transactions {
        if t.PartyID == id {
            return errs.ErrReferencedParty
        }
    }
    delete(s.parties, id)
    return nil
}

// --- Transactions ---

// QueryTransactions returns transactions matching the filter, newest invoice
// date first.
func (s *Store) QueryTransactions(_ context.Context, f ledger.TransactionFilter) ([]ledger.Transaction, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]ledger.Transaction, 0)
    for _, t := range s.transactions {
        if f.Matches(t) {
            out = append(out, t)
        }
    }
    sort.Slice(out, func(i, j int) bool {
        if !out[i].Date.Equal(out[j].Date) {
            return out[i].Date.After(out[j].Date)
        }
        if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
            return out[i].CreatedAt.After(out[j].CreatedAt)
        }
        return out[i].ID.String() < out[j].ID.String()
    })
    return out, nil
}

// GetTransaction returns a single transaction by ID.
func (s *Store) GetTransaction(_ context.Context, id uuid.UUID) (ledger.Transaction, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    t, ok := s.transactions[id]
    if !ok {
        return ledger.Transaction{}, errs.ErrTransactionNotFound
    }
    return t, nil
}

// InsertTransaction persists a new transaction and signals subscribers.
func (s *Store) InsertTransaction(_ context.Context, t ledger.Transaction) (ledger.Transaction, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.transactions[t.ID] = t
    s.notifyLocked()
    return t, nil
}

// UpdateTransaction replaces an existing transaction and signals
// subscribers. Last write wins; there is no version check.
func (s *Store) UpdateTransaction(_ context.Context, t ledger.Transaction) (ledger.Transaction, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.transactions[t.ID]; !ok {
        return ledger.Transaction{}, errs.ErrTransactionNotFound
    }
    s.transactions[t.ID] = t
    s.notifyLocked()
    return t, nil
}
