// Package analytics computes windowed, role-filtered summaries over the
// transaction set. Everything here is a read-only reduction; recomputation
// is idempotent and side-effect-free, so duplicate refresh triggers are safe.
package analytics

import (
    "context"
    "time"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/ledger"
    "github.com/pharmadesk/pharmapay/internal/policy"
)

// Repo defines the read operations needed by the engine.
type Repo interface {
    QueryTransactions(ctx context.Context, f ledger.TransactionFilter) ([]ledger.Transaction, error)
    ListParties(ctx context.Context) ([]ledger.Party, error)
}

// Dashboard is the live summary behind the landing view. Today and month
// cards follow the original behaviour: they count Paid transactions only,
// windowed on the invoice date.
type Dashboard struct {
    TodayTotalMinor int64
    TodayCount      int
    MonthTotalMinor int64
    MonthCount      int
    TodayParties    []string
}

// Overview is the analytics view: status breakdown, top parties, trailing
// monthly trend and payment-type mix over the whole ledger.
type Overview struct {
    Totals         Totals
    CollectionRate float64
    TopParties     []PartyTotal
    MonthlyTrend   []MonthBucket
    PaymentTypes   []TypeTotal
}

type Service interface {
    Dashboard(ctx context.Context, role policy.Role) (Dashboard, error)
    Overview(ctx context.Context, role policy.Role, months int) (Overview, error)
}

type service struct {
    repo Repo
    now  func() time.Time
}

func New(repo Repo) Service { return &service{repo: repo, now: time.Now} }

// NewAt constructs a service with a fixed clock, for tests.
func NewAt(repo Repo, now func() time.Time) Service { return &service{repo: repo, now: now} }

func (s *service) Dashboard(ctx context.Context, role policy.Role) (Dashboard, error) {
    now := s.now()
    monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
    paid := ledger.StatusPaid
    set, err := s.repo.QueryTransactions(ctx, ledger.TransactionFilter{From: &monthStart, Status: &paid})
    if err != nil {
        return Dashboard{}, err
    }
    names, err := s.partyNames(ctx)
    if err != nil {
        return Dashboard{}, err
    }

    var d Dashboard
    for _, tx := range set {
        minor := ledger.Minor(tx.Total)
        d.MonthTotalMinor += minor
        d.MonthCount++
        if sameDay(tx.Date, now) {
            d.TodayTotalMinor += minor
            d.TodayCount++
        }
    }
    d.TodayParties = ActivePartiesToday(set, names, now)
    return filterDashboard(d, role), nil
}

func (s *service) Overview(ctx context.Context, role policy.Role, months int) (Overview, error) {
    set, err := s.repo.QueryTransactions(ctx, ledger.TransactionFilter{})
    if err != nil {
        return Overview{}, err
    }
    names, err := s.partyNames(ctx)
    if err != nil {
        return Overview{}, err
    }
    trend, err := MonthlyTrend(set, months, s.now())
    if err != nil {
        return Overview{}, err
    }
    totals := Reduce(set)
    o := Overview{
        Totals:         totals,
        CollectionRate: totals.CollectionRate(),
        TopParties:     TopParties(set, names, 5),
        MonthlyTrend:   trend,
        PaymentTypes:   PaymentTypeDistribution(set),
    }
    return filterOverview(o, role), nil
}

func (s *service) partyNames(ctx context.Context) (map[uuid.UUID]string, error) {
    parties, err := s.repo.ListParties(ctx)
    if err != nil {
        return nil, err
    }
    names := make(map[uuid.UUID]string, len(parties))
    for _, p := range parties {
        names[p.ID] = p.Name
    }
    return names, nil
}

// filterDashboard zeroes monetary fields for roles without financial
// visibility. Counts and the today-party list survive; the engine filters
// here rather than trusting callers to hide fields.
func filterDashboard(d Dashboard, role policy.Role) Dashboard {
    if policy.ForRole(role).CanViewFinancials {
        return d
    }
    d.TodayTotalMinor = 0
    d.MonthTotalMinor = 0
    return d
}

// filterOverview reduces the analytics view to counts for restricted roles:
// sums and the per-party ranking are zeroed or dropped, trend buckets keep
// their counts.
func filterOverview(o Overview, role policy.Role) Overview {
    if policy.ForRole(role).CanViewFinancials {
        return o
    }
    o.Totals.TotalMinor = 0
    o.Totals.PaidMinor = 0
    o.Totals.UnpaidMinor = 0
    o.CollectionRate = 0
    o.TopParties = nil
    for i := range o.MonthlyTrend {
        o.MonthlyTrend[i].PaidMinor = 0
        o.MonthlyTrend[i].UnpaidMinor = 0
    }
    for i := range o.PaymentTypes {
        o.PaymentTypes[i].TotalMinor = 0
    }
    return o
}
