package analytics

import (
    "sort"
    "time"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/errs"
    "github.com/pharmadesk/pharmapay/internal/ledger"
)

// The reductions in this file are pure and order-independent: feeding the
// same set in any order yields identical results. All sums are in paise.

// Totals is the reconciling money view of a transaction set. UnpaidMinor is
// derived as TotalMinor-PaidMinor rather than summed independently so the
// two always reconcile exactly.
type Totals struct {
    TotalMinor  int64
    PaidMinor   int64
    UnpaidMinor int64
    Count       int
    PaidCount   int
}

// Reduce folds a transaction set into Totals.
func Reduce(set []ledger.Transaction) Totals {
    var t Totals
    for _, tx := range set {
        minor := ledger.Minor(tx.Total)
        t.TotalMinor += minor
        t.Count++
        if tx.Status == ledger.StatusPaid {
            t.PaidMinor += minor
            t.PaidCount++
        }
    }
    t.UnpaidMinor = t.TotalMinor - t.PaidMinor
    return t
}

// CollectionRate is paid/total as a percentage, 0 for an empty set.
func (t Totals) CollectionRate() float64 {
    if t.TotalMinor == 0 {
        return 0
    }
    return float64(t.PaidMinor) / float64(t.TotalMinor) * 100
}

// PartyTotal is one row of the top-parties ranking.
type PartyTotal struct {
    PartyID    uuid.UUID
    Name       string
    TotalMinor int64
}

// TopParties groups the set by party, sums totals and returns the top n by
// descending sum. Ties break by ascending party name for determinism.
func TopParties(set []ledger.Transaction, names map[uuid.UUID]string, n int) []PartyTotal {
    sums := make(map[uuid.UUID]int64)
    for _, tx := range set {
        sums[tx.PartyID] += ledger.Minor(tx.Total)
    }
    out := make([]PartyTotal, 0, len(sums))
    for id, minor := range sums {
        out = append(out, PartyTotal{PartyID: id, Name: names[id], TotalMinor: minor})
    }
    sort.Slice(out, func(i, j int) bool {
        if out[i].TotalMinor != out[j].TotalMinor {
            return out[i].TotalMinor > out[j].TotalMinor
        }
        return out[i].Name < out[j].Name
    })
    if len(out) > n {
        out = out[:n]
    }
    return out
}

// MonthBucket is one month of the trailing trend series.
type MonthBucket struct {
    // Month is the first instant of the bucket's calendar month.
    Month       time.Time
    PaidMinor   int64
    UnpaidMinor int64
    Count       int
}

// MaxTrendMonths bounds the trend window. The bucket slice is sized from
// caller input, so the bound also protects allocation.
const MaxTrendMonths = 120

// MonthlyTrend buckets the set into the trailing months calendar months
// ending at now's month. The series always has exactly months entries;
// months with no transactions report zeros instead of being omitted.
func MonthlyTrend(set []ledger.Transaction, months int, now time.Time) ([]MonthBucket, error) {
    if months <= 0 || months > MaxTrendMonths {
        return nil, errs.ErrInvalidWindow
    }
    loc := now.Location()
    first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -(months - 1), 0)
    buckets := make([]MonthBucket, months)
    index := make(map[time.Time]int, months)
    for i := range buckets {
        m := first.AddDate(0, i, 0)
        buckets[i] = MonthBucket{Month: m}
        index[m] = i
    }
    for _, tx := range set {
        d := tx.Date.In(loc)
        key := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc)
        i, ok := index[key]
        if !ok {
            continue
        }
        minor := ledger.Minor(tx.Total)
        if tx.Status == ledger.StatusPaid {
            buckets[i].PaidMinor += minor
        } else {
            buckets[i].UnpaidMinor += minor
        }
        buckets[i].Count++
    }
    return buckets, nil
}

// TypeTotal is one slice of the payment-type mix.
type TypeTotal struct {
    Type       ledger.PaymentType
    TotalMinor int64
    Count      int
}

// PaymentTypeDistribution groups the set by payment type. The result is
// ordered by descending sum, then type name, for stable output.
func PaymentTypeDistribution(set []ledger.Transaction) []TypeTotal {
    sums := make(map[ledger.PaymentType]*TypeTotal)
    for _, tx := range set {
        tt, ok := sums[tx.PaymentType]
        if !ok {
            tt = &TypeTotal{Type: tx.PaymentType}
            sums[tx.PaymentType] = tt
        }
        tt.TotalMinor += ledger.Minor(tx.Total)
        tt.Count++
    }
    out := make([]TypeTotal, 0, len(sums))
    for _, tt := range sums {
        out = append(out, *tt)
    }
    sort.Slice(out, func(i, j int) bool {
        if out[i].TotalMinor != out[j].TotalMinor {
            return out[i].TotalMinor > out[j].TotalMinor
        }
        return out[i].Type < out[j].Type
    })
    return out
}

// ActivePartiesToday returns distinct names of parties with at least one
// transaction dated today, in order of first appearance in the set.
func ActivePartiesToday(set []ledger.Transaction, names map[uuid.UUID]string, now time.Time) []string {
    seen := make(map[uuid.UUID]struct{})
    out := make([]string, 0)
    for _, tx := range set {
        if !sameDay(tx.Date, now) {
            continue
        }
        if _, ok := seen[tx.PartyID]; ok {
            continue
        }
        seen[tx.PartyID] = struct{}{}
        if name, ok := names[tx.PartyID]; ok {
            out = append(out, name)
        }
    }
    return out
}

// sameDay compares calendar dates in now's timezone.
func sameDay(d, now time.Time) bool {
    d = d.In(now.Location())
    return d.Year() == now.Year() && d.Month() == now.Month() && d.Day() == now.Day()
}
