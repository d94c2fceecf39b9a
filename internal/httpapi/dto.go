package httpapi

import (
    "time"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/ledger"
    "github.com/pharmadesk/pharmapay/internal/report"
    "github.com/pharmadesk/pharmapay/internal/service/analytics"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

type postPartyRequest struct {
    Name string `json:"name"`
}

type partyResponse struct {
    ID   uuid.UUID `json:"id"`
    Name string    `json:"name"`
}

type postTransactionRequest struct {
    PartyID       uuid.UUID          `json:"party_id"`
    Date          string             `json:"date"`
    SubtotalMinor int64              `json:"subtotal_minor"`
    PaymentType   ledger.PaymentType `json:"payment_type"`
    PaymentDate   *string            `json:"payment_date,omitempty"`
    PTRNumber     string             `json:"ptr_number,omitempty"`
    ChequeNumber  string             `json:"cheque_number,omitempty"`
    Notes         string             `json:"notes,omitempty"`
}

type transactionResponse struct {
    ID            uuid.UUID            `json:"id"`
    PartyID       uuid.UUID            `json:"party_id"`
    Date          string               `json:"date"`
    SubtotalMinor int64                `json:"subtotal_minor"`
    Subtotal      string               `json:"subtotal"`
    CGSTMinor     int64                `json:"cgst_minor"`
    CGST          string               `json:"cgst"`
    SGSTMinor     int64                `json:"sgst_minor"`
    SGST          string               `json:"sgst"`
    TotalMinor    int64                `json:"total_minor"`
    Total         string               `json:"total"`
    PaymentType   ledger.PaymentType   `json:"payment_type"`
    PaymentDate   *string              `json:"payment_date,omitempty"`
    PTRNumber     string               `json:"ptr_number,omitempty"`
    ChequeNumber  string               `json:"cheque_number,omitempty"`
    Status        ledger.PaymentStatus `json:"status"`
    Notes         string               `json:"notes,omitempty"`
    CreatedAt     time.Time            `json:"created_at"`
}

func toTransactionResponse(t ledger.Transaction) transactionResponse {
    var paymentDate *string
    if t.PaymentDate != nil {
        s := t.PaymentDate.Format(dateLayout)
        paymentDate = &s
    }
    return transactionResponse{
        ID:            t.ID,
        PartyID:       t.PartyID,
        Date:          t.Date.Format(dateLayout),
        SubtotalMinor: ledger.Minor(t.Subtotal),
        Subtotal:      report.FormatMinor(ledger.Minor(t.Subtotal)),
        CGSTMinor:     ledger.Minor(t.CGST),
        CGST:          report.FormatMinor(ledger.Minor(t.CGST)),
        SGSTMinor:     ledger.Minor(t.SGST),
        SGST:          report.FormatMinor(ledger.Minor(t.SGST)),
        TotalMinor:    ledger.Minor(t.Total),
        Total:         report.FormatMinor(ledger.Minor(t.Total)),
        PaymentType:   t.PaymentType,
        PaymentDate:   paymentDate,
        PTRNumber:     t.PTRNumber,
        ChequeNumber:  t.ChequeNumber,
        Status:        t.Status,
        Notes:         t.Notes,
        CreatedAt:     t.CreatedAt,
    }
}

type dashboardResponse struct {
    TodayTotalMinor int64    `json:"today_total_minor"`
    TodayTotal      string   `json:"today_total"`
    TodayCount      int      `json:"today_count"`
    MonthTotalMinor int64    `json:"month_total_minor"`
    MonthTotal      string   `json:"month_total"`
    MonthCount      int      `json:"month_count"`
    TodayParties    []string `json:"today_parties"`
}

func toDashboardResponse(d analytics.Dashboard) dashboardResponse {
    parties := d.TodayParties
    if parties == nil {
        parties = []string{}
    }
    return dashboardResponse{
        TodayTotalMinor: d.TodayTotalMinor,
        TodayTotal:      report.FormatMinor(d.TodayTotalMinor),
        TodayCount:      d.TodayCount,
        MonthTotalMinor: d.MonthTotalMinor,
        MonthTotal:      report.FormatMinor(d.MonthTotalMinor),
        MonthCount:      d.MonthCount,
        TodayParties:    parties,
    }
}

type totalsResponse struct {
    TotalMinor  int64 `json:"total_minor"`
    PaidMinor   int64 `json:"paid_minor"`
    UnpaidMinor int64 `json:"unpaid_minor"`
    Count       int   `json:"count"`
    PaidCount   int   `json:"paid_count"`
}

type partyTotalResponse struct {
    PartyID    uuid.UUID `json:"party_id"`
    Name       string    `json:"name"`
    TotalMinor int64     `json:"total_minor"`
    Total      string    `json:"total"`
}

type monthBucketResponse struct {
    Month       string `json:"month"`
    PaidMinor   int64  `json:"paid_minor"`
    UnpaidMinor int64  `json:"unpaid_minor"`
    Count       int    `json:"count"`
}

type typeTotalResponse struct {
    Type       ledger.PaymentType `json:"type"`
    TotalMinor int64              `json:"total_minor"`
    Count      int                `json:"count"`
}

type overviewResponse struct {
    Totals         totalsResponse        `json:"totals"`
    CollectionRate float64               `json:"collection_rate"`
    TopParties     []partyTotalResponse  `json:"top_parties,omitempty"`
    MonthlyTrend   []monthBucketResponse `json:"monthly_trend"`
    PaymentTypes   []typeTotalResponse   `json:"payment_types"`
}

func toOverviewResponse(o analytics.Overview) overviewResponse {
    resp := overviewResponse{
        Totals: totalsResponse{
            TotalMinor:  o.Totals.TotalMinor,
            PaidMinor:   o.Totals.PaidMinor,
            UnpaidMinor: o.Totals.UnpaidMinor,
            Count:       o.Totals.Count,
            PaidCount:   o.Totals.PaidCount,
        },
        CollectionRate: o.CollectionRate,
        MonthlyTrend:   make([]monthBucketResponse, 0, len(o.MonthlyTrend)),
        PaymentTypes:   make([]typeTotalResponse, 0, len(o.PaymentTypes)),
    }
    for _, p := range o.TopParties {
        resp.TopParties = append(resp.TopParties, partyTotalResponse{
            PartyID:    p.PartyID,
            Name:       p.Name,
            TotalMinor: p.TotalMinor,
            Total:      report.FormatMinor(p.TotalMinor),
        })
    }
    for _, m := range o.MonthlyTrend {
        resp.MonthlyTrend = append(resp.MonthlyTrend, monthBucketResponse{
            Month:       m.Month.Format("Jan 2006"),
            PaidMinor:   m.PaidMinor,
            UnpaidMinor: m.UnpaidMinor,
            Count:       m.Count,
        })
    }
    for _, t := range o.PaymentTypes {
        resp.PaymentTypes = append(resp.PaymentTypes, typeTotalResponse{
            Type:       t.Type,
            TotalMinor: t.TotalMinor,
            Count:      t.Count,
        })
    }
    return resp
}
