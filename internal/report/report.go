// Package report shapes filtered transaction slices into the fixed tabular
// contract shared by every export format. Filtering is the caller's job;
// this package only owns row shaping and encoding.
package report

import (
    "fmt"
    "time"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/errs"
    "github.com/pharmadesk/pharmapay/internal/ledger"
)

// placeholder renders missing optional fields.
const placeholder = "-"

// dateLayout is DD/MM/YYYY, locale-independent so exports stay diffable.
const dateLayout = "02/01/2006"

// Columns is the fixed column order every export variant must follow.
var Columns = []string{
    "Date", "Party Name", "Subtotal", "CGST", "SGST",
    "Total", "Payment Type", "Payment Date", "Status", "Notes",
}

// Org is the identity block printed as the document preamble.
type Org struct {
    Name    string
    Address string
    GSTIN   string
    Phone   string
}

// Document is a shaped report ready for any encoder.
type Document struct {
    Preamble []string
    Header   []string
    Rows     [][]string
}

// Build shapes an already-filtered transaction slice into a Document.
// It fails with ErrEmptyReport on zero rows so callers can surface the
// condition instead of emitting a silent empty file.
func Build(txs []ledger.Transaction, names map[uuid.UUID]string, org Org, from, to time.Time) (Document, error) {
    if len(txs) == 0 {
        return Document{}, errs.ErrEmptyReport
    }
    rows := make([][]string, 0, len(txs))
    for _, t := range txs {
        rows = append(rows, shapeRow(t, names[t.PartyID]))
    }
    return Document{
        Preamble: preamble(org, from, to),
        Header:   append([]string(nil), Columns...),
        Rows:     rows,
    }, nil
}

func shapeRow(t ledger.Transaction, partyName string) []string {
    paymentDate := placeholder
    if t.PaymentDate != nil {
        paymentDate = t.PaymentDate.Format(dateLayout)
    }
    notes := t.Notes
    if notes == "" {
        notes = placeholder
    }
    return []string{
        t.Date.Format(dateLayout),
        partyName,
        FormatMinor(ledger.Minor(t.Subtotal)),
        FormatMinor(ledger.Minor(t.CGST)),
        FormatMinor(ledger.Minor(t.SGST)),
        FormatMinor(ledger.Minor(t.Total)),
        string(t.PaymentType),
        paymentDate,
        string(t.Status),
        notes,
    }
}

func preamble(org Org, from, to time.Time) []string {
    lines := []string{org.Name}
    if org.Address != "" {
        lines = append(lines, org.Address)
    }
    if org.GSTIN != "" {
        lines = append(lines, "GSTIN: "+org.GSTIN)
    }
    if org.Phone != "" {
        lines = append(lines, "Phone: "+org.Phone)
    }
    lines = append(lines, "Payment Report "+from.Format(dateLayout)+" to "+to.Format(dateLayout))
    return lines
}

// FormatMinor renders paise as a plain two-decimal amount, no currency
// symbol and no thousands separator.
func FormatMinor(minor int64) string {
    sign := ""
    if minor < 0 {
        sign = "-"
        minor = -minor
    }
    return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
