package report

import (
    "bytes"
    "encoding/csv"
    "errors"
    "strings"
    "testing"
    "time"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/errs"
    "github.com/pharmadesk/pharmapay/internal/ledger"
)

var testOrg = Org{
    Name:    "PharmaDesk Distributors",
    Address: "12 Market Road, Hubli",
    GSTIN:   "29ABCDE1234F1Z5",
    Phone:   "080-1234567",
}

func sampleTx(t *testing.T, partyID uuid.UUID, subtotalMinor int64) ledger.Transaction {
    t.Helper()
    tax, err := ledger.ComputeTax(ledger.MustAmount(subtotalMinor))
    if err != nil {
        t.Fatalf("compute tax: %v", err)
    }
    return ledger.Transaction{
        ID:          uuid.New(),
        PartyID:     partyID,
        Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
        Subtotal:    ledger.MustAmount(subtotalMinor),
        CGST:        tax.CGST,
        SGST:        tax.SGST,
        Total:       tax.Total,
        PaymentType: ledger.PaymentTypeUPI,
        PTRNumber:   "PTR-881",
        Status:      ledger.StatusPaid,
        CreatedAt:   time.Now().UTC(),
    }
}

func TestBuild_RowShape(t *testing.T) {
    partyID := uuid.New()
    names := map[uuid.UUID]string{partyID: "ISHA PHARMA"}
    tx := sampleTx(t, partyID, 350000)

    from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
    to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
    doc, err := Build([]ledger.Transaction{tx}, names, testOrg, from, to)
    if err != nil {
        t.Fatalf("build: %v", err)
    }
    if len(doc.Header) != len(Columns) {
        t.Fatalf("header width %d", len(doc.Header))
    }
    if len(doc.Rows) != 1 {
        t.Fatalf("expected 1 row, got %d", len(doc.Rows))
    }
    row := doc.Rows[0]
    want := []string{
        "15/08/2026", "ISHA PHARMA", "3500.00", "87.50", "87.50",
        "3675.00", "UPI", "-", "Paid", "-",
    }
    for i := range want {
        if row[i] != want[i] {
            t.Fatalf("column %q: got %q want %q", Columns[i], row[i], want[i])
        }
    }
    // preamble ends with the report window line
    last := doc.Preamble[len(doc.Preamble)-1]
    if last != "Payment Report 01/08/2026 to 31/08/2026" {
        t.Fatalf("preamble window line: %q", last)
    }
    if doc.Preamble[0] != testOrg.Name {
        t.Fatalf("preamble must open with the org name, got %q", doc.Preamble[0])
    }
}

func TestBuild_EmptySet(t *testing.T) {
    _, err := Build(nil, nil, testOrg, time.Now(), time.Now())
    if !errors.Is(err, errs.ErrEmptyReport) {
        t.Fatalf("expected ErrEmptyReport, got %v", err)
    }
}

func TestEncodeCSV_RoundTrip(t *testing.T) {
    partyID := uuid.New()
    names := map[uuid.UUID]string{partyID: "ISHA PHARMA"}
    doc, err := Build([]ledger.Transaction{sampleTx(t, partyID, 100000)}, names, testOrg,
        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
    if err != nil {
        t.Fatalf("build: %v", err)
    }

    var buf bytes.Buffer
    if err := Encode(&buf, FormatCSV, doc); err != nil {
        t.Fatalf("encode: %v", err)
    }
    cr := csv.NewReader(&buf)
    cr.FieldsPerRecord = -1
    records, err := cr.ReadAll()
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    // preamble lines, then header, then one data row
    wantRecords := len(doc.Preamble) + 2
    if len(records) != wantRecords {
        t.Fatalf("expected %d records, got %d", wantRecords, len(records))
    }
    data := records[len(records)-1]
    if data[5] != "1050.00" || data[8] != "Paid" || data[6] != "UPI" {
        t.Fatalf("unexpected data row: %v", data)
    }
}

func TestEncodeXLSXAndPDF_ProduceOutput(t *testing.T) {
    partyID := uuid.New()
    names := map[uuid.UUID]string{partyID: "ISHA PHARMA"}
    doc, err := Build([]ledger.Transaction{sampleTx(t, partyID, 100000)}, names, testOrg,
        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
    if err != nil {
        t.Fatalf("build: %v", err)
    }
    for _, format := range []Format{FormatXLSX, FormatPDF} {
        var buf bytes.Buffer
        if err := Encode(&buf, format, doc); err != nil {
            t.Fatalf("%s encode: %v", format, err)
        }
        if buf.Len() == 0 {
            t.Fatalf("%s encode produced no bytes", format)
        }
    }
}

func TestParseFormat(t *testing.T) {
    if f, err := ParseFormat(""); err != nil || f != FormatCSV {
        t.Fatalf("empty should default to csv: %v %v", f, err)
    }
    if _, err := ParseFormat("doc"); !errors.Is(err, errs.ErrValidation) {
        t.Fatalf("unknown format: expected ErrValidation, got %v", err)
    }
}

func TestFormatMinor(t *testing.T) {
    cases := map[int64]string{
        0:      "0.00",
        5:      "0.05",
        100:    "1.00",
        367500: "3675.00",
        -10550: "-105.50",
    }
    for minor, want := range cases {
        if got := FormatMinor(minor); got != want {
            t.Fatalf("%d: got %q want %q", minor, got, want)
        }
    }
}

func TestFormatContentTypes(t *testing.T) {
    if !strings.HasPrefix(FormatCSV.ContentType(), "text/csv") {
        t.Fatalf("csv content type: %q", FormatCSV.ContentType())
    }
    if FormatPDF.Ext() != ".pdf" || FormatXLSX.Ext() != ".xlsx" {
        t.Fatalf("extensions wrong")
    }
}
