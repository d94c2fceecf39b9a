package ledger

import (
    "errors"
    "testing"

    "github.com/pharmadesk/pharmapay/internal/errs"
)

func TestComputeTax_Scenarios(t *testing.T) {
    cases := []struct {
        name          string
        subtotalMinor int64
        cgstMinor     int64
        totalMinor    int64
    }{
        {"thousand", 100000, 2500, 105000},
        {"zero", 0, 0, 0},
        {"small", 100, 3, 106},          // 1.00 -> 0.025 rounds up to 0.03
        {"rounds down", 140, 4, 148},    // 1.40 -> 0.035 rounds to 0.04
        {"one paisa", 1, 0, 1},          // 0.01 -> 0.00025 rounds to 0
        {"large", 21000000, 525000, 22050000},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            b, err := ComputeTax(MustAmount(tc.subtotalMinor))
            if err != nil {
                t.Fatalf("unexpected error: %v", err)
            }
            if got := Minor(b.CGST); got != tc.cgstMinor {
                t.Fatalf("cgst: got %d want %d", got, tc.cgstMinor)
            }
            if Minor(b.CGST) != Minor(b.SGST) {
                t.Fatalf("cgst %d != sgst %d", Minor(b.CGST), Minor(b.SGST))
            }
            if got := Minor(b.Total); got != tc.totalMinor {
                t.Fatalf("total: got %d want %d", got, tc.totalMinor)
            }
        })
    }
}

func TestComputeTax_RoundThenSum(t *testing.T) {
    // Total must equal subtotal plus the two independently rounded parts.
    for _, minor := range []int64{1, 7, 99, 101, 12345, 99999, 100001} {
        b, err := ComputeTax(MustAmount(minor))
        if err != nil {
            t.Fatalf("subtotal %d: %v", minor, err)
        }
        want := minor + Minor(b.CGST) + Minor(b.SGST)
        if got := Minor(b.Total); got != want {
            t.Fatalf("subtotal %d: total %d, want %d", minor, got, want)
        }
    }
}

func TestComputeTax_NegativeRejected(t *testing.T) {
    _, err := ComputeTax(MustAmount(-1))
    if !errors.Is(err, errs.ErrInvalidAmount) {
        t.Fatalf("expected ErrInvalidAmount, got %v", err)
    }
}

func TestPaymentStatus_Toggle(t *testing.T) {
    if StatusUnpaid.Toggle() != StatusPaid {
        t.Fatal("unpaid should toggle to paid")
    }
    if StatusPaid.Toggle() != StatusUnpaid {
        t.Fatal("paid should toggle to unpaid")
    }
}

func TestPaymentType_Valid(t *testing.T) {
    for _, p := range []PaymentType{PaymentTypeCash, PaymentTypeUPI, PaymentTypeBank, PaymentTypeCheque} {
        if !p.Valid() {
            t.Fatalf("%s should be valid", p)
        }
    }
    if PaymentType("Card").Valid() {
        t.Fatal("unknown type should be invalid")
    }
}
