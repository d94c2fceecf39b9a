package ledger

import (
    "github.com/govalues/money"

    "github.com/pharmadesk/pharmapay/internal/errs"
)

// GST rate applied twice per invoice: 2.5% central + 2.5% state.
const gstRatePerMille = 25

// TaxBreakdown carries the derived monetary fields of a transaction.
type TaxBreakdown struct {
    CGST  money.Amount
    SGST  money.Amount
    Total money.Amount
}

// ComputeTax derives CGST, SGST and the grand total from a subtotal.
// Each GST component is rounded to two decimals independently before the
// parts are summed, so Total can differ by a paisa from an unrounded
// computation. That order is deliberate and must not change: exports and
// re-aggregations depend on reproducing the same figures.
func ComputeTax(subtotal money.Amount) (TaxBreakdown, error) {
    minor := Minor(subtotal)
    if minor < 0 {
        return TaxBreakdown{}, errs.ErrInvalidAmount
    }
    gst := roundHalfUpPerMille(minor, gstRatePerMille)
    return TaxBreakdown{
        CGST:  MustAmount(gst),
        SGST:  MustAmount(gst),
        Total: MustAmount(minor + gst + gst),
    }, nil
}

// roundHalfUpPerMille computes minor*rate/1000 rounded half-up, in integer
// arithmetic so results are exact for any representable amount.
func roundHalfUpPerMille(minor, rate int64) int64 {
    return (minor*rate + 500) / 1000
}
