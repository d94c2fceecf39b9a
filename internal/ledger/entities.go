package ledger

import (
    "time"

    "github.com/google/uuid"
    "github.com/govalues/money"
)

// Currency is the single currency the ledger operates in. All monetary
// amounts are INR held to two decimal places (paise as minor units).
const Currency = "INR"

// PaymentType enumerates how a transaction was (or will be) settled.
type PaymentType string

const (
    PaymentTypeCash   PaymentType = "Cash"
    PaymentTypeUPI    PaymentType = "UPI"
    PaymentTypeBank   PaymentType = "Bank"
    PaymentTypeCheque PaymentType = "Cheque"
)

// Valid reports whether p is one of the known payment types.
func (p PaymentType) Valid() bool {
    switch p {
    case PaymentTypeCash, PaymentTypeUPI, PaymentTypeBank, PaymentTypeCheque:
        return true
    }
    return false
}

// PaymentStatus is the two-state payment lifecycle of a transaction.
type PaymentStatus string

const (
    // StatusUnpaid is the initial state of every transaction.
    StatusUnpaid PaymentStatus = "Unpaid"
    // StatusPaid marks a settled transaction.
    StatusPaid PaymentStatus = "Paid"
)

// Toggle returns the opposite status. Both directions are always legal.
func (s PaymentStatus) Toggle() PaymentStatus {
    if s == StatusPaid {
        return StatusUnpaid
    }
    return StatusPaid
}

// Party is a customer entity transactions are billed against.
type Party struct {
    ID uuid.UUID
    // Name is non-empty and unique among parties, case-insensitively.
    Name string
}

// Transaction is a single invoice record in the ledger.
type Transaction struct {
    ID      uuid.UUID
    PartyID uuid.UUID
    // Date is the invoice date, independent of CreatedAt. All financial
    // aggregation windows use Date.
    Date time.Time
    // Subtotal is the only user-entered monetary field; the GST fields and
    // Total are derived from it and never edited independently.
    Subtotal    money.Amount
    CGST        money.Amount
    SGST        money.Amount
    Total       money.Amount
    PaymentType PaymentType
    // PaymentDate is meaningful once the transaction is Paid.
    PaymentDate *time.Time
    // PTRNumber is populated only when PaymentType is UPI.
    PTRNumber string
    // ChequeNumber is populated only when PaymentType is Cheque.
    ChequeNumber string
    Status PaymentStatus
    Notes  string
    // CreatedAt orders "recent transactions" views only; it never feeds
    // financial aggregation.
    CreatedAt time.Time
}

// MustAmount builds an INR amount from paise. The constructor only fails on
// unknown currency codes, which cannot happen for the fixed INR code.
func MustAmount(minor int64) money.Amount {
    a, _ := money.NewAmountFromMinorUnits(Currency, minor)
    return a
}

// Minor returns the paise value of an amount.
func Minor(a money.Amount) int64 {
    units, _ := a.MinorUnits()
    return units
}
