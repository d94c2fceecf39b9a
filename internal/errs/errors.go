package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
    ErrNotFound  = errors.New("not_found")
    ErrForbidden = errors.New("forbidden")
    ErrConflict  = errors.New("conflict")
    // ErrValidation is used for bad or missing input (HTTP 422)
    ErrValidation = errors.New("validation_error")
    // ErrInvalidAmount indicates a negative monetary input
    ErrInvalidAmount = errors.New("invalid_amount")
    // ErrPartyNotFound indicates a referenced party does not exist
    ErrPartyNotFound = errors.New("party_not_found")
    // ErrTransactionNotFound indicates the requested transaction does not exist
    ErrTransactionNotFound = errors.New("transaction_not_found")
    // ErrReferencedParty blocks party deletion while transactions reference it
    ErrReferencedParty = errors.New("party_has_transactions")
    // ErrInvalidWindow indicates a non-positive month count for trend queries
    ErrInvalidWindow = errors.New("invalid_window")
    // ErrEmptyReport signals an export whose filtered slice has zero rows
    ErrEmptyReport = errors.New("empty_result_set")
)
