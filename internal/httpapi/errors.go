package httpapi

import (
    "errors"
    "net/http"

    "github.com/pharmadesk/pharmapay/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
    Error string `json:"error"`
    Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
    toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }

// writeDomainErr maps sentinel errors to HTTP status plus a stable machine
// code so the UI can render a specific message per failure kind.
func writeDomainErr(w http.ResponseWriter, err error) {
    switch {
    case errors.Is(err, errs.ErrPartyNotFound):
        writeErr(w, http.StatusNotFound, err.Error(), "party_not_found")
    case errors.Is(err, errs.ErrTransactionNotFound):
        writeErr(w, http.StatusNotFound, err.Error(), "transaction_not_found")
    case errors.Is(err, errs.ErrNotFound):
        writeErr(w, http.StatusNotFound, "not_found", "not_found")
    case errors.Is(err, errs.ErrForbidden):
        writeErr(w, http.StatusForbidden, "forbidden", "forbidden")
    case errors.Is(err, errs.ErrConflict):
        writeErr(w, http.StatusConflict, "a party with this name already exists", "conflict")
    case errors.Is(err, errs.ErrReferencedParty):
        writeErr(w, http.StatusConflict, "cannot delete party with existing transactions", "party_has_transactions")
    case errors.Is(err, errs.ErrInvalidAmount):
        writeErr(w, http.StatusUnprocessableEntity, err.Error(), "invalid_amount")
    case errors.Is(err, errs.ErrInvalidWindow):
        writeErr(w, http.StatusUnprocessableEntity, err.Error(), "invalid_window")
    case errors.Is(err, errs.ErrEmptyReport):
        writeErr(w, http.StatusNotFound, "no transactions found for the selected criteria", "empty_result_set")
    case errors.Is(err, errs.ErrValidation):
        writeErr(w, http.StatusUnprocessableEntity, err.Error(), "validation_error")
    default:
        writeErr(w, http.StatusInternalServerError, "internal error", "")
    }
}
