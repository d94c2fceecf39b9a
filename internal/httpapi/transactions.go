package httpapi

import (
    "encoding/json"
    "fmt"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/govalues/money"

    "github.com/pharmadesk/pharmapay/internal/errs"
    "github.com/pharmadesk/pharmapay/internal/ledger"
    "github.com/pharmadesk/pharmapay/internal/service/transaction"
)

func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
    if !requireJSON(w, r) {
        return
    }
    var req postTransactionRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        badRequest(w, "invalid JSON body")
        return
    }
    in, err := toInput(req)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    t, err := s.txSvc.Create(r.Context(), in)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    transactionsCreated.Inc()
    toJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
    f, err := parseFilter(r)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    txs, err := s.txSvc.Query(r.Context(), f)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    out := make([]transactionResponse, 0, len(txs))
    for _, t := range txs {
        out = append(out, toTransactionResponse(t))
    }
    toJSON(w, http.StatusOK, out)
}

func (s *Server) putTransaction(w http.ResponseWriter, r *http.Request) {
    if !requireJSON(w, r) {
        return
    }
    id, ok := pathID(w, r)
    if !ok {
        return
    }
    var req postTransactionRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        badRequest(w, "invalid JSON body")
        return
    }
    in, err := toInput(req)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    t, err := s.txSvc.Update(r.Context(), id, in)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    toJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (s *Server) toggleTransaction(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r)
    if !ok {
        return
    }
    t, err := s.txSvc.ToggleStatus(r.Context(), identityFrom(r).Role, id)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    toJSON(w, http.StatusOK, toTransactionResponse(t))
}

// toInput converts the wire request into the service input, parsing dates
// and wrapping the subtotal as an INR amount.
func toInput(req postTransactionRequest) (transaction.Input, error) {
    date, err := time.Parse(dateLayout, req.Date)
    if err != nil {
        return transaction.Input{}, fmt.Errorf("%w: date must be YYYY-MM-DD", errs.ErrValidation)
    }
    if req.SubtotalMinor < 0 {
        return transaction.Input{}, fmt.Errorf("%w: subtotal must not be negative", errs.ErrInvalidAmount)
    }
    subtotal, err := money.NewAmountFromMinorUnits(ledger.Currency, req.SubtotalMinor)
    if err != nil {
        return transaction.Input{}, fmt.Errorf("%w: %v", errs.ErrInvalidAmount, err)
    }
    var paymentDate *time.Time
    if req.PaymentDate != nil {
        pd, err := time.Parse(dateLayout, *req.PaymentDate)
        if err != nil {
            return transaction.Input{}, fmt.Errorf("%w: payment_date must be YYYY-MM-DD", errs.ErrValidation)
        }
        paymentDate = &pd
    }
    return transaction.Input{
        PartyID:      req.PartyID,
        Date:         date,
        Subtotal:     subtotal,
        PaymentType:  req.PaymentType,
        PaymentDate:  paymentDate,
        PTRNumber:    req.PTRNumber,
        ChequeNumber: req.ChequeNumber,
        Notes:        req.Notes,
    }, nil
}

// parseFilter reads the optional party_id, from, to and status query
// parameters into a transaction filter.
func parseFilter(r *http.Request) (ledger.TransactionFilter, error) {
    var f ledger.TransactionFilter
    q := r.URL.Query()
    if v := q.Get("party_id"); v != "" {
        id, err := uuid.Parse(v)
        if err != nil {
            return f, fmt.Errorf("%w: invalid party_id", errs.ErrValidation)
        }
        f.PartyID = &id
    }
    if v := q.Get("from"); v != "" {
        from, err := time.Parse(dateLayout, v)
        if err != nil {
            return f, fmt.Errorf("%w: from must be YYYY-MM-DD", errs.ErrValidation)
        }
        f.From = &from
    }
    if v := q.Get("to"); v != "" {
        to, err := time.Parse(dateLayout, v)
        if err != nil {
            return f, fmt.Errorf("%w: to must be YYYY-MM-DD", errs.ErrValidation)
        }
        f.To = &to
    }
    if v := q.Get("status"); v != "" {
        st := ledger.PaymentStatus(v)
        if st != ledger.StatusPaid && st != ledger.StatusUnpaid {
            return f, fmt.Errorf("%w: status must be Paid or Unpaid", errs.ErrValidation)
        }
        f.Status = &st
    }
    return f, nil
}
