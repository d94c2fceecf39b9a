// Package transaction implements the ledger rules: tax derivation from the
// subtotal, payment-method field cross-constraints, and the two-state
// payment lifecycle.
package transaction

import (
    "context"
    "fmt"
    "time"

    "github.com/google/uuid"
    "github.com/govalues/money"

    "github.com/pharmadesk/pharmapay/internal/errs"
    "github.com/pharmadesk/pharmapay/internal/ledger"
    "github.com/pharmadesk/pharmapay/internal/policy"
)

// PartyRepo is the registry collaborator used to verify party references.
type PartyRepo interface {
    GetParty(ctx context.Context, id uuid.UUID) (ledger.Party, error)
}

// Repo defines read operations needed by the service.
type Repo interface {
    QueryTransactions(ctx context.Context, f ledger.TransactionFilter) ([]ledger.Transaction, error)
    GetTransaction(ctx context.Context, id uuid.UUID) (ledger.Transaction, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
    InsertTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error)
    UpdateTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error)
}

// Input carries the editable fields of a transaction. Create and Update
// take the same shape; Update is a full replace of these fields.
type Input struct {
    PartyID      uuid.UUID
    Date         time.Time
    Subtotal     money.Amount
    PaymentType  ledger.PaymentType
    PaymentDate  *time.Time
    PTRNumber    string
    ChequeNumber string
    Notes        string
}

type Service interface {
    Create(ctx context.Context, in Input) (ledger.Transaction, error)
    Update(ctx context.Context, id uuid.UUID, in Input) (ledger.Transaction, error)
    ToggleStatus(ctx context.Context, role policy.Role, id uuid.UUID) (ledger.Transaction, error)
    Query(ctx context.Context, f ledger.TransactionFilter) ([]ledger.Transaction, error)
    Get(ctx context.Context, id uuid.UUID) (ledger.Transaction, error)
}

type service struct {
    repo    Repo
    writer  Writer
    parties PartyRepo
    now     func() time.Time
}

func New(repo Repo, writer Writer, parties PartyRepo) Service {
    return &service{repo: repo, writer: writer, parties: parties, now: time.Now}
}

// validate checks the cross-field constraints shared by Create and Update
// and verifies the party reference at write time.
func (s *service) validate(ctx context.Context, in Input) error {
    if in.PartyID == uuid.Nil {
        return fmt.Errorf("%w: party_id is required", errs.ErrValidation)
    }
    if in.Date.IsZero() {
        return fmt.Errorf("%w: date is required", errs.ErrValidation)
    }
    if !in.PaymentType.Valid() {
        return fmt.Errorf("%w: unknown payment type %q", errs.ErrValidation, in.PaymentType)
    }
    if in.PTRNumber != "" && in.PaymentType != ledger.PaymentTypeUPI {
        return fmt.Errorf("%w: ptr_number is only valid for UPI payments", errs.ErrValidation)
    }
    if in.ChequeNumber != "" && in.PaymentType != ledger.PaymentTypeCheque {
        return fmt.Errorf("%w: cheque_number is only valid for cheque payments", errs.ErrValidation)
    }
    if _, err := s.parties.GetParty(ctx, in.PartyID); err != nil {
        return err
    }
    return nil
}

// Create validates the input, derives the tax fields and persists a new
// transaction in the Unpaid state.
func (s *service) Create(ctx context.Context, in Input) (ledger.Transaction, error) {
    if err := s.validate(ctx, in); err != nil {
        return ledger.Transaction{}, err
    }
    tax, err := ledger.ComputeTax(in.Subtotal)
    if err != nil {
        return ledger.Transaction{}, err
    }
    t := ledger.Transaction{
        ID:           uuid.New(),
        PartyID:      in.PartyID,
        Date:         in.Date,
        Subtotal:     in.Subtotal,
        CGST:         tax.CGST,
        SGST:         tax.SGST,
        Total:        tax.Total,
        PaymentType:  in.PaymentType,
        PaymentDate:  in.PaymentDate,
        PTRNumber:    in.PTRNumber,
        ChequeNumber: in.ChequeNumber,
        Status:       ledger.StatusUnpaid,
        Notes:        in.Notes,
        CreatedAt:    s.now().UTC(),
    }
    return s.writer.InsertTransaction(ctx, t)
}

// Update re-validates and re-derives the tax fields from the new subtotal.
// Status, ID and CreatedAt are preserved.
func (s *service) Update(ctx context.Context, id uuid.UUID, in Input) (ledger.Transaction, error) {
    current, err := s.repo.GetTransaction(ctx, id)
    if err != nil {
        return ledger.Transaction{}, err
    }
    if err := s.validate(ctx, in); err != nil {
        return ledger.Transaction{}, err
    }
    tax, err := ledger.ComputeTax(in.Subtotal)
    if err != nil {
        return ledger.Transaction{}, err
    }
    current.PartyID = in.PartyID
    current.Date = in.Date
    current.Subtotal = in.Subtotal
    current.CGST = tax.CGST
    current.SGST = tax.SGST
    current.Total = tax.Total
    current.PaymentType = in.PaymentType
    current.PaymentDate = in.PaymentDate
    current.PTRNumber = in.PTRNumber
    current.ChequeNumber = in.ChequeNumber
    current.Notes = in.Notes
    return s.writer.UpdateTransaction(ctx, current)
}

// ToggleStatus flips Unpaid<->Paid. Each call flips; callers read the
// current status first to avoid double-toggle races. Concurrent toggles are
// last-write-wins, a documented limitation of the design.
func (s *service) ToggleStatus(ctx context.Context, role policy.Role, id uuid.UUID) (ledger.Transaction, error) {
    if !policy.ForRole(role).CanToggleStatus {
        return ledger.Transaction{}, errs.ErrForbidden
    }
    current, err := s.repo.GetTransaction(ctx, id)
    if err != nil {
        return ledger.Transaction{}, err
    }
    current.Status = current.Status.Toggle()
    return s.writer.UpdateTransaction(ctx, current)
}

func (s *service) Query(ctx context.Context, f ledger.TransactionFilter) ([]ledger.Transaction, error) {
    return s.repo.QueryTransactions(ctx, f)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ledger.Transaction, error) {
    return s.repo.GetTransaction(ctx, id)
}
