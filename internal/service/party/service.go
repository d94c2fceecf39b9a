// Package party implements the party registry rules: non-empty names unique
// case-insensitively, and a referential-integrity guard on delete.
package party

import (
    "context"
    "errors"
    "fmt"
    "strings"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/errs"
    "github.com/pharmadesk/pharmapay/internal/ledger"
    "github.com/pharmadesk/pharmapay/internal/policy"
)

type Repo interface {
    ListParties(ctx context.Context) ([]ledger.Party, error)
    GetParty(ctx context.Context, id uuid.UUID) (ledger.Party, error)
    FindPartyByName(ctx context.Context, name string) (ledger.Party, error)
}

type Writer interface {
    CreateParty(ctx context.Context, p ledger.Party) (ledger.Party, error)
    UpdateParty(ctx context.Context, p ledger.Party) (ledger.Party, error)
    DeleteParty(ctx context.Context, id uuid.UUID) error
}

type Service interface {
    Create(ctx context.Context, role policy.Role, name string) (ledger.Party, error)
    Rename(ctx context.Context, role policy.Role, id uuid.UUID, name string) (ledger.Party, error)
    Delete(ctx context.Context, role policy.Role, id uuid.UUID) error
    List(ctx context.Context) ([]ledger.Party, error)
    Get(ctx context.Context, id uuid.UUID) (ledger.Party, error)
}

type service struct {
    repo   Repo
    writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) Create(ctx context.Context, role policy.Role, name string) (ledger.Party, error) {
    if !policy.ForRole(role).CanManageParties {
        return ledger.Party{}, errs.ErrForbidden
    }
    name = strings.TrimSpace(name)
    if name == "" {
        return ledger.Party{}, fmt.Errorf("%w: name is required", errs.ErrValidation)
    }
    if _, err := s.repo.FindPartyByName(ctx, name); err == nil {
        return ledger.Party{}, errs.ErrConflict
    } else if !errors.Is(err, errs.ErrPartyNotFound) {
        return ledger.Party{}, err
    }
    return s.writer.CreateParty(ctx, ledger.Party{ID: uuid.New(), Name: name})
}

func (s *service) Rename(ctx context.Context, role policy.Role, id uuid.UUID, name string) (ledger.Party, error) {
    if !policy.ForRole(role).CanManageParties {
        return ledger.Party{}, errs.ErrForbidden
    }
    name = strings.TrimSpace(name)
    if name == "" {
        return ledger.Party{}, fmt.Errorf("%w: name is required", errs.ErrValidation)
    }
    current, err := s.repo.GetParty(ctx, id)
    if err != nil {
        return ledger.Party{}, err
    }
    if existing, err := s.repo.FindPartyByName(ctx, name); err == nil && existing.ID != current.ID {
        return ledger.Party{}, errs.ErrConflict
    } else if err != nil && !errors.Is(err, errs.ErrPartyNotFound) {
        return ledger.Party{}, err
    }
    current.Name = name
    return s.writer.UpdateParty(ctx, current)
}

// Delete removes a party. The storage layer performs the referential check
// and the delete under its own atomicity guarantee and returns
// ErrReferencedParty when transactions still reference the party.
func (s *service) Delete(ctx context.Context, role policy.Role, id uuid.UUID) error {
    if !policy.ForRole(role).CanDeleteParty {
        return errs.ErrForbidden
    }
    return s.writer.DeleteParty(ctx, id)
}

func (s *service) List(ctx context.Context) ([]ledger.Party, error) {
    return s.repo.ListParties(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ledger.Party, error) {
    return s.repo.GetParty(ctx, id)
}
