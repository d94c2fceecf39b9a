// Package postgres provides a pgx-backed storage implementation that
// satisfies the repository and writer interfaces used by the HTTP API and
// services.
//
// It is intentionally small and explicit. Migrations that create the
// expected schema live under db/migrations. This package focuses on mapping
// between the domain entities and SQL rows.
package postgres

import (
    "context"
    "errors"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgconn"
    "github.com/jackc/pgx/v5/pgxpool"

    "github.com/pharmadesk/pharmapay/internal/errs"
    "github.com/pharmadesk/pharmapay/internal/ledger"
)

// Store holds a pgx connection pool and implements the read/write
// interfaces used across the service layer. All methods are safe for
// concurrent use.
type Store struct {
    pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
    cfg, err := pgxpool.ParseConfig(dsn)
    if err != nil {
        return nil, err
    }
    pool, err := pgxpool.NewWithConfig(ctx, cfg)
    if err != nil {
        return nil, err
    }
    if err := pool.Ping(ctx); err != nil {
        pool.Close()
        return nil, err
    }
    return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
    if s.pool != nil {
        s.pool.Close()
    }
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

const (
    pgUniqueViolation     = "23505"
    pgForeignKeyViolation = "23503"
)

// mapPgErr translates constraint violations into domain sentinels. Name
// uniqueness and the party->transaction reference are both enforced in the
// schema, so the store surfaces them as ErrConflict and ErrReferencedParty.
func mapPgErr(err error) error {
    var pgErr *pgconn.PgError
    if errors.As(err, &pgErr) {
        switch pgErr.Code {
        case pgUniqueViolation:
            return errs.ErrConflict
        case pgForeignKeyViolation:
            return errs.ErrReferencedParty
        }
    }
    return err
}

// --- Party reads ---

// ListParties returns all parties ordered by name.
func (s *Store) ListParties(ctx context.Context) ([]ledger.Party, error) {
    rows, err := s.pool.Query(ctx, `select id, name from parties order by lower(name)`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]ledger.Party, 0)
    for rows.Next() {
        var p ledger.Party
        if err := rows.Scan(&p.ID, &p.Name); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// GetParty fetches a single party by ID.
func (s *Store) GetParty(ctx context.Context, id uuid.UUID) (ledger.Party, error) {
    var p ledger.Party
    err := s.pool.QueryRow(ctx, `select id, name from parties where id = $1`, id).Scan(&p.ID, &p.Name)
    if errors.Is(err, pgx.ErrNoRows) {
        return ledger.Party{}, errs.ErrPartyNotFound
    }
    return p, err
}

// FindPartyByName looks up a party by case-insensitive name.
func (s *Store) FindPartyByName(ctx context.Context, name string) (ledger.Party, error) {
    var p ledger.Party
    err := s.pool.QueryRow(ctx, `select id, name from parties where lower(name) = lower($1)`,
        strings.TrimSpace(name)).Scan(&p.ID, &p.Name)
    if errors.Is(err, pgx.ErrNoRows) {
        return ledger.Party{}, errs.ErrPartyNotFound
    }
    return p, err
}

// --- Party writes ---

func (s *Store) CreateParty(ctx context.Context, p ledger.Party) (ledger.Party, error) {
    _, err := s.pool.Exec(ctx, `insert into parties (id, name) values ($1, $2)`, p.ID, p.Name)
    if err != nil {
        return ledger.Party{}, mapPgErr(err)
    }
    return p, nil
}

func (s *Store) UpdateParty(ctx context.Context, p ledger.Party) (ledger.Party, error) {
    tag, err := s.pool.Exec(ctx, `update parties set name = $2 where id = $1`, p.ID, p.Name)
    if err != nil {
        return ledger.Party{}, mapPgErr(err)
    }
    if tag.RowsAffected() == 0 {
        return ledger.Party{}, errs.ErrPartyNotFound
    }
    return p, nil
}

func (s *Store) DeleteParty(ctx context.Context, id uuid.UUID) error {
    tag, err := s.pool.Exec(ctx, `delete from parties where id = $1`, id)
    if err != nil {
        return mapPgErr(err)
    }
    if tag.RowsAffected() == 0 {
        return errs.ErrPartyNotFound
    }
    return nil
}

// --- Transaction reads ---

const txColumns = `id, party_id, date, subtotal_minor, cgst_minor, sgst_minor, total_minor,
    payment_type, payment_date, ptr_number, cheque_number, status, notes, created_at`

// QueryTransactions returns the transactions matching the filter, newest
// first by invoice date then creation time.
func (s *Store) QueryTransactions(ctx context.Context, f ledger.TransactionFilter) ([]ledger.Transaction, error) {
    q := `select ` + txColumns + ` from transactions where 1=1`
    args := make([]any, 0, 4)
    if f.PartyID != nil {
        args = append(args, *f.PartyID)
        q += ` and party_id = $` + itoa(len(args))
    }
    if f.From != nil {
        args = append(args, *f.From)
        q += ` and date >= $` + itoa(len(args))
    }
    if f.To != nil {
        args = append(args, *f.To)
        q += ` and date <= $` + itoa(len(args))
    }
    if f.Status != nil {
        args = append(args, string(*f.Status))
        q += ` and status = $` + itoa(len(args))
    }
    q += ` order by date desc, created_at desc, id`
    rows, err := s.pool.Query(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]ledger.Transaction, 0)
    for rows.Next() {
        t, err := scanTransaction(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    return out, rows.Err()
}

// GetTransaction fetches a single transaction by ID.
func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (ledger.Transaction, error) {
    row := s.pool.QueryRow(ctx, `select `+txColumns+` from transactions where id = $1`, id)
    t, err := scanTransaction(row)
    if errors.Is(err, pgx.ErrNoRows) {
        return ledger.Transaction{}, errs.ErrTransactionNotFound
    }
    return t, err
}

// --- Transaction writes ---

func (s *Store) InsertTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
    _, err := s.pool.Exec(ctx, `
        insert into transactions
            (id, party_id, date, subtotal_minor, cgst_minor, sgst_minor, total_minor,
             payment_type, payment_date, ptr_number, cheque_number, status, notes, created_at)
        values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
    `, t.ID, t.PartyID, t.Date,
        ledger.Minor(t.Subtotal), ledger.Minor(t.CGST), ledger.Minor(t.SGST), ledger.Minor(t.Total),
        string(t.PaymentType), t.PaymentDate, t.PTRNumber, t.ChequeNumber, string(t.Status), t.Notes, t.CreatedAt)
    if err != nil {
        return ledger.Transaction{}, mapPgErr(err)
    }
    return t, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
    tag, err := s.pool.Exec(ctx, `
        update transactions set
            party_id = $2, date = $3, subtotal_minor = $4, cgst_minor = $5, sgst_minor = $6,
            total_minor = $7, payment_type = $8, payment_date = $9, ptr_number = $10,
            cheque_number = $11, status = $12, notes = $13
        where id = $1
    `, t.ID, t.PartyID, t.Date,
        ledger.Minor(t.Subtotal), ledger.Minor(t.CGST), ledger.Minor(t.SGST), ledger.Minor(t.Total),
        string(t.PaymentType), t.PaymentDate, t.PTRNumber, t.ChequeNumber, string(t.Status), t.Notes)
    if err != nil {
        return ledger.Transaction{}, mapPgErr(err)
    }
    if tag.RowsAffected() == 0 {
        return ledger.Transaction{}, errs.ErrTransactionNotFound
    }
    return t, nil
}

type rowScanner interface {
    Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (ledger.Transaction, error) {
    var (
        t                           ledger.Transaction
        subtotal, cgst, sgst, total int64
        paymentType, status         string
        paymentDate                 *time.Time
    )
    err := row.Scan(&t.ID, &t.PartyID, &t.Date, &subtotal, &cgst, &sgst, &total,
        &paymentType, &paymentDate, &t.PTRNumber, &t.ChequeNumber, &status, &t.Notes, &t.CreatedAt)
    if err != nil {
        return ledger.Transaction{}, err
    }
    t.Subtotal = ledger.MustAmount(subtotal)
    t.CGST = ledger.MustAmount(cgst)
    t.SGST = ledger.MustAmount(sgst)
    t.Total = ledger.MustAmount(total)
    t.PaymentType = ledger.PaymentType(paymentType)
    t.Status = ledger.PaymentStatus(status)
    t.PaymentDate = paymentDate
    return t, nil
}

func itoa(n int) string {
    if n == 0 {
        return "0"
    }
    var buf [8]byte
    i := len(buf)
    for n > 0 {
        i--
        buf[i] = byte('0' + n%10)
        n /= 10
    }
    return string(buf[i:])
}
