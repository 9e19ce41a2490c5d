package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"medishare/internal/domain"
)

// Postgres code for a unique constraint violation.
const uniqueViolationCode = "23505"

// AccountRepositoryPG implements domain.AccountRepository backed by PostgreSQL.
type AccountRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepositoryPG.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepositoryPG {
	return &AccountRepositoryPG{pool: pool}
}

// Create inserts a new account. The accounts.email unique index is the
// single authority on duplicates; a violation maps to domain.ErrEmailTaken.
func (r *AccountRepositoryPG) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO accounts (id, full_name, email, password_hash, date_of_birth, phone, state)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`, account.ID, account.FullName, account.Email, account.PasswordHash, account.DateOfBirth, account.Phone, account.State)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetByID fetches an account by id.
func (r *AccountRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, full_name, email, password_hash, date_of_birth, phone, state, created_at, updated_at
FROM accounts
WHERE id = $1;
`, id)
	return scanAccount(row)
}

// GetByEmail fetches an account by email. The lookup is case-sensitive,
// matching the stored value exactly.
func (r *AccountRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, full_name, email, password_hash, date_of_birth, phone, state, created_at, updated_at
FROM accounts
WHERE email = $1;
`, email)
	return scanAccount(row)
}

// Delete clears the account reference on attributed donations and removes
// the account row inside one transaction. Either both statements commit or
// neither does.
func (r *AccountRepositoryPG) Delete(ctx context.Context, id string) (int64, error) {
	var anonymized int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE donations SET account_id = NULL WHERE account_id = $1;`, id)
		if err != nil {
			return fmt.Errorf("anonymize donations: %w", err)
		}
		anonymized = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1;`, id)
		if err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return anonymized, nil
}

var _ domain.AccountRepository = (*AccountRepositoryPG)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.DateOfBirth, &a.Phone, &a.State, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}
