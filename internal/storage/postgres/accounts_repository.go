package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventbook/server/internal/domain/accounts"
)

var _ accounts.Repository = (*AccountsRepository)(nil)

type AccountsRepository struct {
	pool *pgxpool.Pool
}

func NewAccountsRepository(pool *pgxpool.Pool) *AccountsRepository {
	return &AccountsRepository{pool: pool}
}

const uniqueViolation = "23505"

func (r *AccountsRepository) Create(ctx context.Context, account accounts.Account) (accounts.Account, error) {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO accounts (id, email, password_hash, roles, created_at)
VALUES ($1, $2, $3, $4, $5)
`,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Roles,
		account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return accounts.Account{}, accounts.ErrEmailTaken
		}
		return accounts.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

func (r *AccountsRepository) GetByEmail(ctx context.Context, email string) (accounts.Account, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, roles, created_at FROM accounts WHERE email = $1
`, email)
	return scanAccount(row)
}

func (r *AccountsRepository) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, roles, created_at FROM accounts WHERE id = $1
`, id)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (accounts.Account, error) {
	var account accounts.Account
	var createdAt pgtype.Timestamptz
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Roles,
		&createdAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return accounts.Account{}, accounts.ErrNotFound
		}
		return accounts.Account{}, fmt.Errorf("get account: %w", err)
	}
	account.CreatedAt = createdAt.Time
	return account, nil
}
