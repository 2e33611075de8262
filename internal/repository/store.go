// Package repository - реализация хранилища на PostgreSQL (pgx).
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"minibank/internal/services"
)

// Querier - общий знаменатель *pgxpool.Pool и pgx.Tx: одни и те же
// репозитории работают и вне транзакции, и внутри unit of work.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	accounts  *AccountRepository
	users     *UserRepository
	transfers *TransferRepository
}

func NewStore(db Querier) *Store {
	return &Store{
		accounts:  NewAccountRepository(db),
		users:     NewUserRepository(db),
		transfers: NewTransferRepository(db),
	}
}

func (s *Store) Accounts() services.AccountRepository   { return s.accounts }
func (s *Store) Users() services.UserRepository         { return s.users }
func (s *Store) Transfers() services.TransferRepository { return s.transfers }
