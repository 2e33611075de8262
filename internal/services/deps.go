package services

import (
	"context"

	"github.com/shopspring/decimal"

	"minibank/internal/models"
)

// Контракты хранилища. Реализации живут в internal/repository,
// тесты подставляют in-memory двойники.

type AccountRepository interface {
	Create(ctx context.Context, userID int64, currencyCode string, startBalance decimal.Decimal) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	// GetForUpdate читает счёт с блокировкой строки до конца транзакции.
	GetForUpdate(ctx context.Context, id int64) (*models.Account, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	HasAccountsForUser(ctx context.Context, userID int64) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

type TransferRepository interface {
	Add(ctx context.Context, transfer *models.MoneyTransfer) error
	GetByAccountID(ctx context.Context, accountID int64) ([]models.MoneyTransfer, error)
}

// Store - набор репозиториев, привязанных к одному источнику:
// пулу соединений для чтения или открытой транзакции внутри UnitOfWork.
type Store interface {
	Accounts() AccountRepository
	Users() UserRepository
	Transfers() TransferRepository
}

// UnitOfWork выполняет fn в одной транзакции: либо фиксируются все
// изменения репозиториев, либо ни одно из них.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(s Store) error) error
}
