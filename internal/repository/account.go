package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"minibank/internal/models"
	"minibank/internal/services"
)

type AccountRepository struct {
	db Querier
}

func NewAccountRepository(db Querier) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = "id, user_id, balance, currency, is_open, opened_at, closed_at"

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Balance,
		&account.Currency,
		&account.IsOpen,
		&account.OpenedAt,
		&account.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) Create(ctx context.Context, userID int64, currencyCode string, startBalance decimal.Decimal) (*models.Account, error) {
	query := `
		INSERT INTO accounts (user_id, balance, currency, is_open, opened_at)
		VALUES ($1, $2, $3, TRUE, NOW())
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRow(ctx, query, userID, startBalance, currencyCode))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания счёта: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrAccountNotFound
		}
		return nil, fmt.Errorf("ошибка получения счёта: %w", err)
	}
	return account, nil
}

// GetForUpdate блокирует строку счёта до конца текущей транзакции.
func (r *AccountRepository) GetForUpdate(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrAccountNotFound
		}
		return nil, fmt.Errorf("ошибка блокировки счёта: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY opened_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка счетов: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования счёта: %w", err)
		}
		accounts = append(accounts, *account)
	}

	return accounts, rows.Err()
}

// Update записывает изменяемые поля счёта. Владелец и валюта
// намеренно не входят в UPDATE.
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET balance = $1, is_open = $2, closed_at = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(ctx, query, account.Balance, account.IsOpen, account.ClosedAt, account.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления счёта: %w", err)
	}
	if result.RowsAffected() == 0 {
		return services.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) HasAccountsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM accounts WHERE user_id = $1)", userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки счетов пользователя: %w", err)
	}
	return exists, nil
}
