package repository

import (
	"context"
	"fmt"

	"minibank/internal/models"
)

// TransferRepository - журнал переводов. Только вставка и чтение:
// записи истории никогда не меняются и не удаляются.
type TransferRepository struct {
	db Querier
}

func NewTransferRepository(db Querier) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Add(ctx context.Context, transfer *models.MoneyTransfer) error {
	query := `
		INSERT INTO money_transfers (amount, currency, from_account_id, to_account_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		transfer.Amount,
		transfer.Currency,
		transfer.FromAccountID,
		transfer.ToAccountID,
	).Scan(&transfer.ID, &transfer.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка записи перевода: %w", err)
	}
	return nil
}

func (r *TransferRepository) GetByAccountID(ctx context.Context, accountID int64) ([]models.MoneyTransfer, error) {
	query := `
		SELECT id, amount, currency, from_account_id, to_account_id, created_at
		FROM money_transfers
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории переводов: %w", err)
	}
	defer rows.Close()

	var transfers []models.MoneyTransfer
	for rows.Next() {
		var transfer models.MoneyTransfer
		err := rows.Scan(
			&transfer.ID,
			&transfer.Amount,
			&transfer.Currency,
			&transfer.FromAccountID,
			&transfer.ToAccountID,
			&transfer.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования перевода: %w", err)
		}
		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}
