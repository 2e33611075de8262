package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"minibank/internal/currency"
	"minibank/internal/models"
	"minibank/internal/utils"
)

// TransferHistoryService ведёт неизменяемый журнал переводов.
// Записи только добавляются, обновления и удаления не предусмотрены.
type TransferHistoryService struct {
	store Store
}

func NewTransferHistoryService(store Store) *TransferHistoryService {
	return &TransferHistoryService{store: store}
}

// AddHistory проверяет и записывает завершённый перевод.
// Репозиторий передаёт вызывающая сторона: запись попадает в её
// транзакцию, сервис сам ничего не фиксирует.
func (s *TransferHistoryService) AddHistory(ctx context.Context, transfers TransferRepository, amount decimal.Decimal, currencyCode string, fromAccountID, toAccountID int64) (*models.MoneyTransfer, error) {
	if !amount.IsPositive() {
		return nil, ErrZeroOrNegativeAmount
	}

	code, err := currency.Normalize(currencyCode)
	if err != nil {
		return nil, err
	}

	transfer := &models.MoneyTransfer{
		Amount:        amount,
		Currency:      code,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
	}

	if err := transfers.Add(ctx, transfer); err != nil {
		utils.LogError("TransferHistory", "Ошибка записи в историю переводов", err)
		return nil, err
	}

	utils.LogDebug("TransferHistory", "Запись %d добавлена: %s %s, счёт %d -> счёт %d",
		transfer.ID, amount.String(), code, fromAccountID, toAccountID)

	return transfer, nil
}

// GetAccountHistory возвращает все переводы, в которых участвовал счёт.
func (s *TransferHistoryService) GetAccountHistory(ctx context.Context, accountID int64) ([]models.MoneyTransfer, error) {
	if _, err := s.store.Accounts().GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	transfers, err := s.store.Transfers().GetByAccountID(ctx, accountID)
	if err != nil {
		utils.LogError("TransferHistory", fmt.Sprintf("Ошибка получения истории счёта %d", accountID), err)
		return nil, err
	}

	return transfers, nil
}
