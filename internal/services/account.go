package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"minibank/internal/cache"
	"minibank/internal/currency"
	"minibank/internal/models"
	"minibank/internal/utils"
	"minibank/internal/worker"
)

// commissionPercent - комиссия за перевод между счетами разных владельцев.
var commissionPercent = decimal.NewFromFloat(0.02)

type AccountService struct {
	store      Store
	uow        UnitOfWork
	converter  *currency.Converter
	history    *TransferHistoryService
	cache      *cache.RedisCache
	workerPool *worker.WorkerPool
}

func NewAccountService(store Store, uow UnitOfWork, converter *currency.Converter, history *TransferHistoryService) *AccountService {
	return &AccountService{
		store:     store,
		uow:       uow,
		converter: converter,
		history:   history,
		cache:     nil,
	}
}

func NewAccountServiceWithCache(store Store, uow UnitOfWork, converter *currency.Converter, history *TransferHistoryService, cache *cache.RedisCache) *AccountService {
	service := NewAccountService(store, uow, converter, history)
	service.cache = cache
	return service
}

// SetWorkerPool подключает пул воркеров для асинхронной инвалидации кеша.
func (s *AccountService) SetWorkerPool(pool *worker.WorkerPool) {
	s.workerPool = pool
	utils.LogSuccess("AccountService", "Worker Pool подключен к сервису счетов")
}

func (s *AccountService) CreateAccount(ctx context.Context, userID int64, currencyCode string, startBalance decimal.Decimal) (*models.Account, error) {
	utils.LogInfo("AccountService", "%s", fmt.Sprintf("Создание счёта для пользователя %d: валюта=%s, баланс=%s",
		userID, currencyCode, startBalance.String()))

	if startBalance.IsNegative() {
		return nil, ErrNegativeStartBalance
	}

	code, err := currency.Normalize(currencyCode)
	if err != nil {
		utils.LogWarning("AccountService", "%s", fmt.Sprintf("Недопустимая валюта при создании счёта: %q", currencyCode))
		return nil, err
	}

	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		utils.LogWarning("AccountService", "%s", fmt.Sprintf("Попытка создать счёт для несуществующего пользователя %d", userID))
		return nil, ErrUserNotFound
	}

	var account *models.Account
	err = s.uow.Do(ctx, func(st Store) error {
		account, err = st.Accounts().Create(ctx, userID, code, startBalance)
		return err
	})
	if err != nil {
		utils.LogError("AccountService", "Ошибка создания счёта", err)
		return nil, err
	}

	s.invalidateCacheAsync(fmt.Sprintf("account-create-%d", account.ID),
		cache.UserAccountsKey(userID))

	utils.LogSuccess("AccountService", "%s", fmt.Sprintf("Счёт %d создан для пользователя %d (баланс: %s %s)",
		account.ID, userID, account.Balance.String(), account.Currency))

	return account, nil
}

// GetAccount - чистое чтение, состояние не меняет.
func (s *AccountService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	if s.cache != nil {
		var account models.Account
		err := s.cache.GetJSON(ctx, cache.AccountKey(id), &account)
		if err == nil {
			utils.LogDebug("Cache", "HIT: счёт %d получен из кеша", id)
			return &account, nil
		}
		if err != redis.Nil {
			utils.LogWarning("Cache", "%s", fmt.Sprintf("Ошибка чтения счёта %d из кеша: %v", id, err))
		}
	}

	account, err := s.store.Accounts().GetByID(ctx, id)
	if err != nil {
		utils.LogWarning("AccountService", "%s", fmt.Sprintf("Счёт %d не найден", id))
		return nil, err
	}

	if s.cache != nil {
		if saveErr := s.cache.SetJSON(ctx, cache.AccountKey(id), account, cache.AccountTTL); saveErr != nil {
			utils.LogWarning("Cache", "%s", fmt.Sprintf("Не удалось сохранить счёт %d в кеш: %v", id, saveErr))
		}
	}

	return account, nil
}

func (s *AccountService) GetUserAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	if s.cache != nil {
		var accounts []models.Account
		err := s.cache.GetJSON(ctx, cache.UserAccountsKey(userID), &accounts)
		if err == nil {
			utils.LogDebug("Cache", "HIT: счета пользователя %d получены из кеша (%d шт.)", userID, len(accounts))
			return accounts, nil
		}
		if err != redis.Nil {
			utils.LogWarning("Cache", "%s", fmt.Sprintf("Ошибка чтения кеша счетов пользователя %d: %v", userID, err))
		}
	}

	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, ErrUserNotFound
	}

	accounts, err := s.store.Accounts().GetByUserID(ctx, userID)
	if err != nil {
		utils.LogError("AccountService", fmt.Sprintf("Ошибка получения счетов пользователя %d", userID), err)
		return nil, err
	}

	if s.cache != nil {
		if saveErr := s.cache.SetJSON(ctx, cache.UserAccountsKey(userID), accounts, cache.UserAccountsTTL); saveErr != nil {
			utils.LogWarning("Cache", "%s", fmt.Sprintf("Не удалось сохранить счета пользователя %d в кеш: %v", userID, saveErr))
		}
	}

	return accounts, nil
}

// UpdateAccount меняет баланс существующего счёта.
// Владелец и валюта после создания неизменяемы.
func (s *AccountService) UpdateAccount(ctx context.Context, account *models.Account) error {
	utils.LogInfo("AccountService", "%s", fmt.Sprintf("Обновление счёта %d", account.ID))

	existing, err := s.store.Accounts().GetByID(ctx, account.ID)
	if err != nil {
		return err
	}

	if account.UserID != existing.UserID {
		return ErrUpdateUserID
	}

	code, err := currency.Normalize(account.Currency)
	if err != nil {
		return err
	}
	if code != existing.Currency {
		return ErrUpdateCurrency
	}

	if account.Balance.IsNegative() {
		return ErrNegativeStartBalance
	}

	existing.Balance = account.Balance
	err = s.uow.Do(ctx, func(st Store) error {
		return st.Accounts().Update(ctx, existing)
	})
	if err != nil {
		utils.LogError("AccountService", fmt.Sprintf("Ошибка обновления счёта %d", account.ID), err)
		return err
	}

	s.invalidateCacheAsync(fmt.Sprintf("account-update-%d", account.ID),
		cache.AccountKey(account.ID), cache.UserAccountsKey(existing.UserID))

	utils.LogSuccess("AccountService", "%s", fmt.Sprintf("Счёт %d обновлён", account.ID))
	return nil
}

// CloseAccount закрывает счёт навсегда: переоткрытие не предусмотрено.
func (s *AccountService) CloseAccount(ctx context.Context, id int64) error {
	utils.LogInfo("AccountService", "%s", fmt.Sprintf("Закрытие счёта %d", id))

	var userID int64
	err := s.uow.Do(ctx, func(st Store) error {
		account, err := st.Accounts().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !account.Balance.IsZero() {
			return ErrCloseWithNonZeroBalance
		}
		if !account.IsOpen {
			return ErrAlreadyClosed
		}

		now := time.Now()
		account.IsOpen = false
		account.ClosedAt = &now
		userID = account.UserID

		return st.Accounts().Update(ctx, account)
	})
	if err != nil {
		utils.LogWarning("AccountService", "%s", fmt.Sprintf("Счёт %d не закрыт: %v", id, err))
		return err
	}

	s.invalidateCacheAsync(fmt.Sprintf("account-close-%d", id),
		cache.AccountKey(id), cache.UserAccountsKey(userID))

	utils.LogSuccess("AccountService", "%s", fmt.Sprintf("Счёт %d успешно закрыт", id))
	return nil
}

// GetCommission считает комиссию за перевод между счетами.
// Переводы между счетами одного владельца бесплатны, иначе 2% от суммы:
// сначала округление до 2 знаков, затем floor до целого. Порядок
// округлений - бизнес-правило, менять его нельзя.
func (s *AccountService) GetCommission(ctx context.Context, amount decimal.Decimal, fromAccountID, toAccountID int64) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Decimal{}, ErrZeroOrNegativeAmount
	}

	fromAccount, err := s.store.Accounts().GetByID(ctx, fromAccountID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	toAccount, err := s.store.Accounts().GetByID(ctx, toAccountID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if !fromAccount.IsOpen || !toAccount.IsOpen {
		return decimal.Decimal{}, ErrCommissionForClosedAccount
	}

	return commissionFor(amount, fromAccount, toAccount), nil
}

func commissionFor(amount decimal.Decimal, from, to *models.Account) decimal.Decimal {
	if from.UserID == to.UserID {
		return decimal.Zero
	}
	return amount.Mul(commissionPercent).Round(2).Floor()
}

// MakeMoneyTransfer переводит amount со счёта fromAccountID на toAccountID.
// Сумма списывается в валюте отправителя, зачисляется в валюте получателя
// за вычетом сконвертированной комиссии. Оба изменения баланса и запись
// в истории фиксируются одной транзакцией.
func (s *AccountService) MakeMoneyTransfer(ctx context.Context, amount decimal.Decimal, fromAccountID, toAccountID int64) (*models.MoneyTransfer, error) {
	utils.LogInfo("AccountService", "%s", fmt.Sprintf("Перевод %s: счёт %d -> счёт %d",
		amount.String(), fromAccountID, toAccountID))

	if fromAccountID == toAccountID {
		return nil, ErrSameAccountTransfer
	}
	if !amount.IsPositive() {
		return nil, ErrZeroOrNegativeAmount
	}

	var transfer *models.MoneyTransfer
	err := s.uow.Do(ctx, func(st Store) error {
		fromAccount, toAccount, err := lockAccountPair(ctx, st.Accounts(), fromAccountID, toAccountID)
		if err != nil {
			return err
		}

		if fromAccount.Balance.LessThan(amount) {
			return ErrNotEnoughBalance
		}
		if !fromAccount.IsOpen || !toAccount.IsOpen {
			return ErrTransferBetweenClosedAccounts
		}

		commission := commissionFor(amount, fromAccount, toAccount)

		convertedAmount, err := s.converter.GetValueInOtherCurrency(ctx, amount, fromAccount.Currency, toAccount.Currency)
		if err != nil {
			return err
		}
		convertedCommission, err := s.converter.GetValueInOtherCurrency(ctx, commission, fromAccount.Currency, toAccount.Currency)
		if err != nil {
			return err
		}

		utils.LogInfo("AccountService", "%s", fmt.Sprintf("Расчёт перевода: %s %s -> %s %s, комиссия %s %s",
			amount.String(), fromAccount.Currency,
			convertedAmount.String(), toAccount.Currency,
			convertedCommission.String(), toAccount.Currency))

		fromAccount.Balance = fromAccount.Balance.Sub(amount)
		toAccount.Balance = toAccount.Balance.Add(convertedAmount.Sub(convertedCommission))

		transfer, err = s.history.AddHistory(ctx, st.Transfers(), amount, fromAccount.Currency, fromAccountID, toAccountID)
		if err != nil {
			return err
		}

		if err := st.Accounts().Update(ctx, fromAccount); err != nil {
			return err
		}
		return st.Accounts().Update(ctx, toAccount)
	})
	if err != nil {
		utils.LogError("AccountService", "Перевод не выполнен", err)
		return nil, err
	}

	s.invalidateCacheAsync(fmt.Sprintf("transfer-%d", transfer.ID),
		cache.AccountKey(fromAccountID), cache.AccountKey(toAccountID))

	utils.LogSuccess("AccountService", "%s", fmt.Sprintf("Перевод %d выполнен: %s со счёта %d на счёт %d",
		transfer.ID, amount.String(), fromAccountID, toAccountID))

	return transfer, nil
}

// lockAccountPair блокирует оба счёта в порядке возрастания id,
// чтобы встречные переводы не взаимоблокировались.
func lockAccountPair(ctx context.Context, accounts AccountRepository, fromID, toID int64) (*models.Account, *models.Account, error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := accounts.GetForUpdate(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := accounts.GetForUpdate(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == fromID {
		return first, second, nil
	}
	return second, first, nil
}

// invalidateCacheAsync сбрасывает ключи кеша через Worker Pool.
// При переполненной очереди или отсутствии пула делает это синхронно.
func (s *AccountService) invalidateCacheAsync(jobID string, keys ...string) {
	if s.cache == nil {
		return
	}

	ctx := context.Background()

	if s.workerPool != nil {
		job := worker.Job{
			ID: "cache-invalidate-" + jobID,
			Task: func() error {
				return s.cache.Delete(ctx, keys...)
			},
		}

		if err := s.workerPool.Submit(job); err != nil {
			utils.LogWarning("AccountService", "Worker Pool переполнен, инвалидация кеша выполняется синхронно")
			_ = s.cache.Delete(ctx, keys...)
		}
		return
	}

	_ = s.cache.Delete(ctx, keys...)
	utils.LogDebug("Cache", "Инвалидированы ключи: %v", keys)
}
