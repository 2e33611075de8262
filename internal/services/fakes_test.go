package services

// In-memory двойники хранилища для тестов сервисов.
// fakeUnitOfWork копирует состояние перед колбэком и применяет его
// только при успехе - имитация атомарного коммита.

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"minibank/internal/models"
)

type fakeAccountRepo struct {
	accounts map[int64]models.Account
	nextID   int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[int64]models.Account), nextID: 1}
}

func (r *fakeAccountRepo) Create(_ context.Context, userID int64, currencyCode string, startBalance decimal.Decimal) (*models.Account, error) {
	account := models.Account{
		ID:       r.nextID,
		UserID:   userID,
		Balance:  startBalance,
		Currency: currencyCode,
		IsOpen:   true,
		OpenedAt: time.Now(),
	}
	r.accounts[account.ID] = account
	r.nextID++

	copied := account
	return &copied, nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*models.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	copied := account
	return &copied, nil
}

func (r *fakeAccountRepo) GetForUpdate(ctx context.Context, id int64) (*models.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) GetByUserID(_ context.Context, userID int64) ([]models.Account, error) {
	var accounts []models.Account
	for _, account := range r.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *models.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return ErrAccountNotFound
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) HasAccountsForUser(_ context.Context, userID int64) (bool, error) {
	for _, account := range r.accounts {
		if account.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	users  map[int64]models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.users[user.ID] = *user
	r.nextID++
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeTransferRepo struct {
	transfers []models.MoneyTransfer
	nextID    int64
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{nextID: 1}
}

func (r *fakeTransferRepo) Add(_ context.Context, transfer *models.MoneyTransfer) error {
	transfer.ID = r.nextID
	transfer.CreatedAt = time.Now()
	r.transfers = append(r.transfers, *transfer)
	r.nextID++
	return nil
}

func (r *fakeTransferRepo) GetByAccountID(_ context.Context, accountID int64) ([]models.MoneyTransfer, error) {
	var result []models.MoneyTransfer
	for _, transfer := range r.transfers {
		if transfer.FromAccountID == accountID || transfer.ToAccountID == accountID {
			result = append(result, transfer)
		}
	}
	return result, nil
}

type fakeStore struct {
	accounts  *fakeAccountRepo
	users     *fakeUserRepo
	transfers *fakeTransferRepo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:  newFakeAccountRepo(),
		users:     newFakeUserRepo(),
		transfers: newFakeTransferRepo(),
	}
}

func (s *fakeStore) Accounts() AccountRepository   { return s.accounts }
func (s *fakeStore) Users() UserRepository         { return s.users }
func (s *fakeStore) Transfers() TransferRepository { return s.transfers }

func (s *fakeStore) snapshot() *fakeStore {
	accounts := newFakeAccountRepo()
	accounts.nextID = s.accounts.nextID
	for id, account := range s.accounts.accounts {
		accounts.accounts[id] = account
	}

	users := newFakeUserRepo()
	users.nextID = s.users.nextID
	for id, user := range s.users.users {
		users.users[id] = user
	}

	transfers := newFakeTransferRepo()
	transfers.nextID = s.transfers.nextID
	transfers.transfers = append(transfers.transfers, s.transfers.transfers...)

	return &fakeStore{accounts: accounts, users: users, transfers: transfers}
}

func (s *fakeStore) replaceWith(other *fakeStore) {
	*s.accounts = *other.accounts
	*s.users = *other.users
	*s.transfers = *other.transfers
}

type fakeUnitOfWork struct {
	store     *fakeStore
	commitErr error
}

func (u *fakeUnitOfWork) Do(_ context.Context, fn func(s Store) error) error {
	working := u.store.snapshot()
	if err := fn(working); err != nil {
		return err
	}
	if u.commitErr != nil {
		return u.commitErr
	}
	u.store.replaceWith(working)
	return nil
}

// unitRateSource - курс 1 для любой валюты (конвертация 1:1).
type unitRateSource struct{}

func (unitRateSource) GetRate(context.Context, string) (decimal.Decimal, error) {
	return decimal.NewFromInt(1), nil
}
