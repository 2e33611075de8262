package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"minibank/internal/currency"
)

func TestAddHistoryValidation(t *testing.T) {
	store := newFakeStore()
	history := NewTransferHistoryService(store)

	_, err := history.AddHistory(context.Background(), store.transfers, decimal.Zero, "RUB", 1, 2)
	if !errors.Is(err, ErrZeroOrNegativeAmount) {
		t.Errorf("нулевая сумма: ожидается ErrZeroOrNegativeAmount, получено %v", err)
	}

	_, err = history.AddHistory(context.Background(), store.transfers, decimal.NewFromInt(-10), "RUB", 1, 2)
	if !errors.Is(err, ErrZeroOrNegativeAmount) {
		t.Errorf("отрицательная сумма: ожидается ErrZeroOrNegativeAmount, получено %v", err)
	}

	_, err = history.AddHistory(context.Background(), store.transfers, decimal.NewFromInt(10), "JPA", 1, 2)
	if !errors.Is(err, currency.ErrNotPermitted) {
		t.Errorf("недопустимая валюта: ожидается ErrNotPermitted, получено %v", err)
	}
}

func TestAddHistoryNormalizesCurrency(t *testing.T) {
	store := newFakeStore()
	history := NewTransferHistoryService(store)

	transfer, err := history.AddHistory(context.Background(), store.transfers, decimal.NewFromInt(10), "usd", 1, 2)
	if err != nil {
		t.Fatalf("AddHistory: %v", err)
	}
	if transfer.Currency != "USD" {
		t.Errorf("валюта=%q, ожидается USD", transfer.Currency)
	}
	if transfer.ID == 0 {
		t.Error("записи должен быть присвоен id")
	}
}

func TestGetAccountHistoryNonExistentAccount(t *testing.T) {
	store := newFakeStore()
	history := NewTransferHistoryService(store)

	_, err := history.GetAccountHistory(context.Background(), 404)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("ожидается ErrAccountNotFound, получено %v", err)
	}
}

func TestGetAccountHistory(t *testing.T) {
	store := newFakeStore()
	history := NewTransferHistoryService(store)

	account, err := store.accounts.Create(context.Background(), 1, "RUB", decimal.Zero)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	other, err := store.accounts.Create(context.Background(), 1, "RUB", decimal.Zero)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := history.AddHistory(context.Background(), store.transfers, decimal.NewFromInt(10), "RUB", account.ID, other.ID); err != nil {
		t.Fatalf("AddHistory: %v", err)
	}
	if _, err := history.AddHistory(context.Background(), store.transfers, decimal.NewFromInt(20), "RUB", other.ID, account.ID); err != nil {
		t.Fatalf("AddHistory: %v", err)
	}

	transfers, err := history.GetAccountHistory(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("GetAccountHistory: %v", err)
	}
	if len(transfers) != 2 {
		t.Fatalf("записей=%d, ожидается 2", len(transfers))
	}
}
