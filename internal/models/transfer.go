package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyTransfer - неизменяемая запись в истории переводов.
// Сумма и валюта фиксируются в валюте счёта-отправителя.
type MoneyTransfer struct {
	ID            int64           `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

type TransferRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
}

type TransferResponse struct {
	ID            int64  `json:"id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	FromAccountID int64  `json:"from_account_id"`
	ToAccountID   int64  `json:"to_account_id"`
	CreatedAt     string `json:"created_at"`
}

type TransferListResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	Total     int                `json:"total"`
	AccountID int64              `json:"account_id"`
}
