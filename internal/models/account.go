package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"user_id"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	IsOpen   bool            `json:"is_open"`
	OpenedAt time.Time       `json:"opened_at"`
	// ClosedAt заполняется только при явном закрытии счёта
	ClosedAt *time.Time `json:"closed_at,omitempty"`
}

type CreateAccountRequest struct {
	UserID       int64           `json:"user_id"`
	Currency     string          `json:"currency"`
	StartBalance decimal.Decimal `json:"start_balance"`
}

type UpdateAccountRequest struct {
	UserID   int64           `json:"user_id"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

type AccountResponse struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
	IsOpen   bool   `json:"is_open"`
	OpenedAt string `json:"opened_at"`
	ClosedAt string `json:"closed_at,omitempty"`
}

type CommissionResponse struct {
	Amount        string `json:"amount"`
	Commission    string `json:"commission"`
	FromAccountID int64  `json:"from_account_id"`
	ToAccountID   int64  `json:"to_account_id"`
}

func NewAccountResponse(account *Account) AccountResponse {
	resp := AccountResponse{
		ID:       account.ID,
		UserID:   account.UserID,
		Balance:  account.Balance.String(),
		Currency: account.Currency,
		IsOpen:   account.IsOpen,
		OpenedAt: account.OpenedAt.Format("2006-01-02 15:04:05"),
	}
	if account.ClosedAt != nil {
		resp.ClosedAt = account.ClosedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}
