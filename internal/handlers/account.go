package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"minibank/internal/models"
	"minibank/internal/services"
	"minibank/internal/utils"
)

type AccountHandler struct {
	accountService *services.AccountService
}

func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccount обрабатывает POST /accounts
func (h *AccountHandler) CreateAccount(ctx *fasthttp.RequestCtx) {
	var req models.CreateAccountRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "некорректное тело запроса"})
		return
	}

	account, err := h.accountService.CreateAccount(ctx, req.UserID, req.Currency, req.StartBalance)
	if err != nil {
		writeError(ctx, "AccountHandler", err, "Ошибка создания счёта")
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, models.NewAccountResponse(account))
	utils.LogSuccess("AccountHandler", "%s", fmt.Sprintf("Счёт %d создан", account.ID))
}

// GetAccountByID обрабатывает GET /accounts/{id}
func (h *AccountHandler) GetAccountByID(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(ctx, id)
	if err != nil {
		writeError(ctx, "AccountHandler", err, "Ошибка получения счёта")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, models.NewAccountResponse(account))
}

// GetUserAccounts обрабатывает GET /users/{id}/accounts
func (h *AccountHandler) GetUserAccounts(ctx *fasthttp.RequestCtx) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	accounts, err := h.accountService.GetUserAccounts(ctx, userID)
	if err != nil {
		writeError(ctx, "AccountHandler", err, "Ошибка получения счетов")
		return
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, models.NewAccountResponse(&accounts[i]))
	}

	writeJSON(ctx, fasthttp.StatusOK, responses)
}

// CloseAccount обрабатывает DELETE /accounts/{id}
func (h *AccountHandler) CloseAccount(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.accountService.CloseAccount(ctx, id); err != nil {
		writeError(ctx, "AccountHandler", err, "Ошибка закрытия счёта")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message":    "Счёт успешно закрыт",
		"account_id": id,
	})
}

// GetCommission обрабатывает GET /accounts/commission?amount=&from=&to=
func (h *AccountHandler) GetCommission(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()

	amount, err := decimal.NewFromString(string(args.Peek("amount")))
	if err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "некорректная сумма"})
		return
	}

	fromID, err1 := strconv.ParseInt(string(args.Peek("from")), 10, 64)
	toID, err2 := strconv.ParseInt(string(args.Peek("to")), 10, 64)
	if err1 != nil || err2 != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "некорректные идентификаторы счетов"})
		return
	}

	commission, err := h.accountService.GetCommission(ctx, amount, fromID, toID)
	if err != nil {
		writeError(ctx, "AccountHandler", err, "Ошибка расчёта комиссии")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, models.CommissionResponse{
		Amount:        amount.String(),
		Commission:    commission.String(),
		FromAccountID: fromID,
		ToAccountID:   toID,
	})
}
