package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fasthttp"

	"minibank/internal/models"
	"minibank/internal/services"
	"minibank/internal/utils"
)

type TransferHandler struct {
	accountService *services.AccountService
	historyService *services.TransferHistoryService
}

func NewTransferHandler(accountService *services.AccountService, historyService *services.TransferHistoryService) *TransferHandler {
	return &TransferHandler{
		accountService: accountService,
		historyService: historyService,
	}
}

func transferResponse(t *models.MoneyTransfer) models.TransferResponse {
	return models.TransferResponse{
		ID:            t.ID,
		Amount:        t.Amount.String(),
		Currency:      t.Currency,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		CreatedAt:     t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// MakeTransfer обрабатывает POST /transfers
func (h *TransferHandler) MakeTransfer(ctx *fasthttp.RequestCtx) {
	var req models.TransferRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "некорректное тело запроса"})
		return
	}

	transfer, err := h.accountService.MakeMoneyTransfer(ctx, req.Amount, req.FromAccountID, req.ToAccountID)
	if err != nil {
		writeError(ctx, "TransferHandler", err, "Ошибка выполнения перевода")
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, transferResponse(transfer))
	utils.LogSuccess("TransferHandler", "%s", fmt.Sprintf("Перевод %d выполнен", transfer.ID))
}

// GetAccountTransfers обрабатывает GET /accounts/{id}/transfers
func (h *TransferHandler) GetAccountTransfers(ctx *fasthttp.RequestCtx) {
	accountID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	transfers, err := h.historyService.GetAccountHistory(ctx, accountID)
	if err != nil {
		writeError(ctx, "TransferHandler", err, "Ошибка получения истории переводов")
		return
	}

	responses := make([]models.TransferResponse, 0, len(transfers))
	for i := range transfers {
		responses = append(responses, transferResponse(&transfers[i]))
	}

	writeJSON(ctx, fasthttp.StatusOK, models.TransferListResponse{
		Transfers: responses,
		Total:     len(responses),
		AccountID: accountID,
	})
}
