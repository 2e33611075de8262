package handlers

import (
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"minibank/internal/currency"
)

type ConverterHandler struct {
	converter *currency.Converter
}

func NewConverterHandler(converter *currency.Converter) *ConverterHandler {
	return &ConverterHandler{converter: converter}
}

// Convert обрабатывает GET /converter?amount=&from=&to=
func (h *ConverterHandler) Convert(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()

	amount, err := decimal.NewFromString(string(args.Peek("amount")))
	if err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "некорректная сумма"})
		return
	}

	from, err := currency.Normalize(string(args.Peek("from")))
	if err != nil {
		writeError(ctx, "ConverterHandler", err, "Ошибка конвертации")
		return
	}
	to, err := currency.Normalize(string(args.Peek("to")))
	if err != nil {
		writeError(ctx, "ConverterHandler", err, "Ошибка конвертации")
		return
	}

	result, err := h.converter.GetValueInOtherCurrency(ctx, amount, from, to)
	if err != nil {
		writeError(ctx, "ConverterHandler", err, "Ошибка конвертации")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]string{
		"amount": amount.String(),
		"from":   from,
		"to":     to,
		"result": result.String(),
	})
}
