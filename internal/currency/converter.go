package currency

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"minibank/internal/utils"
)

// RateSource отдаёт стоимость валюты в базовых единицах (рублях за единицу).
type RateSource interface {
	GetRate(ctx context.Context, code string) (decimal.Decimal, error)
}

// Converter пересчитывает суммы между валютами через источник курсов.
type Converter struct {
	rates RateSource
}

func NewConverter(rates RateSource) *Converter {
	return &Converter{rates: rates}
}

// GetValueInOtherCurrency конвертирует amount из валюты from в валюту to.
// Курс каждой валюты запрашивается ровно один раз за вызов, поэтому
// результат внутренне согласован, даже если источник курсов плавающий:
// конвертация валюты саму в себя всегда даёт исходную сумму.
func (c *Converter) GetValueInOtherCurrency(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Decimal{}, ErrNegativeAmount
	}

	fromRate, err := c.rates.GetRate(ctx, from)
	if err != nil {
		return decimal.Decimal{}, err
	}

	toRate := fromRate
	if from != to {
		toRate, err = c.rates.GetRate(ctx, to)
		if err != nil {
			return decimal.Decimal{}, err
		}
	}

	result := amount.Mul(fromRate).Div(toRate)
	utils.LogDebug("Converter", "Конвертация %s %s -> %s %s (курсы: %s / %s)",
		amount.String(), from, result.String(), to, fromRate.String(), toRate.String())

	return result, nil
}

// validateRate - общая проверка знака курса для источников.
func validateRate(code string, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.IsZero() || rate.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("некорректный курс %s для валюты %s", rate.String(), code)
	}
	return rate, nil
}
