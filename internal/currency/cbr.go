package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"minibank/internal/utils"
)

// cbrQuote - одна котировка из справочника ЦБ (daily_json.js).
type cbrQuote struct {
	Nominal int64           `json:"Nominal"`
	Value   decimal.Decimal `json:"Value"`
}

type cbrPayload struct {
	Valute map[string]cbrQuote `json:"Valute"`
}

// CBRRateSource берёт дневные курсы с сайта ЦБ.
// Базовая валюта - рубль, поэтому курс RUB всегда равен 1.
type CBRRateSource struct {
	url    string
	client *fasthttp.Client
}

func NewCBRRateSource(url string) *CBRRateSource {
	return &CBRRateSource{
		url: url,
		client: &fasthttp.Client{
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (s *CBRRateSource) GetRate(ctx context.Context, code string) (decimal.Decimal, error) {
	code = strings.ToUpper(code)
	if code == "RUB" {
		return decimal.NewFromInt(1), nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline := time.Now().Add(5 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := s.client.DoDeadline(req, resp, deadline); err != nil {
		return decimal.Decimal{}, fmt.Errorf("ошибка запроса курсов: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("источник курсов вернул статус %d", resp.StatusCode())
	}

	rate, err := parseRate(resp.Body(), code)
	if err != nil {
		return decimal.Decimal{}, err
	}

	utils.LogDebug("CBRRateSource", "Получен курс %s: %s", code, rate.String())
	return rate, nil
}

// parseRate извлекает курс одной валюты из ответа ЦБ.
// Котировка даётся за Nominal единиц, поэтому приводится к курсу за единицу.
func parseRate(body []byte, code string) (decimal.Decimal, error) {
	var payload cbrPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("ошибка разбора ответа источника курсов: %w", err)
	}

	quote, ok := payload.Valute[code]
	if !ok {
		return decimal.Decimal{}, ErrUnknownRate
	}

	nominal := quote.Nominal
	if nominal <= 0 {
		nominal = 1
	}

	return validateRate(code, quote.Value.Div(decimal.NewFromInt(nominal)))
}
