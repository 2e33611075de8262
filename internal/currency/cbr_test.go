package currency

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleCBRBody = `{
	"Date": "2026-08-31T11:30:00+03:00",
	"Valute": {
		"USD": {"ID": "R01235", "Nominal": 1, "Value": 83.5},
		"EUR": {"ID": "R01239", "Nominal": 1, "Value": 93.25},
		"JPY": {"ID": "R01820", "Nominal": 100, "Value": 55.0}
	}
}`

func TestParseRate(t *testing.T) {
	rate, err := parseRate([]byte(sampleCBRBody), "USD")
	if err != nil {
		t.Fatalf("parseRate(USD): %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("83.5")) {
		t.Errorf("курс USD=%s, ожидается 83.5", rate)
	}
}

// Котировки с номиналом больше 1 приводятся к курсу за единицу.
func TestParseRateWithNominal(t *testing.T) {
	rate, err := parseRate([]byte(sampleCBRBody), "JPY")
	if err != nil {
		t.Fatalf("parseRate(JPY): %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("0.55")) {
		t.Errorf("курс JPY=%s, ожидается 0.55", rate)
	}
}

func TestParseRateUnknownCurrency(t *testing.T) {
	_, err := parseRate([]byte(sampleCBRBody), "GBP")
	if !errors.Is(err, ErrUnknownRate) {
		t.Fatalf("ожидается ErrUnknownRate, получено %v", err)
	}
}

func TestParseRateInvalidBody(t *testing.T) {
	if _, err := parseRate([]byte("not json"), "USD"); err == nil {
		t.Fatal("ожидалась ошибка разбора")
	}
}
