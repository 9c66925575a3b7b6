package domain

import "github.com/shopspring/decimal"

// DefaultFractionDigits applies when a money value carries no fraction digits.
const DefaultFractionDigits = 2

// Money is an integer amount in the currency's minor unit.
type Money struct {
	CentAmount     int64  `json:"centAmount"`
	CurrencyCode   string `json:"currencyCode"`
	FractionDigits int    `json:"fractionDigits"`
}

// ZeroMoney returns a zero amount in currency. Zero fraction digits are kept.
func ZeroMoney(currency string, fractionDigits int) Money {
	if fractionDigits < 0 {
		fractionDigits = DefaultFractionDigits
	}
	return Money{CurrencyCode: currency, FractionDigits: fractionDigits}
}

// Amount is centAmount / 10^fractionDigits, computed exactly.
func (m Money) Amount() decimal.Decimal {
	return decimal.New(m.CentAmount, int32(-m.FractionDigits))
}

// MoneyView is Money plus a decimal amount for display.
type MoneyView struct {
	CurrencyCode   string  `json:"currencyCode"`
	Amount         float64 `json:"amount"`
	CentAmount     int64   `json:"centAmount"`
	FractionDigits int     `json:"fractionDigits"`
}

// View converts m to its display form.
func (m Money) View() *MoneyView {
	return &MoneyView{
		CurrencyCode:   m.CurrencyCode,
		Amount:         m.Amount().InexactFloat64(),
		CentAmount:     m.CentAmount,
		FractionDigits: m.FractionDigits,
	}
}
