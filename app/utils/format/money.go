package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

type Money struct {
	ac *accounting.Accounting
}

func NewMoney(symbol string) *Money {
	return &Money{ac: &accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."}}
}

func (m *Money) Format(amount decimal.Decimal) string {
	return m.ac.FormatMoneyDecimal(amount)
}
