package rest

import "github.com/shopspring/decimal"

// moneyFormat renders currency amounts with a fixed number of decimals so
// clients never see "1.6" for 1.60.
type moneyFormat int32

func (m moneyFormat) format(d decimal.Decimal) string {
	return d.StringFixed(int32(m))
}
