// Package fee computes the platform fees charged on invoices and dividends.
package fee

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type schedule struct {
	baseCents int64
	rate      decimal.Decimal
	maxCents  int64
}

var (
	invoiceSchedule = schedule{
		baseCents: 50,
		rate:      decimal.RequireFromString("0.015"),
		maxCents:  1500,
	}
	dividendSchedule = schedule{
		baseCents: 30,
		rate:      decimal.RequireFromString("0.029"),
		maxCents:  3000,
	}
)

// CalculateInvoiceFee returns the fee in cents for an invoice total:
// 50¢ + 1.5% (rounded half up), capped at $15.
func CalculateInvoiceFee(totalAmountCents int64) int64 {
	return invoiceSchedule.apply(totalAmountCents)
}

// CalculateDividendFee returns the fee in cents for a dividend total:
// 30¢ + 2.9% (rounded half up), capped at $30.
func CalculateDividendFee(totalAmountCents int64) int64 {
	return dividendSchedule.apply(totalAmountCents)
}

func (s schedule) apply(amountCents int64) int64 {
	if amountCents < 0 {
		panic(fmt.Sprintf("fee: negative amount %d cents", amountCents))
	}

	percentage := decimal.NewFromInt(amountCents).Mul(s.rate).Round(0).IntPart()
	fee := s.baseCents + percentage
	if fee > s.maxCents {
		return s.maxCents
	}
	return fee
}
