package services

import (
	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
)

// Money columns are NUMERIC(14,2).
const moneyScale = 2

var moneyLimit = decimal.New(1, 12)

// checkMoney rejects amounts the database would round or could not hold, so
// what is stored is exactly what the caller sent. Sign rules are the
// caller's business.
func checkMoney(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, field+" must have at most 2 decimal places")
	}
	if d.Abs().GreaterThanOrEqual(moneyLimit) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, field+" must be less than 1000000000000")
	}
	return nil
}
