// Package money converts between shopspring decimals, Postgres numerics and provider cents.
package money

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ToDecimal converts a numeric column to a decimal. NULL and unreadable values are zero.
func ToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToNumeric converts a decimal to a numeric column value rounded to cents.
func ToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}

// Format renders a numeric with exactly two decimal places.
func Format(n pgtype.Numeric) string {
	return ToDecimal(n).StringFixed(2)
}

// Cents converts a major-unit amount to the smallest currency unit, rounding half away from zero.
func Cents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
