package models

import "github.com/shopspring/decimal"

// Wei is an integer amount in the smallest currency unit.
// JSON accepts both numbers and numeric strings; amounts beyond int64 are common.
type Wei struct {
	decimal.Decimal
}

func NewWei(v int64) Wei { return Wei{decimal.NewFromInt(v)} }

func ParseWei(s string) (Wei, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Wei{}, err
	}
	return Wei{d}, nil
}

func (w Wei) Cmp(other Wei) int { return w.Decimal.Cmp(other.Decimal) }
