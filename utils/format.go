// utils/format.go
package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	weiPerETHExp  = 18
	weiPerGweiExp = 9
)

// FormatETH renders a wei amount as ETH with four decimals, e.g. "0.0100 ETH".
func FormatETH(wei decimal.Decimal) string {
	return WeiToETH(wei).StringFixed(4) + " ETH"
}

// WeiToETH shifts a wei amount by 18 decimal places.
func WeiToETH(wei decimal.Decimal) decimal.Decimal {
	return wei.Shift(-weiPerETHExp)
}

// FormatGwei renders a gas price (wei) in Gwei with two decimals.
func FormatGwei(wei decimal.Decimal) string {
	return wei.Shift(-weiPerGweiExp).StringFixed(2) + " Gwei"
}

// ShortAddress turns 0x1234567890abcdef... into 0x1234...cdef.
func ShortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// FormatDeadline renders a unix timestamp in local time.
func FormatDeadline(unix int64) string {
	if unix <= 0 {
		return "-"
	}
	return time.Unix(unix, 0).Local().Format("2006-01-02 15:04:05")
}
