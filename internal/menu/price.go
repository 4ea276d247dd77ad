package menu

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount the way the menu shows it, e.g. "R$ 28,90".
func FormatPrice(amount decimal.Decimal) string {
	return "R$ " + strings.Replace(amount.StringFixed(2), ".", ",", 1)
}
