package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrAmountOverflow is returned when an amount does not fit in an int64
var ErrAmountOverflow = errors.New("amount overflows")

// currencySymbols maps the catalog currency codes to display symbols
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"ILS": "₪",
	"JOD": "JD ",
}

// FormatAmount formats a whole-unit USD amount like "$12,500"
func FormatAmount(amount int64) string {
	return FormatMoney(amount, "USD")
}

// FormatMoney formats a whole-unit amount in currency. Unknown codes are
// appended after the number, e.g. "1,200 SAR".
func FormatMoney(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := groupThousands(strconv.FormatInt(amount, 10))
	code := strings.ToUpper(strings.TrimSpace(currency))
	if symbol, ok := currencySymbols[code]; ok {
		return sign + symbol + digits
	}
	if code == "" {
		return sign + digits
	}
	return sign + digits + " " + code
}

// groupThousands inserts a comma every three digits from the right
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	head := len(s) % 3
	parts := make([]string, 0, len(s)/3+1)
	if head > 0 {
		parts = append(parts, s[:head])
	}
	for i := head; i < len(s); i += 3 {
		parts = append(parts, s[i:i+3])
	}
	return strings.Join(parts, ",")
}

// MulAmount returns price * quantity, or ErrAmountOverflow
func MulAmount(price int64, quantity int) (int64, error) {
	if price < 0 || quantity < 0 {
		return 0, errors.New("amounts must not be negative")
	}
	if quantity != 0 && price > math.MaxInt64/int64(quantity) {
		return 0, ErrAmountOverflow
	}
	return price * int64(quantity), nil
}

// AddAmount returns a + b for non-negative amounts, or ErrAmountOverflow
func AddAmount(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, errors.New("amounts must not be negative")
	}
	if a > math.MaxInt64-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}
