package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatINR renders an amount with the rupee prefix and thousand
// separators, e.g. 125000 -> "Rs 125,000".
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	frac := amount - float64(whole)
	out := formatThousand(whole)
	if frac >= 0.005 {
		return fmt.Sprintf("%sRs %s%s", sign, out, strings.TrimPrefix(fmt.Sprintf("%.2f", frac), "0"))
	}
	return fmt.Sprintf("%sRs %s", sign, out)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
