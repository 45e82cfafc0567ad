package analytics

import (
	"math"
	"strconv"
	"strings"
)

// ToNinetyNine rounds a price up to the nearest whole amount minus one cent,
// the conventional ".99" price point: 45.50 becomes 45.99, 0.5 becomes 0.99.
// nil and NaN pass through as nil.
func ToNinetyNine(x *float64) *float64 {
	if x == nil || math.IsNaN(*x) {
		return nil
	}
	v := math.Ceil(*x) - 0.01
	return &v
}

// FormatMoney renders a price as a dollar string with thousands separators
// and exactly two decimal places, e.g. "$1,234.56". nil and NaN render as the
// sentinel "$-.--" so templates never see an empty amount.
func FormatMoney(x *float64) string {
	if x == nil || math.IsNaN(*x) {
		return "$-.--"
	}

	v := *x
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	fixed := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString("$")
	b.WriteString(sign)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
