package notify

import (
	"strconv"
	"strings"

	"printbazar/m/domain"
)

// FormatAmount renders money with Indian digit grouping (12,34,567) and keeps
// up to two decimals when the amount is not whole.
func FormatAmount(m domain.Money) string {
	neg := m.IsNegative()
	m = m.Abs().Round(2)
	whole := m.Truncate(0)
	out := AddCommasToInteger(whole.IntPart())
	if frac := m.Sub(whole); !frac.IsZero() {
		out += "." + frac.StringFixed(2)[2:]
	}
	if neg {
		out = "-" + out
	}
	return out
}

// AddCommasToInteger groups the last three digits, then pairs.
func AddCommasToInteger(value int64) string {
	if value < 0 {
		return "-" + AddCommasToInteger(-value)
	}
	strValue := strconv.FormatInt(value, 10)
	if len(strValue) <= 3 {
		return strValue
	}
	head, tail := strValue[:len(strValue)-3], strValue[len(strValue)-3:]
	var parts []string
	for i := len(head); i > 0; i -= 2 {
		start := i - 2
		if start < 0 {
			start = 0
		}
		parts = append([]string{head[start:i]}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
