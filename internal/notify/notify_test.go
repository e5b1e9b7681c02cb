package notify

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printbazar/m/domain"
)

func TestAddCommasToInteger(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		340:      "340",
		1200:     "1,200",
		15000:    "15,000",
		123456:   "1,23,456",
		12345678: "1,23,45,678",
		-4500:    "-4,500",
	}
	for in, want := range tests {
		assert.Equal(t, want, AddCommasToInteger(in), in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "340", FormatAmount(domain.Rupees(340)))
	assert.Equal(t, "1,00,000", FormatAmount(domain.Rupees(100000)))
	assert.Equal(t, "2,450.50", FormatAmount(decimal.RequireFromString("2450.5")))
	assert.Equal(t, "-12.25", FormatAmount(decimal.RequireFromString("-12.25")))
}

func testOrder() domain.Order {
	return domain.Order{
		ID:            "ORD-1A2B3C4D5E",
		CustomerPhone: "98765 43210",
		Totals:        domain.Totals{Total: domain.Rupees(340)},
	}
}

func TestMessage(t *testing.T) {
	msg := NewWhatsApp("").Message(testOrder())
	assert.True(t, strings.HasPrefix(msg, "Namaste from Print Bazar,\nYour order #C4D5E is ready. ✅\n"))
	assert.Contains(t, msg, "💰 Total Bill: ₹340\n")
	assert.NotContains(t, msg, "{{")
}

func TestLink(t *testing.T) {
	w := NewWhatsApp("91")
	link := w.Link(testOrder())

	require.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "Namaste%20from%20Print%20Bazar")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, w.Message(testOrder()), u.Query().Get("text"))
}
