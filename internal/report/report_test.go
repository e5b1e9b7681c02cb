package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printbazar/m/domain"
	"printbazar/m/internal/apperr"
)

type fakeGen struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGen) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func sample() Summary {
	orders := []domain.Order{
		{Totals: domain.Totals{Total: domain.Rupees(340), Profit: domain.Rupees(225)}},
		{Totals: domain.Totals{Total: domain.Rupees(100), Profit: domain.Rupees(40)}},
	}
	stock := []domain.StockItem{
		{Name: "A4 JK Copier 75GSM", Quantity: 8, Threshold: 10},
		{Name: "Spiral Coils 6mm", Quantity: 50, Threshold: 10},
		{Name: "HP 12A Black Toner", Quantity: 1, Threshold: 2},
	}
	return Summarize(orders, stock, domain.Rupees(300))
}

func TestSummarize(t *testing.T) {
	s := sample()
	assert.Equal(t, "440", s.Revenue.String())
	assert.Equal(t, "265", s.GrossProfit.String())
	assert.Equal(t, "-35", s.NetProfit.String())
	assert.Equal(t, []string{"A4 JK Copier 75GSM", "HP 12A Black Toner"}, s.LowStock)
}

func TestPrompt(t *testing.T) {
	p := Prompt(sample())
	assert.Contains(t, p, "- Total Revenue: ₹440\n")
	assert.Contains(t, p, "- Net Profit: ₹-35\n")
	assert.Contains(t, p, "- Critical Low Stock: A4 JK Copier 75GSM, HP 12A Black Toner\n")
	assert.Contains(t, p, "max 150 words")

	assert.Contains(t, Prompt(Summary{}), "- Critical Low Stock: None\n")
}

func TestWrite(t *testing.T) {
	gen := &fakeGen{text: "  Healthy month.  "}
	text, err := New(gen).Write(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, "Healthy month.", text)
	assert.Contains(t, gen.prompt, "Gross Profit: ₹265")
}

func TestWriteDegrades(t *testing.T) {
	text, err := New(nil).Write(context.Background(), sample())
	assert.Equal(t, MsgUnavailable, text)
	assert.True(t, apperr.Is(err, apperr.ExternalUnavailable))
	assert.ErrorIs(t, err, ErrNotConfigured)

	text, err = New(&fakeGen{err: errors.New("quota")}).Write(context.Background(), sample())
	assert.Equal(t, MsgFailed, text)
	assert.True(t, apperr.Is(err, apperr.ExternalUnavailable))

	text, _ = New(&fakeGen{text: "   "}).Write(context.Background(), sample())
	assert.Equal(t, MsgFailed, text)
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
