// Package report asks a text model for a short business summary. It is best
// effort: failures degrade to a fixed message.
package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"printbazar/m/domain"
	"printbazar/m/internal/apperr"
)

const (
	MsgUnavailable = "API Key not configured. Unable to generate AI report."
	MsgFailed      = "Failed to generate report due to an API error."
)

var ErrNotConfigured = errors.New("report generator not configured")

// Generator turns a prompt into prose.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Summary struct {
	Revenue     domain.Money `json:"revenue"`
	GrossProfit domain.Money `json:"gross_profit"`
	Expenses    domain.Money `json:"expenses"`
	NetProfit   domain.Money `json:"net_profit"`
	LowStock    []string     `json:"low_stock"`
}

// Summarize builds the numbers fed to the model. Net profit is gross profit
// minus all recorded expenses.
func Summarize(orders []domain.Order, stock []domain.StockItem, expenses domain.Money) Summary {
	s := Summary{Revenue: domain.Zero, GrossProfit: domain.Zero, Expenses: expenses}
	for _, o := range orders {
		s.Revenue = s.Revenue.Add(o.Total)
		s.GrossProfit = s.GrossProfit.Add(o.Profit)
	}
	s.NetProfit = s.GrossProfit.Sub(expenses)
	for _, it := range stock {
		if it.Low() {
			s.LowStock = append(s.LowStock, it.Name)
		}
	}
	return s
}

func Prompt(s Summary) string {
	low := strings.Join(s.LowStock, ", ")
	if low == "" {
		low = "None"
	}
	var b strings.Builder
	b.WriteString("Act as a business analyst for a print shop in India. Analyze the following data snapshot and provide a concise, actionable summary (max 150 words).\n\n")
	b.WriteString("Data:\n")
	fmt.Fprintf(&b, "- Total Revenue: ₹%s\n", s.Revenue)
	fmt.Fprintf(&b, "- Gross Profit: ₹%s\n", s.GrossProfit)
	fmt.Fprintf(&b, "- Total Expenses: ₹%s\n", s.Expenses)
	fmt.Fprintf(&b, "- Net Profit: ₹%s\n", s.NetProfit)
	fmt.Fprintf(&b, "- Critical Low Stock: %s\n\n", low)
	b.WriteString("Provide:\n")
	b.WriteString("1. Financial health check.\n")
	b.WriteString("2. One specific recommendation for improvement.\n")
	b.WriteString("3. A motivational quote for the staff.\n")
	return b.String()
}

type Reporter struct {
	gen Generator
}

// New wraps gen. A nil generator always answers with MsgUnavailable.
func New(gen Generator) *Reporter {
	return &Reporter{gen: gen}
}

// Write returns the report text. On failure the text is the placeholder and
// the error is an ExternalUnavailable AppError.
func (r *Reporter) Write(ctx context.Context, s Summary) (string, error) {
	if r == nil || r.gen == nil {
		return MsgUnavailable, apperr.UnavailableErr(MsgUnavailable, ErrNotConfigured)
	}
	text, err := r.gen.GenerateText(ctx, Prompt(s))
	if err != nil {
		log.Printf("report: generate failed: %v", err)
		return MsgFailed, apperr.UnavailableErr(MsgFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return MsgFailed, apperr.UnavailableErr(MsgFailed, errors.New("empty response"))
	}
	return text, nil
}
