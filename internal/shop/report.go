package shop

import (
	"context"

	"printbazar/m/internal/apperr"
	"printbazar/m/internal/insights"
	"printbazar/m/internal/report"
)

type ReportResult struct {
	Period    insights.Period `json:"period"`
	Summary   report.Summary  `json:"summary"`
	Text      string          `json:"text"`
	Available bool            `json:"available"`
}

// Report summarises the period and asks the generator for prose. An
// unavailable generator is not an error; the placeholder text is returned.
func (s *Shop) Report(ctx context.Context, period insights.Period) (ReportResult, error) {
	s.mu.Lock()
	periodOrders := insights.Filter(s.orders.List(), insights.Query{Period: period, Now: s.now()})
	summary := report.Summarize(periodOrders, s.stock.Items(), s.ledger.Total())
	s.mu.Unlock()

	text, err := s.deps.Reporter.Write(ctx, summary)
	res := ReportResult{Period: period, Summary: summary, Text: text, Available: err == nil}
	if err != nil && !apperr.Is(err, apperr.ExternalUnavailable) {
		return ReportResult{}, err
	}
	return res, nil
}
