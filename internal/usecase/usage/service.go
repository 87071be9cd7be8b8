// Package usage reports summarizer token consumption and budget state.
package usage

import (
	"context"
	"time"

	"specbot/internal/domain"
	domusage "specbot/internal/domain/usage"
	"specbot/internal/domain/usage/budget"
	"specbot/internal/domain/usage/metrics"
)

// Service handles usage reporting.
type Service struct {
	br             BudgetReader
	model          string
	costPerMTokens float64 // USD per million tokens, 0 = cost not reported
}

// New creates a Service. br can be nil (unlimited mode).
func New(br BudgetReader, model string, costPerMillionTokens float64) *Service {
	return &Service{br: br, model: model, costPerMTokens: costPerMillionTokens}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) (domusage.Report, error) {
	if !period.IsValid() {
		return domusage.Report{}, domain.ErrInvalidPeriod
	}

	now := time.Now().UTC()
	var start, end int64
	var limit, used, remaining int64

	switch period {
	case domusage.PeriodDay:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.Add(24 * time.Hour)
		start = dayStart.UnixMilli()
		end = dayEnd.UnixMilli()
		if s.br != nil {
			limit = s.br.DailyLimit()
			used = s.br.DailyUsed()
			remaining = s.br.RemainingDaily()
		}
	case domusage.PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)
		start = monthStart.UnixMilli()
		end = monthEnd.UnixMilli()
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			used = s.br.MonthlyUsed()
			remaining = s.br.RemainingMonthly()
		}
	default:
		// total — no period boundaries; monthly counters are the widest kept
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			used = s.br.MonthlyUsed()
			remaining = s.br.RemainingMonthly()
		}
	}

	exhausted := limit > 0 && remaining <= 0
	resetsAt := end

	b := budget.New(int(limit), int(remaining), exhausted, resetsAt)
	m := metrics.New(0, int(used), s.cost(used)) // per-period request counts are not tracked

	return domusage.NewReport(period, start, end, s.model, m, b), nil
}

// cost converts consumed tokens to millidollars at the configured rate.
func (s *Service) cost(tokens int64) int {
	if s.costPerMTokens <= 0 {
		return 0
	}
	return int(float64(tokens) / 1_000_000 * s.costPerMTokens * 1000)
}
