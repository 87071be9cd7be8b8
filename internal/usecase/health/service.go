// Package health aggregates component availability checks.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	confluence SearchBackendPinger
	summarizer SummarizerChecker
	cache      CachePinger
}

// New creates a Service. summarizer and cache can be nil when not configured.
func New(confluence SearchBackendPinger, summarizer SummarizerChecker, cache CachePinger) *Service {
	return &Service{confluence: confluence, summarizer: summarizer, cache: cache}
}

// Check probes all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.confluence.Ping(ctx); err != nil {
		checks["confluence"] = CheckError
	} else {
		checks["confluence"] = CheckOK
	}

	if s.summarizer != nil {
		if err := s.summarizer.HealthCheck(ctx); err != nil {
			checks["llm"] = CheckError
		} else {
			checks["llm"] = CheckOK
		}
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
