package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockConfluencePinger struct {
	err error
}

func (m *mockConfluencePinger) Ping(_ context.Context) error { return m.err }

type mockSummarizerChecker struct {
	err error
}

func (m *mockSummarizerChecker) HealthCheck(_ context.Context) error { return m.err }

type mockCachePinger struct {
	err error
}

func (m *mockCachePinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockConfluencePinger{}, &mockSummarizerChecker{}, &mockCachePinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["confluence"] != CheckOK {
		t.Errorf("expected confluence %q, got %q", CheckOK, r.Checks["confluence"])
	}
	if r.Checks["llm"] != CheckOK {
		t.Errorf("expected llm %q, got %q", CheckOK, r.Checks["llm"])
	}
	if r.Checks["cache"] != CheckOK {
		t.Errorf("expected cache %q, got %q", CheckOK, r.Checks["cache"])
	}
}

func TestCheck_ConfluenceError(t *testing.T) {
	svc := New(&mockConfluencePinger{err: errors.New("conn refused")}, &mockSummarizerChecker{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["confluence"] != CheckError {
		t.Errorf("expected confluence %q, got %q", CheckError, r.Checks["confluence"])
	}
	if r.Checks["llm"] != CheckOK {
		t.Errorf("expected llm %q, got %q", CheckOK, r.Checks["llm"])
	}
}

func TestCheck_SummarizerError(t *testing.T) {
	svc := New(&mockConfluencePinger{}, &mockSummarizerChecker{err: errors.New("timeout")}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["confluence"] != CheckOK {
		t.Errorf("expected confluence %q, got %q", CheckOK, r.Checks["confluence"])
	}
	if r.Checks["llm"] != CheckError {
		t.Errorf("expected llm %q, got %q", CheckError, r.Checks["llm"])
	}
}

func TestCheck_CacheError(t *testing.T) {
	svc := New(&mockConfluencePinger{}, &mockSummarizerChecker{}, &mockCachePinger{err: errors.New("down")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["cache"] != CheckError {
		t.Errorf("expected cache %q, got %q", CheckError, r.Checks["cache"])
	}
}

func TestCheck_OptionalComponentsAbsent(t *testing.T) {
	svc := New(&mockConfluencePinger{}, nil, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["confluence"] != CheckOK {
		t.Errorf("expected confluence %q, got %q", CheckOK, r.Checks["confluence"])
	}
	if _, ok := r.Checks["llm"]; ok {
		t.Error("llm check should be absent when summarizer is nil")
	}
	if _, ok := r.Checks["cache"]; ok {
		t.Error("cache check should be absent when cache is nil")
	}
}
