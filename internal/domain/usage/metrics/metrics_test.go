package metrics

import "testing"

func TestNew(t *testing.T) {
	m := New(42, 81500, 12)
	if m.SummaryRequests() != 42 {
		t.Errorf("SummaryRequests() = %d", m.SummaryRequests())
	}
	if m.Tokens() != 81500 {
		t.Errorf("Tokens() = %d", m.Tokens())
	}
	if m.CostMillidollars() != 12 {
		t.Errorf("CostMillidollars() = %d", m.CostMillidollars())
	}
}

func TestNew_Zero(t *testing.T) {
	m := New(0, 0, 0)
	if m.SummaryRequests() != 0 || m.Tokens() != 0 || m.CostMillidollars() != 0 {
		t.Error("zero metrics should have zero values")
	}
}
