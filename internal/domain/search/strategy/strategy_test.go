package strategy

import "testing"

func TestAll_Order(t *testing.T) {
	want := []Name{TitlePriority, KeywordSplit, PhraseSearch, PartialMatch, Fallback}
	got := All()
	if len(got) != len(want) {
		t.Fatalf("All() returned %d names, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBonus(t *testing.T) {
	tests := []struct {
		name  Name
		bonus int
	}{
		{TitlePriority, 15},
		{KeywordSplit, 10},
		{PhraseSearch, 5},
		{PartialMatch, 0},
		{Fallback, 0},
	}
	for _, tc := range tests {
		if got := tc.name.Bonus(); got != tc.bonus {
			t.Errorf("%s.Bonus() = %d, want %d", tc.name, got, tc.bonus)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, n := range All() {
		if !n.IsValid() {
			t.Errorf("%s.IsValid() = false, want true", n)
		}
	}
	if Name("vector").IsValid() {
		t.Error(`Name("vector").IsValid() = true, want false`)
	}
}
