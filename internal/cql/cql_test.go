package cql

import "testing"

func TestTitleContains(t *testing.T) {
	got := TitleContains("ログイン機能").InSpace("ENG")
	want := `title ~ "ログイン機能" and space = "ENG"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextContains(t *testing.T) {
	got := TextContains("二段階認証").InSpace("DOCS")
	want := `text ~ "二段階認証" and space = "DOCS"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAnd(t *testing.T) {
	got := And(TitleContains("ログイン"), TitleContains("機能")).InSpace("ENG")
	want := `(title ~ "ログイン" AND title ~ "機能") and space = "ENG"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOr(t *testing.T) {
	got := Or(TextContains("a1"), TextContains("b2"), TextContains("c3")).InSpace("ENG")
	want := `(text ~ "a1" OR text ~ "b2" OR text ~ "c3") and space = "ENG"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGroup_SingleExprHasNoParens(t *testing.T) {
	got := And(TextContains("単体")).InSpace("ENG")
	want := `text ~ "単体" and space = "ENG"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRecentInSpace(t *testing.T) {
	got := RecentInSpace("ENG")
	want := `space = "ENG" order by lastModified desc`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEscape(t *testing.T) {
	got := TextContains(`say "hi" \now`).InSpace("ENG")
	want := `text ~ "say \"hi\" \\now" and space = "ENG"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
