// Package keyword turns free-text questions into the small ordered keyword
// lists the search strategies work with. All vocabulary (stop words, compound
// suffixes, synonyms) is immutable and injected at construction so tests can
// substitute controlled word lists.
package keyword

import "sort"

// Vocabulary is the fixed word knowledge used for normalization and expansion.
type Vocabulary struct {
	stop     map[string]struct{}
	suffixes []string
	synonyms map[string][]string
	keys     []string // sorted synonym keys, for deterministic expansion order
}

// NewVocabulary builds a vocabulary from explicit word lists.
func NewVocabulary(stopWords, suffixes []string, synonyms map[string][]string) Vocabulary {
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[w] = struct{}{}
	}
	keys := make([]string, 0, len(synonyms))
	for k := range synonyms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Vocabulary{stop: stop, suffixes: suffixes, synonyms: synonyms, keys: keys}
}

// Default returns the built-in Japanese/English vocabulary.
func Default() Vocabulary {
	return NewVocabulary(defaultStopWords, defaultSuffixes, defaultSynonyms)
}

// IsStopWord reports whether the token carries no search value.
func (v Vocabulary) IsStopWord(token string) bool {
	_, ok := v.stop[token]
	return ok
}

// IsContextTerm reports whether the token is a compound suffix (機能, 仕様書, …).
// Context terms narrow queries but are too generic to earn title-match score.
func (v Vocabulary) IsContextTerm(token string) bool {
	for _, s := range v.suffixes {
		if token == s {
			return true
		}
	}
	return false
}

// Suffixes returns the compound suffixes split off during normalization.
func (v Vocabulary) Suffixes() []string { return v.suffixes }

// Discriminative filters out context terms, keeping order. The result is the
// keyword list the scorer matches against titles.
func (v Vocabulary) Discriminative(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if !v.IsContextTerm(k) {
			out = append(out, k)
		}
	}
	return out
}

var defaultStopWords = []string{
	"の", "を", "が", "は", "で", "に", "へ", "と", "も", "から", "まで",
	"について", "に関して", "ついて", "いて",
	"仕様", "詳細", "情報", "教えて",
	"する", "した", "して", "される", "なる", "ある",
	"です", "ます", "だ", "である", "ください",
	"どの", "その", "この", "それ", "これ",
}

var defaultSuffixes = []string{"機能", "仕様書", "設計書", "システム", "管理"}

var defaultSynonyms = map[string][]string{
	"ログイン":   {"認証", "サインイン", "login", "auth", "アカウント"},
	"認証":     {"ログイン", "auth", "authentication", "セキュリティ", "二段階認証"},
	"二段階認証":  {"2FA", "ログイン", "認証", "パスコード", "セキュリティ"},
	"パスワード":  {"認証", "ログイン", "セキュリティ", "パスコード"},
	"セッション":  {"ログイン", "認証", "セキュリティ", "タイムアウト"},
	"セキュリティ": {"安全", "security", "認証", "アクセス制御"},
	"アカウント":  {"ログイン", "認証", "ユーザー", "account"},
	"管理画面":   {"管理", "admin", "アドミン", "管理者"},
	"API":    {"インターフェース", "エンドポイント", "REST", "JSON"},
	"機能":     {"仕様", "フィーチャー", "feature", "設計", "実装", "要件"},
	"仕様":     {"機能", "spec", "specification", "設計書", "要件定義"},
	"急募":     {"緊急", "至急", "急ぎ", "urgent"},
}
