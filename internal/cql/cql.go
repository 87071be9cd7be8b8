// Package cql builds Confluence Query Language strings. CQL is the remote
// API's language; queries are assembled by substitution and treated as opaque
// strings from there on. Nesting never goes beyond one group of ANDs or ORs
// scoped to a space.
package cql

import "strings"

// Expr is one comparison or a parenthesized group.
type Expr string

// TitleContains matches pages whose title contains the term.
func TitleContains(term string) Expr {
	return Expr(`title ~ "` + escape(term) + `"`)
}

// TextContains matches pages whose text contains the term.
func TextContains(term string) Expr {
	return Expr(`text ~ "` + escape(term) + `"`)
}

// And groups expressions into an AND conjunction.
func And(exprs ...Expr) Expr {
	return group(exprs, " AND ")
}

// Or groups expressions into an OR disjunction.
func Or(exprs ...Expr) Expr {
	return group(exprs, " OR ")
}

func group(exprs []Expr, sep string) Expr {
	if len(exprs) == 1 {
		return exprs[0]
	}
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = string(e)
	}
	return Expr("(" + strings.Join(parts, sep) + ")")
}

// InSpace scopes the expression to a space and renders the final query.
func (e Expr) InSpace(key string) string {
	return string(e) + ` and space = "` + escape(key) + `"`
}

// RecentInSpace renders the last-resort query: every page in the space,
// most recently modified first.
func RecentInSpace(key string) string {
	return `space = "` + escape(key) + `" order by lastModified desc`
}

// escape backslash-escapes quotes so user text cannot terminate the clause.
func escape(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	return strings.ReplaceAll(term, `"`, `\"`)
}
