// Package sdk is a Go client for the specbot HTTP API.
//
// A Client talks to a running specbot server:
//
//	client := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	resp, err := client.Ask(ctx, "ログイン機能の仕様は？", 0)
//
// Errors returned by the server carry the HTTP status and API error code via
// *APIError.
package sdk
