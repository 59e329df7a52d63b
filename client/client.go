package client

import (
	"net/http"
	"time"
)

// Dyson cloud API constants
const (
	DysonAPIBaseURL = "https://appapi.cp.dyson.com"

	// The cloud API rejects requests that do not look like the mobile app.
	// Any stable string works; this one matches the official Android client.
	defaultUserAgent = "Dalvik/2.1.0 (Linux; U; Android 12; sdk_gphone64_x86_64 Build/S2B2.211203.006)"
)

// Account represents a Dyson cloud account session
type Account struct {
	// Credentials
	Email    string
	Password string
	Country  string // 2-letter country code

	// Responder supplies the one-time passcode during login. When nil,
	// the session prompts on the controlling terminal.
	Responder ChallengeResponder

	// Debug mode
	Debug bool

	// Session state
	headers map[string]string
	logged  bool

	// HTTP client
	baseURL    string
	httpClient *http.Client
}

// NewAccount creates a new Dyson account session with default settings
func NewAccount(email, password, country string) *Account {
	return &Account{
		Email:    email,
		Password: password,
		Country:  country,
		headers: map[string]string{
			"Content-Type": "application/json",
			"User-Agent":   defaultUserAgent,
		},
		baseURL: DysonAPIBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// UseAuthenticationToken installs a bearer token into the session headers
// and marks the session as logged in. The token is not validated locally;
// the server judges it on the next call that carries these headers.
func (a *Account) UseAuthenticationToken(token string) {
	a.headers["Authorization"] = "Bearer " + token
	a.logged = true
}

// Logged reports whether the session holds a bearer token
func (a *Account) Logged() bool {
	return a.logged
}
