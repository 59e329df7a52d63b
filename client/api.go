package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError represents an unexpected response from the Dyson cloud API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Dyson API error: %s", e.Message)
	}
	return fmt.Sprintf("Dyson API error: status code %d", e.StatusCode)
}

// Common Dyson API errors
var (
	ErrAccountInactive       = &APIError{Message: "account is not active"}
	ErrUnsupportedAuthMethod = &APIError{Message: "account uses an unsupported authentication method"}
	ErrMissingChallengeID    = &APIError{Message: "challenge response carried no challengeId"}
	ErrMissingToken          = &APIError{Message: "verify response carried no token"}

	ErrNotLoggedIn = errors.New("not logged in to Dyson web services")
)

// doJSON sends a request carrying the session headers and decodes the JSON
// response body into out. A response status other than 200 is returned as
// an *APIError; nothing is retried.
func (a *Account) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range a.headers {
		req.Header.Set(key, value)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if a.Debug {
		fmt.Printf("[DEBUG] %s %s -> %d\n", method, path, resp.StatusCode)
		fmt.Printf("[DEBUG] Response body: %s\n", string(data))
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
