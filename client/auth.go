package client

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// ChallengeResponder supplies the one-time passcode tied to a login
// challenge. Implementations may block indefinitely; the default prompts
// on the controlling terminal.
type ChallengeResponder interface {
	RespondOTP(email, challengeID string) (string, error)
}

// ChallengeResponderFunc adapts a function to the ChallengeResponder interface
type ChallengeResponderFunc func(email, challengeID string) (string, error)

func (f ChallengeResponderFunc) RespondOTP(email, challengeID string) (string, error) {
	return f(email, challengeID)
}

type userStatusResponse struct {
	AccountStatus        string `json:"accountStatus"`
	AuthenticationMethod string `json:"authenticationMethod"`
}

type challengeResponse struct {
	ChallengeID string `json:"challengeId"`
}

type verifyResponse struct {
	Token string `json:"token"`
}

// Login runs the challenge/response login flow against the Dyson cloud.
// Every call redoes the whole flow: a fresh challenge is requested and the
// responder is asked for a fresh passcode. On success the returned bearer
// token is installed into the session headers; on any failure the session
// is left logged out and a typed error describes the failed step.
func (a *Account) Login(ctx context.Context) error {
	a.logged = false

	requestBody := map[string]string{"email": a.Email}

	// Step 1: check the account state and how it authenticates. Anything
	// other than an active EMAIL_PWD_2FA account aborts before prompting.
	var status userStatusResponse
	path := fmt.Sprintf("/v3/userregistration/email/userstatus?country=%s", url.QueryEscape(a.Country))
	if err := a.doJSON(ctx, http.MethodPost, path, requestBody, &status); err != nil {
		return fmt.Errorf("account status check: %w", err)
	}
	if status.AccountStatus != "ACTIVE" {
		return fmt.Errorf("account status check: %w (got %q)", ErrAccountInactive, status.AccountStatus)
	}
	if status.AuthenticationMethod != "EMAIL_PWD_2FA" {
		return fmt.Errorf("account status check: %w (got %q)", ErrUnsupportedAuthMethod, status.AuthenticationMethod)
	}

	// Step 2: initiate the challenge. The culture tag assumes an English
	// locale for the country, which is only right for en-* locales.
	var challenge challengeResponse
	path = fmt.Sprintf("/v3/userregistration/email/auth?country=%s&culture=en-%s",
		url.QueryEscape(a.Country), url.QueryEscape(a.Country))
	if err := a.doJSON(ctx, http.MethodPost, path, requestBody, &challenge); err != nil {
		return fmt.Errorf("challenge initiation: %w", err)
	}
	if challenge.ChallengeID == "" {
		return fmt.Errorf("challenge initiation: %w", ErrMissingChallengeID)
	}

	// Step 3: trade the passcode sent to the user for a bearer token
	otp, err := a.responder().RespondOTP(a.Email, challenge.ChallengeID)
	if err != nil {
		return fmt.Errorf("challenge response: %w", err)
	}

	var verified verifyResponse
	path = fmt.Sprintf("/v3/userregistration/email/verify?country=%s", url.QueryEscape(a.Country))
	verifyBody := map[string]string{
		"email":       a.Email,
		"password":    a.Password,
		"challengeId": challenge.ChallengeID,
		"otpCode":     otp,
	}
	if err := a.doJSON(ctx, http.MethodPost, path, verifyBody, &verified); err != nil {
		return fmt.Errorf("verification: %w", err)
	}
	if verified.Token == "" {
		return fmt.Errorf("verification: %w", ErrMissingToken)
	}

	a.UseAuthenticationToken(verified.Token)
	return nil
}

func (a *Account) responder() ChallengeResponder {
	if a.Responder != nil {
		return a.Responder
	}
	return stdinResponder{}
}

// stdinResponder reads the passcode from standard input. There is no
// timeout; the calling goroutine waits until a line is supplied.
type stdinResponder struct{}

func (stdinResponder) RespondOTP(email, challengeID string) (string, error) {
	fmt.Printf("Input the code sent to you by Dyson at %s: ", email)
	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read verification code: %w", err)
	}
	return strings.TrimSpace(code), nil
}
