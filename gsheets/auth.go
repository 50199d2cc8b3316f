package gsheets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const googleTokenURL = "https://oauth2.googleapis.com/token"

// authorizedUser is the stored OAuth token file layout (the same file the
// original gspread flow writes): client credentials plus a refresh token,
// with the last access token alongside.
type authorizedUser struct {
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	RefreshToken string    `json:"refresh_token"`
	Token        string    `json:"token"`
	Expiry       time.Time `json:"expiry"`
}

// tokenSource hands out a valid access token, refreshing it against the
// Google token endpoint when the stored one is stale.
type tokenSource struct {
	user     authorizedUser
	tokenURL string

	accessToken string
	expiry      time.Time
}

// loadTokenSource reads an authorized-user token file.
func loadTokenSource(filename string) (*tokenSource, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read token file %q: %w", filename, err)
	}
	var user authorizedUser
	if err := json.Unmarshal(content, &user); err != nil {
		return nil, fmt.Errorf("cannot decode token file %q: %w", filename, err)
	}
	if user.RefreshToken == "" {
		return nil, fmt.Errorf("token file %q has no refresh token", filename)
	}
	return &tokenSource{
		user:        user,
		tokenURL:    googleTokenURL,
		accessToken: user.Token,
		expiry:      user.Expiry,
	}, nil
}

// token returns a valid access token.
func (t *tokenSource) token() (string, error) {
	// a minute of slack so a token never expires mid-request
	if t.accessToken != "" && time.Now().Add(time.Minute).Before(t.expiry) {
		return t.accessToken, nil
	}

	form := url.Values{}
	form.Set("client_id", t.user.ClientID)
	form.Set("client_secret", t.user.ClientSecret)
	form.Set("refresh_token", t.user.RefreshToken)
	form.Set("grant_type", "refresh_token")

	resp, err := http.Post(t.tokenURL, "application/x-www-form-urlencoded",
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token refresh failed: %s: %s", resp.Status, body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("cannot decode token response: %w", err)
	}
	t.accessToken = payload.AccessToken
	t.expiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	return t.accessToken, nil
}

// authTransport injects the bearer token into every request.
type authTransport struct {
	src  *tokenSource
	base http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.src.token()
	if err != nil {
		return nil, err
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(clone)
}
