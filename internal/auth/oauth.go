package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// googleUserInfoURL is Google's OpenID Connect userinfo endpoint.
const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// GoogleUser is the slice of the userinfo response we keep.
//
// Subject ("sub") is Google's stable account identifier — it never changes
// for a given account, unlike email, which users can swap. The app keys
// user records on it.
type GoogleUser struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`   // may be absent if the scope was denied
	Picture string `json:"picture"` // profile image URL
}

// GoogleProvider wraps golang.org/x/oauth2 for the Google Authorization
// Code flow.
//
// THE FLOW:
//  1. We redirect the browser to Google's consent page (AuthURL).
//  2. Google redirects back to our callback with a short-lived code.
//  3. We exchange the code for an access token, server-to-server, using
//     the client secret — the token never touches the browser.
//  4. We call the userinfo endpoint with the token to learn who signed in.
type GoogleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider creates a provider for the given OAuth client.
// Register the client at https://console.cloud.google.com/apis/credentials;
// callbackURL must match a configured redirect URI exactly.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL returns the consent-page URL for the given CSRF state value.
// The caller stores state in a short-lived cookie and verifies it on
// callback — that proves the callback belongs to a flow we started.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for the signed-in user's profile.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging OAuth code: %w", err)
	}

	// config.Client returns an *http.Client that attaches the bearer token
	// to every request.
	client := p.config.Client(ctx, token)

	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("auth: calling Google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: Google userinfo returned status %d", resp.StatusCode)
	}

	var profile GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("auth: decoding Google userinfo: %w", err)
	}

	if profile.Subject == "" {
		return nil, fmt.Errorf("auth: Google returned a profile without a subject")
	}

	return &profile, nil
}
