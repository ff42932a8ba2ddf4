// Package googleauth builds the authenticated client option shared by the
// Drive and Sheets adapters. The credential is either a static bearer token
// (already scoped by whoever minted it) or service-account JSON from which a
// JWT client is derived for the requested scopes.
package googleauth

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// ClientOption returns the credential option for a Google API client.
// Precedence: explicit bearer token, then service-account JSON. An absent
// credential is a configuration error, surfaced here so every adapter fails
// at construction rather than on first call.
func ClientOption(ctx context.Context, accessToken string, credentialsJSON []byte, scopes ...string) (option.ClientOption, error) {
	if accessToken != "" {
		return option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})), nil
	}

	if len(credentialsJSON) > 0 {
		config, err := google.JWTConfigFromJSON(credentialsJSON, scopes...)
		if err != nil {
			return nil, fmt.Errorf("parsing service account credentials: %w", err)
		}
		return option.WithHTTPClient(config.Client(ctx)), nil
	}

	return nil, fmt.Errorf("google credentials are required: set an access token or service account JSON")
}

// LoadCredentials reads service-account JSON from the conventional
// environment variables: GOOGLE_APPLICATION_CREDENTIALS names a file,
// GOOGLE_CREDENTIALS carries the JSON inline. Absence returns nil, which
// ClientOption treats as a configuration error unless a token is supplied.
func LoadCredentials() ([]byte, error) {
	if path := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); path != "" {
		creds, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading credentials file: %w", err)
		}
		return creds, nil
	}
	if inline := os.Getenv("GOOGLE_CREDENTIALS"); inline != "" {
		return []byte(inline), nil
	}
	return nil, nil
}
