// Package auth acquires and caches OAuth2 tokens for the calendar
// providers: a device-code flow for the Graph backend and a localhost
// redirect flow for Google. Tokens live as JSON files under the config
// directory with 0600 permissions.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
)

// graphScopes covers calendar read/write plus a refresh token.
var graphScopes = []string{
	"https://graph.microsoft.com/Calendars.ReadWrite",
	"offline_access",
}

// graphConfig builds the oauth2 endpoints for the given tenant. The
// "organizations" pseudo-tenant maps to the shared "common" authority.
func graphConfig(clientID, tenant string) *oauth2.Config {
	if tenant == "" || tenant == "organizations" {
		tenant = "common"
	}
	authority := "https://login.microsoftonline.com/" + tenant
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   graphScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:       authority + "/oauth2/v2.0/authorize",
			TokenURL:      authority + "/oauth2/v2.0/token",
			DeviceAuthURL: authority + "/oauth2/v2.0/devicecode",
		},
	}
}

// GraphLogin runs the device-code flow and caches the resulting token.
// Instructions go to stderr so stdout stays clean for command output.
func GraphLogin(ctx context.Context, clientID, tenant string) error {
	if clientID == "" {
		return fmt.Errorf("no client_id configured; run 'ocalcli configure' first")
	}
	conf := graphConfig(clientID, tenant)

	da, err := conf.DeviceAuth(ctx)
	if err != nil {
		return fmt.Errorf("initiate device flow: %w", err)
	}

	fmt.Fprintf(os.Stderr, "To sign in, open %s and enter the code %s\n", da.VerificationURI, da.UserCode)
	fmt.Fprintln(os.Stderr, "Waiting for authentication...")

	tok, err := conf.DeviceAccessToken(ctx, da)
	if err != nil {
		return fmt.Errorf("device flow: %w", err)
	}
	return saveToken(graphTokenFile, tok)
}

// GraphClient returns an HTTP client that attaches and silently refreshes
// the cached Graph token. It fails if no login has happened yet.
func GraphClient(ctx context.Context, clientID, tenant string) (*http.Client, error) {
	tok, err := loadToken(graphTokenFile)
	if err != nil {
		return nil, fmt.Errorf("not signed in; run 'ocalcli login' first")
	}
	conf := graphConfig(clientID, tenant)
	src := &persistingSource{
		name: graphTokenFile,
		src:  conf.TokenSource(ctx, tok),
		last: tok.AccessToken,
	}
	return oauth2.NewClient(ctx, src), nil
}

// GraphLogout drops the cached Graph token.
func GraphLogout() error {
	return removeToken(graphTokenFile)
}
