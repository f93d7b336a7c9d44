package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const googleRedirectAddr = "127.0.0.1:8473"

// googleConfig parses an OAuth client secrets file into an oauth2 config
// scoped for calendar access.
func googleConfig(credentialsPath string) (*oauth2.Config, error) {
	if credentialsPath == "" {
		return nil, errors.New("no google_credentials configured; run 'ocalcli configure' first")
	}
	secrets, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}
	conf, err := google.ConfigFromJSON(secrets, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}
	conf.RedirectURL = "http://" + googleRedirectAddr + "/callback"
	return conf, nil
}

// GoogleLogin runs the localhost-redirect authorization flow and caches the
// token. The callback server binds to loopback only.
func GoogleLogin(ctx context.Context, credentialsPath string) error {
	conf, err := googleConfig(credentialsPath)
	if err != nil {
		return err
	}

	state, err := stateToken()
	if err != nil {
		return err
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- errors.New("state token mismatch")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "code missing", http.StatusBadRequest)
			errCh <- errors.New("authorization code missing from callback")
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this window.")
		codeCh <- code
	})

	server := &http.Server{Addr: googleRedirectAddr, Handler: mux}
	go func() {
		if serr := server.ListenAndServe(); serr != nil && serr != http.ErrServerClosed {
			errCh <- serr
		}
	}()
	defer server.Close()

	url := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Open the following link in your browser:\n%s\n", url)
	fmt.Fprintln(os.Stderr, "Waiting for authentication...")

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	return saveToken(googleTokenFile, tok)
}

// GoogleClientOptions returns the API client options carrying the cached
// token, refreshing and re-persisting it as needed.
func GoogleClientOptions(ctx context.Context, credentialsPath string) ([]option.ClientOption, error) {
	conf, err := googleConfig(credentialsPath)
	if err != nil {
		return nil, err
	}
	tok, err := loadToken(googleTokenFile)
	if err != nil {
		return nil, errors.New("not signed in; run 'ocalcli login' first")
	}
	src := &persistingSource{
		name: googleTokenFile,
		src:  conf.TokenSource(ctx, tok),
		last: tok.AccessToken,
	}
	return []option.ClientOption{option.WithTokenSource(src)}, nil
}

// GoogleLogout drops the cached Google token.
func GoogleLogout() error {
	return removeToken(googleTokenFile)
}

func stateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
