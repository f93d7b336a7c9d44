package auth

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	appLog "github.com/hamzaafridi/ocalcli/internal/log"
)

const (
	graphTokenFile  = "graph_token.json"
	googleTokenFile = "google_token.json"
)

// CacheDir returns the directory holding cached tokens, creating it if
// needed. OCALCLI_CONFIG_DIR overrides the default user config location.
func CacheDir() (string, error) {
	if env := os.Getenv("OCALCLI_CONFIG_DIR"); env != "" {
		if err := os.MkdirAll(env, 0o700); err != nil {
			return "", err
		}
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "ocalcli")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// saveToken writes a token to the cache with 0600 permissions.
func saveToken(name string, tok *oauth2.Token) error {
	dir, err := CacheDir()
	if err != nil {
		return err
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o600)
}

// loadToken reads a cached token; a missing file surfaces as the underlying
// fs error for the caller to translate.
func loadToken(name string) (*oauth2.Token, error) {
	dir, err := CacheDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func removeToken(name string) error {
	dir, err := CacheDir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, name))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// persistingSource wraps a token source and writes refreshed tokens back to
// the cache so the next invocation starts from the newest refresh token.
type persistingSource struct {
	name string
	src  oauth2.TokenSource
	last string
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != p.last {
		p.last = tok.AccessToken
		if serr := saveToken(p.name, tok); serr != nil {
			// Not fatal: the token still works for this invocation.
			appLog.Error("token cache save failed", serr, "file", p.name)
		}
	}
	return tok, nil
}
