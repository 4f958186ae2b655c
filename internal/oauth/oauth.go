// Package oauth authorizes read access to a Gmail mailbox and caches the
// resulting token in the system keyring.
package oauth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/browser"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"go.withmatt.com/mailflow/internal/log"
)

const (
	callbackPath   = "/oauth2callback"
	keyringService = "go.withmatt.com/mailflow"
	callbackWait   = 2 * time.Minute
)

// Credentials identify the desktop OAuth client.
type Credentials struct {
	ClientID     string `env:"MAILFLOW_GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"MAILFLOW_GOOGLE_CLIENT_SECRET"`
}

// Config builds the OAuth config from the environment. Only the read-only
// Gmail scope is requested.
func Config() (*oauth2.Config, error) {
	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return nil, err
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, errors.New(
			"MAILFLOW_GOOGLE_CLIENT_ID and MAILFLOW_GOOGLE_CLIENT_SECRET must be set",
		)
	}
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailReadonlyScope},
	}, nil
}

// GetClient returns an authorized HTTP client for email, running the browser
// flow when no usable token is cached.
func GetClient(ctx context.Context, email string) (*http.Client, error) {
	cfg, err := Config()
	if err != nil {
		return nil, err
	}
	return getClient(ctx, cfg, email)
}

// Service returns a Gmail API service authorized for email.
func Service(ctx context.Context, email string) (*gmail.Service, error) {
	client, err := GetClient(ctx, email)
	if err != nil {
		return nil, err
	}
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create gmail service: %w", err)
	}
	return srv, nil
}

func getClient(
	ctx context.Context,
	oauthCfg *oauth2.Config,
	email string,
) (*http.Client, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("missing email for oauth")
	}

	tok, err := tokenFromKeyring(email)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		log.Printf("No token found for %s, starting authentication...", email)
		tok, err = authorize(ctx, oauthCfg, email)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("unable to load oauth token from keyring: %w", err)
	}

	tokenSource := oauthCfg.TokenSource(ctx, tok)
	newTok, err := tokenSource.Token()
	if err != nil {
		log.Printf("Token refresh failed for %s, re-authenticating...", email)
		tok, err = authorize(ctx, oauthCfg, email)
		if err != nil {
			return nil, err
		}
		tokenSource = oauthCfg.TokenSource(ctx, tok)
	} else if newTok.AccessToken != tok.AccessToken {
		if err := saveTokenToKeyring(email, newTok); err != nil {
			log.Printf("Unable to cache oauth token in keyring: %v", err)
		}
	}

	return oauth2.NewClient(ctx, tokenSource), nil
}

func authorize(ctx context.Context, cfg *oauth2.Config, email string) (*oauth2.Token, error) {
	tok, err := getTokenFromWeb(ctx, cfg, email)
	if err != nil {
		return nil, err
	}
	if err := saveTokenToKeyring(email, tok); err != nil {
		log.Printf("Unable to cache oauth token in keyring: %v", err)
	}
	return tok, nil
}

func getTokenFromWeb(
	ctx context.Context,
	config *oauth2.Config,
	email string,
) (*oauth2.Token, error) {
	if config == nil {
		return nil, errors.New("missing oauth config")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("unable to start oauth callback server: %w", err)
	}
	defer listener.Close()

	cfg := *config
	cfg.RedirectURL = fmt.Sprintf("http://%s%s", listener.Addr().String(), callbackPath)

	state, err := randomState()
	if err != nil {
		return nil, err
	}
	pkceVerifier, pkceChallenge, err := generatePKCE()
	if err != nil {
		return nil, err
	}

	authURL := cfg.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("login_hint", email),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("code_challenge", pkceChallenge),
	)

	log.Infof("Authentication required for %s", email)
	if err := browser.OpenURL(authURL); err != nil {
		log.Infof("Open this URL to authorize: %v", authURL)
	} else {
		log.Infof("If your browser does not open, visit: %v", authURL)
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	server := &http.Server{
		Handler:           callbackHandler(state, codeCh, errCh),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			trySend(errCh, err)
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	waitCtx, cancel := context.WithTimeout(ctx, callbackWait)
	defer cancel()

	select {
	case code := <-codeCh:
		tok, err := cfg.Exchange(
			ctx,
			code,
			oauth2.SetAuthURLParam("code_verifier", pkceVerifier),
		)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-waitCtx.Done():
		return nil, errors.New("timed out waiting for oauth callback")
	}
}

// callbackHandler accepts exactly one redirect carrying the expected state.
func callbackHandler(state string, codeCh chan<- string, errCh chan<- error) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state {
			http.Error(w, "Invalid state parameter.", http.StatusBadRequest)
			trySend(errCh, errors.New("oauth state mismatch"))
			return
		}
		if errText := query.Get("error"); errText != "" {
			http.Error(w, errText, http.StatusBadRequest)
			trySend(errCh, fmt.Errorf("oauth error: %s", errText))
			return
		}
		code := query.Get("code")
		if code == "" {
			http.Error(w, "Missing code parameter.", http.StatusBadRequest)
			trySend(errCh, errors.New("oauth callback missing code"))
			return
		}
		_, _ = w.Write([]byte("mailflow authentication complete. You can close this window."))
		trySend(codeCh, code)
	})
	return mux
}

func trySend[T any](ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func generatePKCE() (string, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("unable to generate PKCE verifier: %w", err)
	}
	verifier := base64.RawURLEncoding.EncodeToString(buf)
	sum := sha256.Sum256([]byte(verifier))
	challenge := base64.RawURLEncoding.EncodeToString(sum[:])
	return verifier, challenge, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("unable to generate oauth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func tokenFromKeyring(email string) (*oauth2.Token, error) {
	value, err := keyring.Get(keyringService, keyringAccount(email))
	if err != nil {
		return nil, err
	}

	var tok oauth2.Token
	if err := json.Unmarshal([]byte(value), &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func saveTokenToKeyring(email string, token *oauth2.Token) error {
	if token == nil {
		return errors.New("missing oauth token")
	}
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	log.Printf("Saving credential to keyring for: %s", email)
	return keyring.Set(keyringService, keyringAccount(email), string(data))
}

// DeleteToken forgets the cached token for email.
func DeleteToken(email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	if err := keyring.Delete(keyringService, keyringAccount(email)); err != nil &&
		!errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("unable to delete token from keyring: %w", err)
	}
	return nil
}

func keyringAccount(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
