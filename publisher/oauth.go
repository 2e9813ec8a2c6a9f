package publisher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

const (
	// EnvClientID and EnvClientSecret identify the LinkedIn application used
	// for the OAuth flow.
	EnvClientID     = "LINKEDIN_CLIENT_ID"
	EnvClientSecret = "LINKEDIN_CLIENT_SECRET"
)

// Authorize runs the 3-legged OAuth flow: it prints the authorization URL,
// waits for the browser redirect on a localhost callback server, exchanges
// the code, and persists the access token to the .env file.
func Authorize(ctx context.Context, listenAddr, envPath string) (string, error) {
	clientID := os.Getenv(EnvClientID)
	clientSecret := os.Getenv(EnvClientSecret)
	if clientID == "" || clientSecret == "" {
		return "", fmt.Errorf("%s and %s must be set", EnvClientID, EnvClientSecret)
	}

	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     linkedin.Endpoint,
		RedirectURL:  "http://" + listenAddr + "/callback",
		Scopes:       []string{"w_member_social"},
	}

	state := uuid.New().String()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- errors.New("oauth state mismatch")
			return
		}
		if e := q.Get("error"); e != "" {
			http.Error(w, e, http.StatusBadRequest)
			errCh <- fmt.Errorf("oauth error: %s %s", e, q.Get("error_description"))
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "no authorization code", http.StatusBadRequest)
			errCh <- errors.New("callback carried no authorization code")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><h3>LinkedIn authorization complete.</h3>You can close this tab.</body></html>")
		codeCh <- code
	})

	srv := &http.Server{Addr: listenAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Open this URL in your browser to authorize LinkedIn access:\n\n  %s\n\n", cfg.AuthCodeURL(state))
	fmt.Printf("Waiting for the callback on http://%s/callback ...\n", listenAddr)

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange authorization code: %w", err)
	}

	if err := saveToken(envPath, tok.AccessToken); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// saveToken writes the access token into the .env file, preserving any other
// entries already there.
func saveToken(envPath, token string) error {
	env, err := godotenv.Read(envPath)
	if err != nil {
		env = map[string]string{}
	}
	env[EnvAccessToken] = token
	return godotenv.Write(env, envPath)
}
