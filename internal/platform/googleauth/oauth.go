// Package googleauth obtains an authorized HTTP client for Google APIs from a
// downloaded OAuth client secret and a cached token file.
package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	callbackPort = "6789"
	authTimeout  = 5 * time.Minute
)

type Options struct {
	CredentialsPath string
	TokenPath       string
	Scopes          []string
	// Prompt receives the consent URL when no cached token exists.
	Prompt io.Writer
	Logger *slog.Logger
}

func loadConfig(opts Options) (*oauth2.Config, error) {
	b, err := os.ReadFile(opts.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read client secret %s: %w", opts.CredentialsPath, err)
	}
	cfg, err := google.ConfigFromJSON(b, opts.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secret: %w", err)
	}
	cfg.RedirectURL = "http://localhost:" + callbackPort + "/oauth2callback"
	return cfg, nil
}

// Client returns an HTTP client that refreshes its token automatically. The
// first run walks the user through the browser consent flow.
func Client(ctx context.Context, opts Options) (*http.Client, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	tok, err := readToken(opts.TokenPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		tok, err = tokenFromWeb(ctx, cfg, opts.Prompt)
		if err != nil {
			return nil, fmt.Errorf("authorize: %w", err)
		}
		if err := writeToken(opts.TokenPath, tok); err != nil {
			return nil, err
		}
	}

	src := cfg.TokenSource(ctx, tok)
	fresh, err := src.Token()
	if err == nil && (fresh.AccessToken != tok.AccessToken || fresh.RefreshToken != tok.RefreshToken) {
		if err := writeToken(opts.TokenPath, fresh); err != nil && opts.Logger != nil {
			opts.Logger.Warn("token cache write failed", "path", opts.TokenPath, "err", err)
		}
	}
	return oauth2.NewClient(ctx, src), nil
}

func tokenFromWeb(ctx context.Context, cfg *oauth2.Config, prompt io.Writer) (*oauth2.Token, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	lis, err := net.Listen("tcp", "localhost:"+callbackPort)
	if err != nil {
		return nil, fmt.Errorf("listen for oauth callback: %w", err)
	}
	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "authorization code not found", http.StatusBadRequest)
				select {
				case errCh <- fmt.Errorf("authorization code missing from redirect"):
				default:
				}
				return
			}
			_, _ = fmt.Fprintln(w, "zenith is authorized. You can close this window.")
			select {
			case codeCh <- code:
			default:
			}
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errCh <- err:
			default:
			}
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	authURL := cfg.AuthCodeURL("zenith", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	if prompt != nil {
		_, _ = fmt.Fprintf(prompt, "Open this URL to authorize Google Calendar access:\n%s\n", authURL)
	}

	select {
	case code := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return cfg.Exchange(exchangeCtx, code)
	case err := <-errCh:
		return nil, err
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("authorization timed out")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", path, err)
	}
	return tok, nil
}

func writeToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write token %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
