package oauth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

// DefaultCallbackTimeout bounds how long the local server waits for the browser.
const DefaultCallbackTimeout = 5 * time.Minute

// portSearchSpan is how many ports above the configured one are tried.
const portSearchSpan = 10

// LocalServerFlow obtains a token by redirecting the browser to a local
// callback server.
type LocalServerFlow struct {
	// Port is the first port tried for the callback server.
	Port int
	// Timeout bounds the wait for the redirect. Zero uses DefaultCallbackTimeout.
	Timeout time.Duration
	// Out receives the user instructions.
	Out io.Writer
	// Browser opens the authorization URL. Nil uses OpenBrowser.
	Browser func(url string) error
}

// Authorize runs the flow and exchanges the returned code for a token.
func (f *LocalServerFlow) Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	state := RandomToken()
	verifier := RandomToken()

	server, err := ListenCallback(f.Port, portSearchSpan, state)
	if err != nil {
		return nil, fmt.Errorf("%w: %v (try --noauth-local-webserver)", domain.ErrAuthRequired, err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			logger.Debug("Stopping callback server: %v", err)
		}
	}()

	flowCfg := *cfg
	flowCfg.RedirectURL = server.RedirectURL()
	authURL := flowCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))

	browser := f.Browser
	if browser == nil {
		browser = OpenBrowser
	}
	out := writerOrStderr(f.Out)
	if err := browser(authURL); err != nil {
		logger.Debug("Opening browser: %v", err)
		fmt.Fprintf(out, "Go to the following link in your browser:\n\n    %s\n\n", authURL)
	} else {
		fmt.Fprintf(out, "Your browser has been opened to visit:\n\n    %s\n\n", authURL)
	}
	fmt.Fprintln(out, "If your browser is on a different machine, exit and re-run with --noauth-local-webserver.")

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultCallbackTimeout
	}
	code, err := server.Wait(ctx, timeout)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) || errors.Is(err, domain.ErrAuthInvalid) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthRequired, err)
	}

	token, err := flowCfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("%w: exchange code: %v", domain.ErrAuthInvalid, err)
	}
	return token, nil
}

// PasteCodeFlow asks the user to open the authorization URL themselves and
// paste back the code (or the whole redirected URL).
type PasteCodeFlow struct {
	// RedirectURL is registered with the request. Empty uses http://localhost.
	RedirectURL string
	In          io.Reader
	Out         io.Writer
	// IsTerminal reports whether In is interactive. Nil checks stdin.
	IsTerminal func() bool
}

// Authorize prompts for the code and exchanges it for a token.
func (f *PasteCodeFlow) Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	isTerminal := f.IsTerminal
	if isTerminal == nil {
		isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	}
	if !isTerminal() {
		return nil, fmt.Errorf("%w: no stored credentials and stdin is not a terminal", domain.ErrAuthRequired)
	}

	state := RandomToken()
	verifier := RandomToken()

	flowCfg := *cfg
	flowCfg.RedirectURL = f.RedirectURL
	if flowCfg.RedirectURL == "" {
		flowCfg.RedirectURL = "http://localhost"
	}
	authURL := flowCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))

	out := writerOrStderr(f.Out)
	fmt.Fprintf(out, "Go to the following link in your browser:\n\n    %s\n\n", authURL)
	fmt.Fprint(out, "Enter verification code (or the full redirected URL): ")

	in := f.In
	if in == nil {
		in = os.Stdin
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read verification code: %w", err)
	}

	code, err := ParseCode(line, state)
	if err != nil {
		return nil, err
	}

	token, err := flowCfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("%w: exchange code: %v", domain.ErrAuthInvalid, err)
	}
	return token, nil
}

// ParseCode extracts the authorization code from user input, which may be
// the bare code or the redirected URL carrying code and state parameters.
func ParseCode(input, expectedState string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: no verification code entered", domain.ErrAuthRequired)
	}

	if !strings.Contains(input, "code=") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("%w: parse redirected URL: %v", domain.ErrInvalidInput, err)
	}
	query := u.Query()
	if u.RawQuery == "" {
		query, _ = url.ParseQuery(input)
	}
	if state := query.Get("state"); state != "" && state != expectedState {
		return "", fmt.Errorf("%w: state mismatch in redirected URL", domain.ErrAuthInvalid)
	}
	code := query.Get("code")
	if code == "" {
		return "", fmt.Errorf("%w: redirected URL has no code", domain.ErrAuthRequired)
	}
	return code, nil
}

func writerOrStderr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}
