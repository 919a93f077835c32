// Package oauth runs the user-facing half of the Google authorization flow:
// a local callback server, browser launching and the paste-code prompt.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

// callbackResult is the outcome of the first redirect the server sees.
type callbackResult struct {
	code string
	err  error
}

// CallbackServer receives the authorization redirect on a loopback port.
// Only requests to "/" carrying code or error count as redirects, and only
// the first of those is kept; later ones are answered but ignored.
type CallbackServer struct {
	state    string
	listener net.Listener
	server   *http.Server
	results  chan callbackResult
	stopOnce sync.Once
}

// ListenCallback binds the first free loopback port in
// [firstPort, firstPort+span] and starts serving redirects for state.
// A firstPort of 0 lets the kernel pick.
func ListenCallback(firstPort, span int, state string) (*CallbackServer, error) {
	listener, err := listenLoopback(firstPort, span)
	if err != nil {
		return nil, err
	}

	s := &CallbackServer{
		state:    state,
		listener: listener,
		results:  make(chan callbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", s.handleRedirect)
	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.deliver(callbackResult{err: fmt.Errorf("callback server: %w", err)})
		}
	}()

	return s, nil
}

func listenLoopback(firstPort, span int) (net.Listener, error) {
	if firstPort == 0 {
		return net.Listen("tcp", "127.0.0.1:0")
	}

	var lastErr error
	for port := firstPort; port <= firstPort+span; port++ {
		listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
		if err == nil {
			return listener, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no free port in %d-%d: %w", firstPort, firstPort+span, lastErr)
}

func (s *CallbackServer) handleRedirect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("code") && !query.Has("error") {
		// Not an authorization redirect.
		http.Error(w, "waiting for the authorization redirect", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var result callbackResult
	switch {
	case query.Get("error") != "":
		result.err = fmt.Errorf("%w: authorization denied: %s %s",
			domain.ErrAuthRequired, query.Get("error"), query.Get("error_description"))
	case query.Get("state") != s.state:
		result.err = fmt.Errorf("%w: state mismatch in authorization callback", domain.ErrAuthInvalid)
	case query.Get("code") == "":
		result.err = fmt.Errorf("%w: no authorization code in callback", domain.ErrAuthRequired)
	default:
		result.code = query.Get("code")
	}

	s.deliver(result)

	if result.err != nil {
		_, _ = fmt.Fprint(w, resultPage("Authorization failed", html.EscapeString(result.err.Error())))
		return
	}
	_, _ = fmt.Fprint(w, resultPage("The authentication flow has completed.", "You may close this window."))
}

func (s *CallbackServer) deliver(result callbackResult) {
	select {
	case s.results <- result:
	default:
	}
}

// Wait blocks until a redirect arrives, the timeout elapses or ctx is done.
func (s *CallbackServer) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case result := <-s.results:
		return result.code, result.err
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for authorization callback: %w", ctx.Err())
	}
}

// Close shuts the server down. It is safe to call more than once.
func (s *CallbackServer) Close() error {
	var err error
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.server.Shutdown(ctx)
		// Serve may not have taken ownership of the listener yet.
		_ = s.listener.Close()
	})
	return err
}

// Port is the bound port.
func (s *CallbackServer) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// RedirectURL is registered as the OAuth redirect for this server.
func (s *CallbackServer) RedirectURL() string {
	return fmt.Sprintf("http://localhost:%d/", s.Port())
}

func resultPage(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>tap-sheets authorization</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 20vh">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`, title, message)
}

// OpenBrowser asks the desktop to open url.
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler"}
	case "linux", "freebsd", "openbsd", "netbsd":
		name = "xdg-open"
	default:
		return fmt.Errorf("cannot open a browser on %s", runtime.GOOS)
	}

	return exec.Command(name, append(args, url)...).Start()
}

// RandomToken returns 32 random bytes, base64url encoded without padding.
// It serves as both OAuth state and PKCE verifier.
func RandomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
