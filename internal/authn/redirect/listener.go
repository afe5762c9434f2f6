package redirect

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	dErrors "flowauth/pkg/domain-errors"
)

// Completer receives the raw callback URI. Satisfied by *Correlator.
type Completer interface {
	Complete(callbackURI string) error
}

const callbackPath = "/callback"

// Listener is a loopback HTTP server that receives the redirect callback on
// hosts without deep-link plumbing (CLI and desktop applications). Each
// received callback is handed to the Completer.
type Listener struct {
	completer Completer
	addr      string
	logger    *slog.Logger

	srv *http.Server
	ln  net.Listener
}

// ListenerOption configures the Listener.
type ListenerOption func(*Listener)

func ListenerWithLogger(logger *slog.Logger) ListenerOption {
	return func(l *Listener) {
		l.logger = logger
	}
}

// NewListener creates a listener bound to addr, e.g. "127.0.0.1:8765".
// Use port 0 to let the OS choose.
func NewListener(completer Completer, addr string, opts ...ListenerOption) *Listener {
	l := &Listener{completer: completer, addr: addr}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Start binds the listener and begins serving in the background.
func (l *Listener) Start() error {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get(callbackPath, l.handleCallback)

	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "bind redirect listener")
	}
	l.ln = ln
	l.srv = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := l.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			l.logger.Error("redirect listener stopped", "error", err)
		}
	}()

	l.logger.Info("redirect listener started", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address once started.
func (l *Listener) Addr() string {
	if l.ln == nil {
		return l.addr
	}
	return l.ln.Addr().String()
}

// CallbackURL returns the URL external providers should redirect to.
func (l *Listener) CallbackURL() string {
	return "http://" + l.Addr() + callbackPath
}

// Shutdown stops serving, waiting for in-flight callbacks.
func (l *Listener) Shutdown(ctx context.Context) error {
	if l.srv == nil {
		return nil
	}
	return l.srv.Shutdown(ctx)
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	if err := l.completer.Complete(r.URL.String()); err != nil {
		l.logger.Warn("redirect callback rejected", "error", err)
		status := http.StatusConflict
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<html><body>Authentication continued. You may close this window.</body></html>")) //nolint:errcheck
}
