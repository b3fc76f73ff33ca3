package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
)

// ErrListen is what ListenFailureServer returns from ListenAndServe.
var ErrListen = errors.New("listen failure")

// FakeHTTPServer stands in for the server's HTTP listener.
// ListenAndServe returns ListenErr at once; http.ErrServerClosed mimics a clean stop.
// When Unblock is set, Shutdown waits for it or for ctx, whichever comes first.
type FakeHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Unblock     chan struct{}

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
}

// ListenFailureServer fails to bind, as when the port is taken.
func ListenFailureServer() *FakeHTTPServer {
	return &FakeHTTPServer{ListenErr: ErrListen}
}

// ClosedServer reports a clean stop, as after a graceful shutdown.
func ClosedServer() *FakeHTTPServer {
	return &FakeHTTPServer{ListenErr: http.ErrServerClosed}
}

func (s *FakeHTTPServer) ListenAndServe() error {
	s.listenCalls.Add(1)
	return s.ListenErr
}

func (s *FakeHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls.Add(1)
	if s.Unblock != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Unblock:
		}
	}
	return s.ShutdownErr
}

func (s *FakeHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *FakeHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// ListenCalls counts ListenAndServe calls; safe to read while the server goroutine runs.
func (s *FakeHTTPServer) ListenCalls() int { return int(s.listenCalls.Load()) }

// ShutdownCalls counts Shutdown calls.
func (s *FakeHTTPServer) ShutdownCalls() int { return int(s.shutdownCalls.Load()) }
