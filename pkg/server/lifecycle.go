package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// shutdownGrace bounds how long the HTTP transport waits for in-flight
// requests to drain after an interrupt/terminate signal before
// returning, per spec.md's "drain in-flight requests up to a small
// grace period, then kill lingering children" — lingering subprocess
// children are killed by pkg/runner's own context-cancellation path
// once Run's context is cancelled.
const shutdownGrace = 10 * time.Second

// errShutdownRequested signals a clean SIGINT/SIGTERM-triggered stop,
// distinguishing it from a real transport failure when unwound through
// errgroup.
var errShutdownRequested = errors.New("shutdown requested")

// Run starts serving on the transport named by b.Config.Server.Transport
// ("stdio" or "streamable-http") and blocks until ctx is cancelled or a
// SIGINT/SIGTERM is received. SIGHUP triggers Reload without
// interrupting the running transport. The signal watcher and the
// transport loop run as joined errgroup members so a failure in either
// tears down the other.
func (b *Bundle) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sig)

		for {
			select {
			case <-gctx.Done():
				return nil
			case s := <-sig:
				if s == syscall.SIGHUP {
					if err := b.Reload(); err != nil {
						b.Log.Named("server").Error("reload failed, keeping previous configuration", zap.Error(err))
					}
					continue
				}
				b.Log.Named("server").Info("received shutdown signal", zap.String("signal", s.String()))
				return errShutdownRequested
			}
		}
	})

	g.Go(func() error {
		return b.serve(gctx)
	})

	err := g.Wait()

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if shutdownErr := b.Shutdown(drainCtx); shutdownErr != nil {
		b.Log.Named("server").Error("shutdown cleanup failed", zap.Error(shutdownErr))
	}

	if err == nil || errors.Is(err, errShutdownRequested) {
		return nil
	}
	return fmt.Errorf("server run: %w", err)
}

func (b *Bundle) serve(ctx context.Context) error {
	switch b.Config.Server.Transport {
	case "streamable-http":
		return b.serveHTTP(ctx)
	default:
		return b.serveStdio(ctx)
	}
}

func (b *Bundle) serveStdio(ctx context.Context) error {
	t := &mcp.LoggingTransport{Transport: &mcp.StdioTransport{}, Writer: os.Stderr}
	return b.MCP.Run(ctx, t)
}

func (b *Bundle) serveHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return b.MCP
	}, nil)

	addr := fmt.Sprintf("%s:%d", b.Config.Server.Host, b.Config.Server.Port)
	httpServer := &http.Server{Addr: addr, Handler: b.sessionMiddleware(handler)}

	errc := make(chan error, 1)
	go func() {
		b.Log.Named("server").Info("listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
			return
		}
		errc <- nil
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
