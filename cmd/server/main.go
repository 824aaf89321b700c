package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/hello-docker/internal/config"
	"github.com/janisto/hello-docker/internal/grpchealth"
	"github.com/janisto/hello-docker/internal/http/routes"
	"github.com/janisto/hello-docker/internal/platform/api"
	applog "github.com/janisto/hello-docker/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-docker/internal/platform/middleware"
	"github.com/janisto/hello-docker/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const serviceName = "hello-docker"

// shutdownTimeout bounds the graceful drain of the HTTP and gRPC servers, which run concurrently.
var shutdownTimeout = 10 * time.Second

func main() {
	code := 0
	if err := run(); err != nil {
		applog.LogError(context.Background(), "server exited with error", err)
		code = 1
	}
	if err := applog.Sync(); err != nil {
		// stdout cannot be fsynced on every platform; report and move on.
		fmt.Fprintf(os.Stderr, "logger sync error: %v\n", err)
	}
	os.Exit(code)
}

func run() error {
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applog.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpLn, err := net.Listen("tcp", cfg.HTTPAddr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.HTTPAddr(), err)
	}
	var grpcLn net.Listener
	if addr := cfg.GRPCAddr(); addr != "" {
		grpcLn, err = net.Listen("tcp", addr)
		if err != nil {
			_ = httpLn.Close()
			return fmt.Errorf("listen %s: %w", addr, err)
		}
	}

	return serve(ctx, newRouter(cfg), httpLn, grpcLn)
}

// newRouter assembles the middleware stack, error handlers and API routes.
func newRouter(cfg config.Config) *chi.Mux {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(api.DocPrefixes()...),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For / X-Real-IP; only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		applog.RequestLogger(cfg.ProjectID),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	routes.Register(api.New(router, Version))
	return router
}

func newHTTPServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// serve runs the HTTP server on httpLn, and the gRPC health server on grpcLn when it is
// non-nil, until ctx is cancelled or a server fails. Both are then shut down gracefully.
func serve(ctx context.Context, handler http.Handler, httpLn, grpcLn net.Listener) error {
	srv := newHTTPServer(handler)
	serveErr := make(chan error, 2)

	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", httpLn.Addr().String()))
		if err := srv.Serve(httpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("http serve: %w", err)
		}
	}()

	var healthSrv *grpchealth.Server
	if grpcLn != nil {
		healthSrv = grpchealth.New(serviceName)
		go func() {
			if err := healthSrv.Serve(grpcLn); err != nil {
				serveErr <- fmt.Errorf("grpc serve: %w", err)
			}
		}()
	}

	var failed error
	select {
	case failed = <-serveErr:
		applog.LogError(ctx, "listen failed", failed)
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var (
		wg      sync.WaitGroup
		grpcErr error
	)
	if healthSrv != nil {
		wg.Go(func() {
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				grpcErr = fmt.Errorf("grpc shutdown: %w", err)
			}
		})
	}
	var httpErr error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		httpErr = fmt.Errorf("http shutdown: %w", err)
	}
	wg.Wait()

	applog.LogInfo(context.Background(), "server exited")
	return errors.Join(failed, grpcErr, httpErr)
}
