// Command vitrine-mockstore serves the in-process fake storefront over HTTP so
// vitrine can run without a real shop.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/vitrine/internal/logging"
	"github.com/five82/vitrine/internal/storefront/storefronttest"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:8787", "listen address")
	token := flag.String("token", "", "required storefront access token (optional)")
	apiVersion := flag.String("api-version", storefronttest.DefaultAPIVersion, "API version in the GraphQL path")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	log := logging.New(logging.Config{Level: *logLevel, Format: "console", Output: os.Stderr})

	backend := storefronttest.NewBackend(storefronttest.Options{
		StorefrontToken: *token,
		Secret:          []byte(os.Getenv("VITRINE_MOCK_SECRET")),
		APIVersion:      *apiVersion,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           backend.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("address", *addr).
			Str("endpoint", "http://"+*addr+backend.GraphQLPath()).
			Msg("mock storefront listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "vitrine-mockstore: %v\n", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "vitrine-mockstore: shutdown: %v\n", err)
		return 1
	}
	return 0
}
