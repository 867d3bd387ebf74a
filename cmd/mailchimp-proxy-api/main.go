// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// The mailchimp-proxy-api binary serves the list and member CRUD API backed
// by NATS JetStream key-value storage and the MailChimp Marketing API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mailsync-io/mailchimp-proxy-service/cmd/mailchimp-proxy-api/api"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/port"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/infrastructure/mailchimp"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/infrastructure/mock"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/infrastructure/nats"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/service"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/validation"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/constants"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/log"
)

type config struct {
	Port string `env:"PORT" envDefault:"8080"`

	NATSURL          string        `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NATSTimeout      time.Duration `env:"NATS_TIMEOUT" envDefault:"10s"`
	NATSMaxReconnect int           `env:"NATS_MAX_RECONNECT" envDefault:"-1"`

	// Source selects the backing implementations: "api" talks to NATS and
	// the real MailChimp API, "mock" runs fully in memory. The MailChimp
	// adapter reads its own MAILCHIMP_* variables via NewConfigFromEnv.
	Source string `env:"MAILCHIMP_SOURCE" envDefault:"api"`
}

func main() {
	log.InitStructureLogConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "service exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	if err := constants.ValidateSource(cfg.Source); err != nil {
		return fmt.Errorf("invalid MAILCHIMP_SOURCE: %w", err)
	}

	storage, mcClient, cleanup, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	entityValidator := validation.NewValidator()

	reader := service.NewReaderOrchestrator(
		service.WithStorageReader(storage),
	)

	writerOpts := []service.WriterOrchestratorOption{
		service.WithStorageWriter(storage),
		service.WithWriterStorageReader(storage),
		service.WithEntityValidator(entityValidator),
	}
	// A nil concrete client must never be wrapped in the interface, or the
	// orchestrator's nil check stops working.
	if mcClient != nil {
		writerOpts = append(writerOpts, service.WithMailChimpClient(mcClient))
	}
	writer := service.NewWriterOrchestrator(writerOpts...)

	serverOpts := []api.ServerOption{
		api.WithReadinessCheckers(storage),
	}
	if mcClient != nil {
		serverOpts = append(serverOpts, api.WithReadinessCheckers(mcClient))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewServer(reader, writer, serverOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "starting HTTP server",
			"service", constants.ServiceName,
			"addr", srv.Addr,
			"source", cfg.Source,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	slog.InfoContext(ctx, "shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	return nil
}

// buildDependencies wires the storage backend and MailChimp client for the
// configured source. The returned client is nil in mock-API mode; callers
// must not wrap a nil client in the interface.
func buildDependencies(ctx context.Context, cfg config) (port.ReaderWriter, mailchimp.ClientInterface, func(), error) {
	if cfg.Source == constants.SourceMock {
		slog.InfoContext(ctx, "using in-memory mock storage and MailChimp client")
		return mock.NewStorage(), mock.NewMockMailChimpClient(), func() {}, nil
	}

	natsClient, err := nats.NewClient(ctx, nats.Config{
		URL:           cfg.NATSURL,
		Timeout:       cfg.NATSTimeout,
		MaxReconnect:  cfg.NATSMaxReconnect,
		ReconnectWait: 2 * time.Second,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	cleanup := func() {
		if err := natsClient.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close NATS connection", "error", err)
		}
	}

	mcClient, err := mailchimp.NewClient(mailchimp.NewConfigFromEnv())
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("creating MailChimp client: %w", err)
	}

	var clientIface mailchimp.ClientInterface
	if mcClient != nil {
		clientIface = mcClient
	}

	return nats.NewStorage(natsClient), clientIface, cleanup, nil
}
