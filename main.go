package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"modual-backend/internal/routes"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "modual",
		Short:         "Backend für Installateursuche, Produktseiten und Wissensdatenbank",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "HTTP-Server starten (Standard)",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		newClearCacheCmd(),
		newInstallersCmd(),
		newSearchCmd(),
	)
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	logger := a.logger

	if a.cfg.Warmup {
		a.startWarmup(cmd.Context())
	}

	r := chi.NewRouter()
	routes.Setup(r, a.handlers(), logger, a.cfg.RateLimit)

	srv := &http.Server{
		Addr:         a.cfg.ServerAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: a.cfg.FetchTimeout + 10*time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server wird gestartet", zap.String("adresse", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		logger.Error("listen", zap.Error(err))
		return err
	}

	logger.Info("server wird heruntergefahren")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("erzwungenes herunterfahren", zap.Error(err))
		return err
	}
	logger.Info("server gestoppt")
	return nil
}
