package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Lalith0024/unistay"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	c.logWarnings()

	db, err := c.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	// create http mux for use with unistay
	mux := http.NewServeMux()
	if _, err := unistay.New(
		unistay.WithSqliteDB(db),
		unistay.WithLogr(c.logger),
		unistay.WithConfig(c.cfg),
		unistay.WithRouter(mux),
	); err != nil {
		c.logger.Error(err, "starting unistay")
		return err
	}

	srv := &http.Server{
		Addr:         c.cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  c.cfg.Server.ReadTimeout,
		WriteTimeout: c.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			c.logger.Error(err, "http server failed")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	c.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.logger.Error(err, "graceful shutdown failed")
		return err
	}
	return nil
}
