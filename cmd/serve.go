package cmd

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/etnz/cashbook/logger"
	"github.com/etnz/cashbook/server"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type serveCmd struct {
	listen string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the book over HTTP" }
func (*serveCmd) Usage() string {
	return `cbk serve [-listen <address>]

  Serves the book as a JSON API, see 'cbk topic server'. Every accepted
  write is saved to the journal. Stop it with Ctrl-C.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.listen, "listen", "", "Address to listen on. Overrides CASHBOOK_LISTEN.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return status(err)
	}
	defer s.close()

	addr := s.cfg.Server.Listen
	if c.listen != "" {
		addr = c.listen
	}
	path := s.cfg.Book.File
	handler := server.NewHandler(s.book, s.store, logger.Named(s.log, "handlers"))
	engine := server.New(handler, logger.Named(s.log, "router"))

	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", addr), zap.String("book", path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return status(err)
		}
	case <-ctx.Done():
		s.log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("graceful shutdown failed", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
