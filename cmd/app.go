// Package cmd implements the cbk command line tool, the cash book of a bar.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/config"
	"github.com/etnz/cashbook/logger"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&closeCmd{}, "records")
	c.Register(&stockCmd{}, "records")
	c.Register(&fixedCmd{}, "records")
	c.Register(&categoryCmd{}, "records")
	c.Register(&importCmd{}, "records")

	c.Register(&monthCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&monthsCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")

	c.Register(&serveCmd{}, "services")
	c.Register(&assistCmd{}, "services")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	envFile  = flag.String("env", "", "Path to a .env file. Defaults to .env in the current folder, when present.")
	bookFile = flag.String("book", "", "Path to the journal file. Overrides CASHBOOK_FILE.")
	// Verbose turns on debug logs.
	Verbose = flag.Bool("v", false, "Log debug messages to stderr.")
)

// session is what a command works with: the configuration, a logger and the book.
type session struct {
	cfg   *config.Config
	log   *zap.Logger
	store cashbook.FileStore
	book  *cashbook.Book
}

// loadConfig reads the configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*envFile)
	if err != nil {
		return nil, err
	}
	if *bookFile != "" {
		cfg.Book.File = *bookFile
	}
	if *Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// openSession loads the configuration and the book it points to. A missing
// journal yields an empty book.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.BookOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, cashbook.WithLogger(logger.Named(log, "book")))

	store := cashbook.FileStore{Path: cfg.Book.File, Options: opts}
	book, err := store.Load()
	if err != nil {
		return nil, err
	}
	log.Debug("book loaded", zap.String("file", cfg.Book.File), zap.String("currency", book.Currency()))
	return &session{cfg: cfg, log: log, store: store, book: book}, nil
}

// save writes the book back to its journal.
func (s *session) save() error { return s.store.Save(s.book) }

// close flushes the logs.
func (s *session) close() { _ = s.log.Sync() }

// status reports err and maps it to an exit status: invalid input is a usage error.
func status(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, cashbook.ErrInvalidValue) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// printMarkdown prints md, rendered for the terminal when stdout is one.
func printMarkdown(md string) { fmt.Println(renderMarkdown(md)) }

func renderMarkdown(md string) string {
	if !isTerminal(os.Stdout) {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
