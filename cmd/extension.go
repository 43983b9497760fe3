package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/etnz/cashbook/config"
	"github.com/etnz/cashbook/logger"
	"go.uber.org/zap"
)

// Variables set for extensions, resolved from the flags and the configuration.
const (
	EnvBookFile = "CASHBOOK_FILE"
	EnvLogLevel = "CASHBOOK_LOG_LEVEL"
)

// RunExtension runs the cbk-<name> executable found in PATH with args.
// found is false when there is none.
func RunExtension(name string, args []string) (found bool, code int) {
	bin, err := exec.LookPath("cbk-" + name)
	if err != nil {
		return false, 0
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}
	defer log.Sync()
	log.Debug("running extension", zap.String("path", bin), zap.Strings("args", args))

	ext := exec.Command(bin, args...)
	ext.Stdin, ext.Stdout, ext.Stderr = os.Stdin, os.Stdout, os.Stderr
	ext.Env = append(os.Environ(), extensionEnv(cfg)...)

	var exit *exec.ExitError
	switch err := ext.Run(); {
	case err == nil:
		return true, 0
	case errors.As(err, &exit):
		log.Debug("extension failed", zap.String("path", bin), zap.Int("code", exit.ExitCode()))
		return true, exit.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "Error running %s: %v\n", bin, err)
		return true, 1
	}
}

// extensionEnv is what an extension needs to open the same book as cbk.
func extensionEnv(cfg *config.Config) []string {
	return []string{
		EnvBookFile + "=" + cfg.Book.File,
		EnvLogLevel + "=" + cfg.Log.Level,
	}
}
