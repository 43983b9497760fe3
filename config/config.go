// Package config loads the configuration of the cbk tool from the
// environment, optionally seeded by a .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/etnz/cashbook"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config represents the full configuration surface.
type Config struct {
	Book   BookConfig
	Alerts AlertConfig
	Server ServerConfig
	AI     AIConfig
	Log    LogConfig
}

// BookConfig locates the journal and sets its currency.
type BookConfig struct {
	File     string
	Currency string
}

// AlertConfig holds the alert thresholds as decimal strings.
type AlertConfig struct {
	Shortfall    string
	StockHigh    string
	StockLow     string
	CashShareLow string
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Listen string
}

// AIConfig holds settings for the Gemini assistant.
type AIConfig struct {
	GeminiKey string
	Model     string
}

// LogConfig holds the logging options.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		// a missing .env is fine, the environment may hold everything.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Book: BookConfig{
			File:     getenvWithDefault("CASHBOOK_FILE", "cashbook.jsonl"),
			Currency: getenvWithDefault("CASHBOOK_CURRENCY", "EUR"),
		},
		Alerts: AlertConfig{
			Shortfall:    getenvWithDefault("CASHBOOK_SHORTFALL_THRESHOLD", "-10"),
			StockHigh:    getenvWithDefault("CASHBOOK_STOCK_RATIO_HIGH", "0.35"),
			StockLow:     getenvWithDefault("CASHBOOK_STOCK_RATIO_LOW", "0.15"),
			CashShareLow: getenvWithDefault("CASHBOOK_CASH_SHARE_LOW", "0.10"),
		},
		Server: ServerConfig{
			Listen: getenvWithDefault("CASHBOOK_LISTEN", ":8080"),
		},
		AI: AIConfig{
			GeminiKey: os.Getenv("GEMINI_API_KEY"),
			Model:     getenvWithDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("CASHBOOK_LOG_LEVEL", "warn"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures that configuration fields are usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Book.File == "" {
		return errors.New("CASHBOOK_FILE must not be empty")
	}
	if money.GetCurrency(c.Book.Currency) == nil {
		return fmt.Errorf("CASHBOOK_CURRENCY %q is not a known currency code", c.Book.Currency)
	}
	if _, err := c.Thresholds(); err != nil {
		return err
	}
	if c.Server.Listen == "" {
		return errors.New("CASHBOOK_LISTEN must not be empty")
	}
	return nil
}

// Thresholds parses the alert thresholds.
func (c *Config) Thresholds() (cashbook.Thresholds, error) {
	shortfall, err := parse("CASHBOOK_SHORTFALL_THRESHOLD", c.Alerts.Shortfall)
	if err != nil {
		return cashbook.Thresholds{}, err
	}
	if shortfall.IsPositive() {
		return cashbook.Thresholds{}, fmt.Errorf("CASHBOOK_SHORTFALL_THRESHOLD must not be positive, got %s", shortfall)
	}
	th := cashbook.Thresholds{Shortfall: cashbook.M(shortfall, "")}
	for _, r := range []struct {
		key   string
		value string
		dst   *cashbook.Ratio
	}{
		{"CASHBOOK_STOCK_RATIO_HIGH", c.Alerts.StockHigh, &th.StockHigh},
		{"CASHBOOK_STOCK_RATIO_LOW", c.Alerts.StockLow, &th.StockLow},
		{"CASHBOOK_CASH_SHARE_LOW", c.Alerts.CashShareLow, &th.CashShareLow},
	} {
		d, err := parse(r.key, r.value)
		if err != nil {
			return cashbook.Thresholds{}, err
		}
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
			return cashbook.Thresholds{}, fmt.Errorf("%s must be between 0 and 1, got %s", r.key, d)
		}
		*r.dst = cashbook.R(d)
	}
	if th.StockLow.GreaterThan(th.StockHigh) {
		return cashbook.Thresholds{}, errors.New("CASHBOOK_STOCK_RATIO_LOW must not exceed CASHBOOK_STOCK_RATIO_HIGH")
	}
	return th, nil
}

func parse(key, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s must be a number, got %q", key, value)
	}
	return d, nil
}

// BookOptions returns the options to open the book.
func (c *Config) BookOptions() ([]cashbook.Option, error) {
	th, err := c.Thresholds()
	if err != nil {
		return nil, err
	}
	return []cashbook.Option{cashbook.WithCurrency(c.Book.Currency), cashbook.WithThresholds(th)}, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
