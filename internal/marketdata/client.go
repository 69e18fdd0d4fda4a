// Package marketdata fetches daily price history and quarterly revenue for a
// ticker symbol from an external time-series source.
package marketdata

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/divestwatch/internal/model"
)

// ErrNoData means the source had nothing for the requested ticker or window:
// unknown symbol or an empty range.
var ErrNoData = eris.New("marketdata: no data for ticker")

// Client defines the external time-series operations consumed by the finance
// window builder. Implementations must return samples with dates normalized
// to UTC calendar dates, ascending.
type Client interface {
	// PriceHistory returns daily samples for ticker over [start, end).
	// Fails with ErrNoData for an unknown ticker or empty range.
	PriceHistory(ctx context.Context, ticker string, start, end time.Time) ([]model.PriceSample, error)

	// QuarterlyRevenue returns the quarterly total-revenue series for
	// ticker. An empty result is valid: absence of a total-revenue line
	// item is not an error.
	QuarterlyRevenue(ctx context.Context, ticker string) ([]model.RevenueSample, error)
}

// Config configures the market data client.
type Config struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}
