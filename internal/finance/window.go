// Package finance computes the six-calendar-month market window around a
// company's boycott/divestment event date.
package finance

import (
	"context"
	"errors"
	"net"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/divestwatch/internal/marketdata"
	"github.com/sells-group/divestwatch/internal/model"
)

// DefaultCallTimeout bounds each external call so a slow source can never
// hang a request.
const DefaultCallTimeout = 10 * time.Second

// windowMonths is the span on each side of the center date, in calendar
// months (not days).
const windowMonths = 6

// Builder derives FinanceWindows from company records and an external
// time-series source.
type Builder struct {
	market  marketdata.Client
	timeout time.Duration
}

// NewBuilder creates a window builder. timeout bounds each external call;
// zero means DefaultCallTimeout.
func NewBuilder(market marketdata.Client, timeout time.Duration) *Builder {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Builder{market: market, timeout: timeout}
}

// Build computes the event window for rec. Price history and quarterly
// revenue are fetched concurrently; a price failure is fatal to the whole
// operation while a revenue failure only leaves RevenueSamples empty with a
// note. That asymmetry is part of the contract.
func (b *Builder) Build(ctx context.Context, rec model.CompanyRecord) (*model.FinanceWindow, error) {
	if !rec.HasEventDate() {
		return nil, ErrMissingEventDate
	}
	if rec.Ticker == "" {
		return nil, ErrMissingTicker
	}

	center := rec.EventDate()
	start := center.AddDate(0, -windowMonths, 0)
	end := center.AddDate(0, windowMonths, 0)

	var (
		prices     []model.PriceSample
		revenue    []model.RevenueSample
		revenueErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, b.timeout)
		defer cancel()

		ps, err := b.market.PriceHistory(cctx, rec.Ticker, start, end)
		if err != nil {
			// Unknown ticker, empty range, and timeouts all surface
			// as no-market-data; anything else propagates as an
			// unexpected external failure.
			if errors.Is(err, marketdata.ErrNoData) || isTimeout(err) {
				return ErrNoMarketData
			}
			return err
		}
		prices = ps
		return nil
	})
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, b.timeout)
		defer cancel()

		rs, err := b.market.QuarterlyRevenue(cctx, rec.Ticker)
		if err != nil {
			revenueErr = err // partial failure, never escalated
			return nil
		}
		revenue = rs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, ErrNoMarketData
	}

	// Re-normalize and re-sort locally: the source contract says UTC
	// ascending, but partitioning and trend direction must not depend on it.
	for i := range prices {
		prices[i].Date = model.UTCDate(prices[i].Date)
	}
	sort.SliceStable(prices, func(i, j int) bool { return prices[i].Date.Before(prices[j].Date) })

	fw := &model.FinanceWindow{CenterDate: center, Notes: map[string]string{}}
	for _, p := range prices {
		if p.Date.Before(center) {
			fw.Before = append(fw.Before, p)
		} else {
			fw.After = append(fw.After, p)
		}
	}
	fw.BeforeTrend = classifyTrend(fw.Before)
	fw.AfterTrend = classifyTrend(fw.After)

	if revenueErr != nil {
		fw.Notes["revenue"] = "quarterly revenue unavailable"
		zap.L().Warn("finance: revenue fetch failed",
			zap.String("ticker", rec.Ticker),
			zap.Error(revenueErr),
		)
		return fw, nil
	}

	// Revenue clips inclusively at both window edges, unlike the
	// exclusive upper bound on prices. Intentional asymmetry.
	for _, r := range revenue {
		d := model.UTCDate(r.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		fw.Revenue = append(fw.Revenue, model.RevenueSample{Date: d, Revenue: r.Revenue})
	}
	// A valid-but-empty series (no fundamentals for the symbol, or nothing
	// inside the window) still gets the note: callers distinguish "no
	// revenue shown" from "revenue is zero" by its presence.
	if len(fw.Revenue) == 0 {
		fw.Notes["revenue"] = "quarterly revenue unavailable"
	}
	return fw, nil
}

// isTimeout catches both context deadlines and transport-level timeouts.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// classifyTrend compares the chronologically last close to the first. Fewer
// than two samples cannot establish a direction; equality counts as
// decrease, there is no flat state.
func classifyTrend(samples []model.PriceSample) model.Trend {
	if len(samples) < 2 {
		return model.TrendInsufficient
	}
	if samples[len(samples)-1].Close > samples[0].Close {
		return model.TrendIncrease
	}
	return model.TrendDecrease
}
