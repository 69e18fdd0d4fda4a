package finance

import "github.com/rotisserie/eris"

// Typed failures for window construction. The HTTP layer maps these to
// caller-visible statuses; anything else from Build is an unexpected
// external failure and must not leak detail to callers.
var (
	// ErrMissingEventDate means the record lacks a complete event
	// month/year, so no window can be centered.
	ErrMissingEventDate = eris.New("finance: record has no event date")

	// ErrMissingTicker means the record has no ticker symbol to query.
	ErrMissingTicker = eris.New("finance: record has no ticker symbol")

	// ErrNoMarketData means the external source had no price history for
	// the ticker over the requested window.
	ErrNoMarketData = eris.New("finance: no market data for window")
)
