package model

import "time"

// Trend classifies the price direction across one partition of the event
// window.
type Trend string

const (
	TrendIncrease     Trend = "increase"
	TrendDecrease     Trend = "decrease"
	TrendInsufficient Trend = "insufficient-data"
)

// PriceSample is one daily OHLCV observation. Date is a UTC calendar date
// with no time-of-day component. JSON field names follow the wire contract
// consumed by the frontend charts.
type PriceSample struct {
	Date   time.Time `json:"Date"`
	Open   float64   `json:"Open"`
	High   float64   `json:"High"`
	Low    float64   `json:"Low"`
	Close  float64   `json:"Close"`
	Volume int64     `json:"Volume"`
}

// RevenueSample is one quarterly total-revenue observation. Date is the
// quarter-end as a UTC calendar date.
type RevenueSample struct {
	Date    time.Time `json:"Date"`
	Revenue float64   `json:"Revenue"`
}

// FinanceWindow is the derived, never-persisted view of a company's market
// performance around its event date. Before holds samples strictly earlier
// than CenterDate, After holds the rest. Notes carries partial-failure
// messages keyed by sub-computation (e.g. "revenue") that did not abort the
// window as a whole.
type FinanceWindow struct {
	CenterDate  time.Time
	Before      []PriceSample
	After       []PriceSample
	BeforeTrend Trend
	AfterTrend  Trend
	Revenue     []RevenueSample
	Notes       map[string]string
}

// UTCDate strips any time-of-day and timezone offset from t, yielding the
// plain UTC calendar date. Timezone-naive sources are treated as already UTC
// upstream, so this is safe to apply unconditionally.
func UTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
