package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/divestwatch/internal/model"
	"github.com/sells-group/divestwatch/internal/resilience"
)

// Yahoo rejects requests without a browser-ish agent.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) divestwatch/1.0"

// chartResponse mirrors the Yahoo v8 chart payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// timeseriesResponse mirrors the Yahoo fundamentals-timeseries payload for
// quarterlyTotalRevenue.
type timeseriesResponse struct {
	Timeseries struct {
		Result []struct {
			QuarterlyTotalRevenue []*struct {
				AsOfDate      string `json:"asOfDate"`
				ReportedValue *struct {
					Raw float64 `json:"raw"`
				} `json:"reportedValue"`
			} `json:"quarterlyTotalRevenue"`
		} `json:"result"`
	} `json:"timeseries"`
}

// Option configures the Yahoo client.
type Option func(*yahooClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *yahooClient) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *yahooClient) { c.http = hc }
}

type yahooClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// New creates a Yahoo-backed market data client. Zero config fields take
// conservative defaults; MaxAttempts of 1 disables retries entirely.
func New(cfg Config, opts ...Option) Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 5
	}

	c := &yahooClient{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		retry: resilience.RetryConfig{
			MaxAttempts: cfg.MaxAttempts,
			OnRetry:     resilience.RetryLogger("yahoo", "get"),
		},
	}
	if c.baseURL == "" {
		c.baseURL = "https://query1.finance.yahoo.com"
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *yahooClient) PriceHistory(ctx context.Context, ticker string, start, end time.Time) ([]model.PriceSample, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, url.PathEscape(ticker), start.Unix(), end.Unix())

	body, status, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, eris.Wrap(err, "marketdata: price history")
	}
	if status == http.StatusNotFound {
		return nil, ErrNoData
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("marketdata: price history status %d", status)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "marketdata: unmarshal chart response")
	}
	if parsed.Chart.Error != nil || len(parsed.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	result := parsed.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, ErrNoData
	}
	quote := result.Indicators.Quote[0]

	samples := make([]model.PriceSample, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Days without a close (halts, holidays leaking in) are dropped.
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		date := model.UTCDate(time.Unix(ts, 0))
		if date.Before(start) || !date.Before(end) {
			continue
		}
		s := model.PriceSample{Date: date, Close: *quote.Close[i]}
		if i < len(quote.Open) && quote.Open[i] != nil {
			s.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			s.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			s.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			s.Volume = *quote.Volume[i]
		}
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return nil, ErrNoData
	}

	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Date.Before(samples[j].Date) })
	return samples, nil
}

func (c *yahooClient) QuarterlyRevenue(ctx context.Context, ticker string) ([]model.RevenueSample, error) {
	// The fundamentals endpoint wants an explicit range; pull wide and let
	// the window builder clip.
	now := time.Now().UTC()
	reqURL := fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?type=quarterlyTotalRevenue&period1=%d&period2=%d",
		c.baseURL, url.PathEscape(ticker), now.AddDate(-10, 0, 0).Unix(), now.Unix())

	body, status, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, eris.Wrap(err, "marketdata: quarterly revenue")
	}
	if status == http.StatusNotFound {
		return nil, nil // no fundamentals for this symbol: valid empty result
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("marketdata: quarterly revenue status %d", status)
	}

	var parsed timeseriesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "marketdata: unmarshal timeseries response")
	}

	var samples []model.RevenueSample
	for _, res := range parsed.Timeseries.Result {
		for _, rv := range res.QuarterlyTotalRevenue {
			if rv == nil || rv.ReportedValue == nil {
				continue
			}
			date, err := time.ParseInLocation("2006-01-02", rv.AsOfDate, time.UTC)
			if err != nil {
				continue
			}
			samples = append(samples, model.RevenueSample{Date: date, Revenue: rv.ReportedValue.Raw})
		}
	}

	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Date.Before(samples[j].Date) })
	return samples, nil
}

// get performs a rate-limited GET with bounded retries on transient
// failures, returning the body and status code.
func (c *yahooClient) get(ctx context.Context, reqURL string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, eris.Wrap(err, "marketdata: rate limit wait")
	}

	type httpResult struct {
		body   []byte
		status int
	}

	res, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (httpResult, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return httpResult{}, eris.Wrap(err, "marketdata: create request")
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return httpResult{}, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return httpResult{}, eris.Wrap(err, "marketdata: read response body")
		}

		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return httpResult{}, resilience.NewTransientError(
				eris.Errorf("marketdata: status %d", resp.StatusCode), resp.StatusCode)
		}
		return httpResult{body: body, status: resp.StatusCode}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return res.body, res.status, nil
}
