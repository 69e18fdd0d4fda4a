package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/divestwatch/internal/finance"
	"github.com/sells-group/divestwatch/internal/match"
	"github.com/sells-group/divestwatch/internal/model"
	"github.com/sells-group/divestwatch/internal/service"
)

// newRouter builds the HTTP API over the query service.
func newRouter(svc *service.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/companies", handleSearch(svc))
		r.Get("/suggestions", handleSuggest(svc))
		r.Get("/company/{name}", handleDetail(svc))
		r.Get("/company/{name}/finance", handleFinance(svc))
	})

	return r
}

func handleSearch(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		perPage, _ := strconv.Atoi(q.Get("per_page"))

		result := svc.Search(q.Get("query"), page, perPage)
		if result.Results == nil {
			result.Results = []model.CompanyRecord{}
		}
		respondJSON(w, http.StatusOK, result)
	}
}

func handleSuggest(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := svc.Suggest(r.URL.Query().Get("q"), 0)
		if names == nil {
			names = []string{}
		}
		respondJSON(w, http.StatusOK, names)
	}
}

// detailResponse renders a record with the month as an English month name.
type detailResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Link        string `json:"link"`
	Month       string `json:"month"`
	Year        int    `json:"year"`
	Ticker      string `json:"ticker"`
}

func handleDetail(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathName(r)

		rec, err := svc.Detail(name)
		if err != nil {
			respondError(w, http.StatusNotFound, "company '"+name+"' not found")
			return
		}

		respondJSON(w, http.StatusOK, detailResponse{
			Name:        rec.Name,
			Description: rec.Description,
			Source:      rec.Source,
			Link:        rec.Link,
			Month:       rec.EventMonthName(),
			Year:        rec.EventYear,
			Ticker:      rec.Ticker,
		})
	}
}

type financeResponse struct {
	BeforeStock []model.PriceSample   `json:"before_stock_data"`
	AfterStock  []model.PriceSample   `json:"after_stock_data"`
	BeforeTrend model.Trend           `json:"before_trend"`
	AfterTrend  model.Trend           `json:"after_trend"`
	Revenue     []model.RevenueSample `json:"revenue_data"`
	Errors      map[string]string     `json:"errors,omitempty"`
}

func handleFinance(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathName(r)

		fw, err := svc.Finance(r.Context(), name)
		switch {
		case err == nil:
		case errors.Is(err, match.ErrNotFound):
			respondError(w, http.StatusNotFound, "company not found for finance data")
			return
		case errors.Is(err, finance.ErrMissingEventDate):
			respondError(w, http.StatusBadRequest, "event date missing or invalid")
			return
		case errors.Is(err, finance.ErrMissingTicker):
			respondError(w, http.StatusBadRequest, "ticker symbol missing")
			return
		case errors.Is(err, finance.ErrNoMarketData):
			respondError(w, http.StatusNotFound, "no stock data found for this company")
			return
		default:
			// Unexpected external failure: log the detail, never leak it.
			zap.L().Error("finance lookup failed",
				zap.String("name", name),
				zap.Error(err),
			)
			respondError(w, http.StatusInternalServerError, "server error")
			return
		}

		resp := financeResponse{
			BeforeStock: fw.Before,
			AfterStock:  fw.After,
			BeforeTrend: fw.BeforeTrend,
			AfterTrend:  fw.AfterTrend,
			Revenue:     fw.Revenue,
		}
		if resp.BeforeStock == nil {
			resp.BeforeStock = []model.PriceSample{}
		}
		if resp.AfterStock == nil {
			resp.AfterStock = []model.PriceSample{}
		}
		if resp.Revenue == nil {
			resp.Revenue = []model.RevenueSample{}
		}
		if len(fw.Notes) > 0 {
			resp.Errors = fw.Notes
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// pathName extracts and decodes the company name route parameter. Encoded
// names arrive percent-escaped, sometimes with + for spaces.
func pathName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if dec, err := url.PathUnescape(name); err == nil {
		name = dec
	}
	return strings.TrimSpace(strings.ReplaceAll(name, "+", " "))
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// requestID tags each request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with status and latency.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", w.Header().Get("X-Request-ID")),
		)
	})
}
