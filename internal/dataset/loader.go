package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/divestwatch/internal/model"
)

// tickerDelim splits a raw ticker field at the first whitespace, open
// parenthesis, or comma; the leading token is the symbol.
var tickerDelim = regexp.MustCompile(`[\s(,]`)

// Load reads the reference CSV at path and builds the index. A missing file
// or empty source yields an empty index, never an error: the service keeps
// running and answers NotFound for everything.
func Load(path string) *Index {
	f, err := os.Open(path)
	if err != nil {
		zap.L().Warn("dataset: reference file unavailable, serving empty index",
			zap.String("path", path),
			zap.Error(err),
		)
		return NewIndex(nil)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		zap.L().Warn("dataset: reference file unreadable, serving empty index",
			zap.String("path", path),
			zap.Error(err),
		)
		return NewIndex(nil)
	}

	zap.L().Info("dataset: loaded reference table",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return NewIndex(records)
}

// Parse reads CSV rows from r into company records. The first row is the
// header; columns are matched by trimmed, case-folded header name. Malformed
// month or year values degrade to absent rather than failing the load, and
// rows without a company name are dropped.
func Parse(r io.Reader) ([]model.CompanyRecord, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read header")
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []model.CompanyRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "dataset: read row")
		}

		rec := ParseRow(map[string]string{
			"company":     field(row, "company"),
			"description": field(row, "description"),
			"source":      field(row, "source"),
			"link":        field(row, "link"),
			"month":       field(row, "month"),
			"year":        field(row, "year"),
			"ticker":      field(row, "ticker"),
		})
		if rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseRow converts one raw row mapping into a CompanyRecord. Unparseable
// month/year fields yield zero values; an empty ticker field yields "".
func ParseRow(row map[string]string) model.CompanyRecord {
	return model.CompanyRecord{
		Name:        strings.TrimSpace(row["company"]),
		Description: row["description"],
		Source:      row["source"],
		Link:        row["link"],
		EventMonth:  parseMonth(row["month"]),
		EventYear:   parseYear(row["year"]),
		Ticker:      CleanTicker(row["ticker"]),
	}
}

// parseMonth accepts full English month names (any case) or a numeric 1-12;
// anything else is absent (0).
func parseMonth(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(s, m.String()) {
			return int(m)
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
		return n
	}
	return 0
}

// parseYear accepts a plain integer year; anything else is absent (0).
// Spreadsheet exports sometimes render years as floats ("2020.0").
func parseYear(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f)
	}
	return 0
}

// CleanTicker extracts the symbol from a raw ticker field: the token before
// the first whitespace, parenthesis, or comma.
func CleanTicker(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	return tickerDelim.Split(s, 2)[0]
}
