package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockAnalyzer/internal/model"
)

// APIFetcher implements Fetcher against a self-hosted market data REST API.
type APIFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAPIFetcher creates a new fetcher with optional proxy support.
func NewAPIFetcher(baseURL, apiKey, proxyURL string) *APIFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &APIFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *APIFetcher) Name() string { return "rest-api" }

// apiBar is the expected JSON shape for a daily bar.
type apiBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// apiSnapshot is the expected JSON shape for a fundamental snapshot.
// Nullable fields decode to nil, preserving absence.
type apiSnapshot struct {
	ReportDate        string   `json:"report_date"`
	Source            string   `json:"source"`
	TotalEquity       *float64 `json:"total_equity"`
	SharesOutstanding *float64 `json:"shares_outstanding"`
	TotalDebt         *float64 `json:"total_debt"`
	Cash              *float64 `json:"cash_and_equivalents"`
}

func (f *APIFetcher) FetchDailyBars(ticker, period string) ([]model.DailyBar, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&period=%s",
		f.BaseURL, url.QueryEscape(ticker), url.QueryEscape(period))

	var apiBars []apiBar
	if err := f.getJSON(endpoint, &apiBars); err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	bars := make([]model.DailyBar, 0, len(apiBars))
	for _, b := range apiBars {
		d, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			return nil, fmt.Errorf("parse bar date %q: %w", b.Date, err)
		}
		bars = append(bars, model.DailyBar{
			Date:   d,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func (f *APIFetcher) FetchFundamentals(ticker string) ([]model.Snapshot, error) {
	endpoint := fmt.Sprintf("%s/api/v1/fundamentals?symbol=%s", f.BaseURL, url.QueryEscape(ticker))

	var apiSnaps []apiSnapshot
	if err := f.getJSON(endpoint, &apiSnaps); err != nil {
		return nil, fmt.Errorf("fetch fundamentals: %w", err)
	}

	snapshots := make([]model.Snapshot, 0, len(apiSnaps))
	for _, s := range apiSnaps {
		d, err := time.Parse("2006-01-02", s.ReportDate)
		if err != nil {
			return nil, fmt.Errorf("parse report date %q: %w", s.ReportDate, err)
		}
		snapshots = append(snapshots, model.Snapshot{
			ReportDate:        d,
			Source:            model.Source(s.Source),
			TotalEquity:       s.TotalEquity,
			SharesOutstanding: s.SharesOutstanding,
			TotalDebt:         s.TotalDebt,
			Cash:              s.Cash,
		})
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].ReportDate.Before(snapshots[j].ReportDate)
	})
	return snapshots, nil
}

func (f *APIFetcher) getJSON(endpoint string, out interface{}) error {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
