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

// YahooFetcher implements Fetcher using Yahoo Finance public APIs.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) FetchDailyBars(ticker, period string) ([]model.DailyBar, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(ticker), url.QueryEscape(period))

	body, err := f.get(u)
	if err != nil {
		return nil, err
	}

	return parseChartBars(body, ticker)
}

func parseChartBars(body []byte, ticker string) ([]model.DailyBar, error) {
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode chart: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no price data for %s", ticker)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data for %s", ticker)
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.DailyBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		day := time.Unix(ts, 0).UTC()
		bars = append(bars, model.DailyBar{
			Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// rawValue is Yahoo's {raw, fmt} numeric wrapper; absent fields decode to nil.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v rawValue) ptr() *float64 {
	if v.Raw == nil {
		return nil
	}
	n := *v.Raw
	return &n
}

type balanceSheetStatement struct {
	EndDate                rawValue `json:"endDate"`
	TotalStockholderEquity rawValue `json:"totalStockholderEquity"`
	Cash                   rawValue `json:"cash"`
	ShortLongTermDebt      rawValue `json:"shortLongTermDebt"`
	LongTermDebt           rawValue `json:"longTermDebt"`
}

type quoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			BalanceSheetHistoryQuarterly *struct {
				BalanceSheetStatements []balanceSheetStatement `json:"balanceSheetStatements"`
			} `json:"balanceSheetHistoryQuarterly"`
			BalanceSheetHistory *struct {
				BalanceSheetStatements []balanceSheetStatement `json:"balanceSheetStatements"`
			} `json:"balanceSheetHistory"`
			DefaultKeyStatistics *struct {
				SharesOutstanding rawValue `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
			FinancialData *struct {
				TotalDebt rawValue `json:"totalDebt"`
				TotalCash rawValue `json:"totalCash"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (f *YahooFetcher) FetchFundamentals(ticker string) ([]model.Snapshot, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=%s",
		url.PathEscape(ticker),
		"balanceSheetHistoryQuarterly,balanceSheetHistory,defaultKeyStatistics,financialData")

	body, err := f.get(u)
	if err != nil {
		return nil, err
	}

	var summary quoteSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("yahoo decode summary: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no fundamentals for %s", ticker)
	}

	res := summary.QuoteSummary.Result[0]
	var snapshots []model.Snapshot

	if res.BalanceSheetHistoryQuarterly != nil {
		snapshots = append(snapshots, statementSnapshots(res.BalanceSheetHistoryQuarterly.BalanceSheetStatements, model.SourceQuarterly)...)
	}
	if res.BalanceSheetHistory != nil {
		snapshots = append(snapshots, statementSnapshots(res.BalanceSheetHistory.BalanceSheetStatements, model.SourceAnnual)...)
	}

	// Point-in-time figures from the info modules carry no report date;
	// dating them at the epoch applies them across the whole window.
	info := model.Snapshot{ReportDate: time.Unix(0, 0).UTC(), Source: model.SourceInfo}
	hasInfo := false
	if res.DefaultKeyStatistics != nil {
		if v := res.DefaultKeyStatistics.SharesOutstanding.ptr(); v != nil {
			info.SharesOutstanding = v
			hasInfo = true
		}
	}
	if res.FinancialData != nil {
		if v := res.FinancialData.TotalDebt.ptr(); v != nil {
			info.TotalDebt = v
			hasInfo = true
		}
		if v := res.FinancialData.TotalCash.ptr(); v != nil {
			info.Cash = v
			hasInfo = true
		}
	}
	if hasInfo {
		snapshots = append(snapshots, info)
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].ReportDate.Before(snapshots[j].ReportDate)
	})
	return snapshots, nil
}

func statementSnapshots(statements []balanceSheetStatement, source model.Source) []model.Snapshot {
	snapshots := make([]model.Snapshot, 0, len(statements))
	for _, st := range statements {
		end := st.EndDate.ptr()
		if end == nil {
			continue
		}
		reported := time.Unix(int64(*end), 0).UTC()
		snapshots = append(snapshots, model.Snapshot{
			ReportDate:  time.Date(reported.Year(), reported.Month(), reported.Day(), 0, 0, 0, 0, time.UTC),
			Source:      source,
			TotalEquity: st.TotalStockholderEquity.ptr(),
			TotalDebt:   sumDebt(st.ShortLongTermDebt.ptr(), st.LongTermDebt.ptr()),
			Cash:        st.Cash.ptr(),
		})
	}
	return snapshots
}

// sumDebt combines short- and long-term debt, nil when neither is reported.
func sumDebt(short, long *float64) *float64 {
	if short == nil && long == nil {
		return nil
	}
	total := 0.0
	if short != nil {
		total += *short
	}
	if long != nil {
		total += *long
	}
	return &total
}

func (f *YahooFetcher) get(u string) ([]byte, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
