package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockFeed/internal/model"
)

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
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

// yahooChart is the response structure from Yahoo Finance chart API.
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

// yahooQuote is the response structure from Yahoo Finance quote API.
type yahooQuote struct {
	QuoteResponse struct {
		Result []map[string]interface{} `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
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

func (f *YahooFetcher) get(u string, out interface{}) error {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

// FetchIntradayBars fetches two days of 1-minute bars including extended
// hours, so the previous session's close is always in range.
func (f *YahooFetcher) FetchIntradayBars(symbol string) ([]model.OHLCV, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1m&range=2d&includePrePost=true",
		url.PathEscape(symbol))

	var chart yahooChart
	if err := f.get(u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote indicators returned")
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(at(quote.Open, i))
		h := toFloat(at(quote.High, i))
		l := toFloat(at(quote.Low, i))
		c := toFloat(at(quote.Close, i))
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (halts, holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(at(quote.Volume, i)),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func at(vals []interface{}, i int) interface{} {
	if i < 0 || i >= len(vals) {
		return nil
	}
	return vals[i]
}

// quoteCandidates returns the ordered price/time field pairs to try for a
// given market state. Extended-hours quotes are preferred in their own
// session; the regular quote is always a fallback.
func quoteCandidates(state model.MarketState) [][2]string {
	switch state {
	case model.StatePre:
		return [][2]string{
			{"preMarketPrice", "preMarketTime"},
			{"regularMarketPrice", "regularMarketTime"},
		}
	case model.StatePost:
		return [][2]string{
			{"postMarketPrice", "postMarketTime"},
			{"regularMarketPrice", "regularMarketTime"},
		}
	default:
		return [][2]string{
			{"regularMarketPrice", "regularMarketTime"},
			{"preMarketPrice", "preMarketTime"},
			{"postMarketPrice", "postMarketTime"},
		}
	}
}

func marketState(v interface{}) model.MarketState {
	s, _ := v.(string)
	switch model.MarketState(s) {
	case model.StatePre:
		return model.StatePre
	case model.StatePost:
		return model.StatePost
	case model.StateRegular:
		return model.StateRegular
	default:
		return model.StateUnknown
	}
}

// FetchQuote fetches the current quote and picks the best price/time pair
// for the current market state. Returns nil (not an error) when no usable
// pair exists.
func (f *YahooFetcher) FetchQuote(symbol string) (*model.QuoteSnapshot, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v7/finance/quote?symbols=%s",
		url.QueryEscape(symbol))

	var quote yahooQuote
	if err := f.get(u, &quote); err != nil {
		return nil, err
	}
	if quote.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", quote.QuoteResponse.Error.Description)
	}
	if len(quote.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no quote returned")
	}

	return PickQuote(quote.QuoteResponse.Result[0]), nil
}

// PickQuote selects the freshest usable quote from raw Yahoo quote fields.
// Returns nil when no candidate pair has both a price and a timestamp.
func PickQuote(fields map[string]interface{}) *model.QuoteSnapshot {
	state := marketState(fields["marketState"])
	for _, cand := range quoteCandidates(state) {
		price, okP := fields[cand[0]].(float64)
		ts, okT := fields[cand[1]].(float64)
		if !okP || !okT {
			continue
		}
		return &model.QuoteSnapshot{
			Price:  price,
			Time:   time.Unix(int64(ts), 0),
			Source: cand[0],
			State:  state,
		}
	}
	return nil
}


