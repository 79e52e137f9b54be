package collector

import (
	"fmt"
	"log"
	"time"

	"StockFeed/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars  []model.OHLCV
	Quote *model.QuoteSnapshot
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchIntradayBars(_ string) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars, nil
}

func (m *MockFetcher) FetchQuote(_ string) (*model.QuoteSnapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Quote, nil
}

// Collector assembles the market snapshot one refresh works from.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol}
}

// Collect fetches intraday bars and the live quote. A missing quote only
// degrades the snapshot (the bars still cover the session); missing bars
// with a usable quote likewise. Only the fully-empty case is an error.
func (c *Collector) Collect() (*model.MarketData, error) {
	data := &model.MarketData{Symbol: c.Symbol, FetchedAt: time.Now()}

	bars, err := c.Fetcher.FetchIntradayBars(c.Symbol)
	if err != nil {
		log.Printf("[WARN] fetch intraday bars: %v", err)
	} else {
		data.Bars = bars
	}

	quote, err := c.Fetcher.FetchQuote(c.Symbol)
	if err != nil {
		log.Printf("[WARN] fetch quote: %v", err)
	} else {
		data.Quote = quote
	}

	if len(data.Bars) == 0 && data.Quote == nil {
		return nil, fmt.Errorf("no market data available for %s", c.Symbol)
	}
	return data, nil
}


