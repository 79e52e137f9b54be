package collector

import "StockFeed/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchIntradayBars returns recent 1-minute bars including pre/post
	// market trading.
	FetchIntradayBars(symbol string) ([]model.OHLCV, error)
	// FetchQuote returns the freshest live quote, or nil when no usable
	// quote field is available.
	FetchQuote(symbol string) (*model.QuoteSnapshot, error)
	Name() string
}


