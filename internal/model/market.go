package model

import "time"

// OHLCV represents a single candlestick bar. A zero field means the value
// was absent in the upstream data (Yahoo returns null bars around halts
// and holidays).
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PricePoint is one normalized observation on the price timeline.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// MarketData bundles everything one refresh fetched for a symbol.
type MarketData struct {
	Symbol    string
	Bars      []OHLCV
	Quote     *QuoteSnapshot
	FetchedAt time.Time
}


