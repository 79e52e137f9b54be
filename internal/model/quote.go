package model

import "time"

// MarketState indicates which trading session the quote was taken in.
type MarketState string

const (
	StatePre     MarketState = "PRE"
	StateRegular MarketState = "REGULAR"
	StatePost    MarketState = "POST"
	StateUnknown MarketState = "UNKNOWN"
)

// QuoteSnapshot is the freshest single live quote for a symbol, distinct
// from historical bar data. Source names the quote field the price came
// from (e.g. "postMarketPrice").
type QuoteSnapshot struct {
	Price  float64
	Time   time.Time
	Source string
	State  MarketState
}


