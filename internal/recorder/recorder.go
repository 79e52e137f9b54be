package recorder

import (
	"time"

	"StockFeed/internal/model"
)

// RunSnapshot holds everything worth keeping about one refresh run.
type RunSnapshot struct {
	RunAt         time.Time
	Symbol        string
	MarketState   model.MarketState
	BarCount      int
	EmittedCount  int
	FallbackUsed  bool
	PreviousClose *float64
	LatestPrice   *float64
	Diagnostics   []string
	Records       []model.FeedRecord
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	Close() error
}


