package pipeline

import (
	"fmt"
	"time"

	"StockFeed/internal/model"
)

// Config holds the immutable parameters for one pipeline run.
type Config struct {
	Symbol           string
	Location         *time.Location
	SessionStartHour int
	SessionEndHour   int
	Cadence          time.Duration
	Lookback         time.Duration
	EmitCap          int
	FallbackEnabled  bool
}

// Result is the complete output of one pipeline run. Records are ordered
// newest first. Diagnostics lists every degraded path the run took; an
// empty list means a fully regular run.
type Result struct {
	Records       []model.FeedRecord
	Now           time.Time
	PreviousClose *float64
	FallbackUsed  bool
	Diagnostics   []string
}

// Run maps one fetched snapshot to publishable feed records. It is pure:
// identical inputs yield identical results, nothing is mutated, and no
// error is ever returned. Missing or malformed input degrades the output
// and leaves a note in Diagnostics instead.
func Run(now time.Time, bars []model.OHLCV, quote *model.QuoteSnapshot, cfg Config) Result {
	local := now.In(cfg.Location)
	res := Result{Now: local}

	window := BuildWindow(local, cfg)
	if floorToCadence(local, cfg.Cadence).Before(window[0]) {
		res.Diagnostics = append(res.Diagnostics, "session not open yet; built the full session grid")
	}

	prevClose, havePrev := PreviousClose(bars, window[0], cfg.Location)
	if havePrev {
		pc := prevClose
		res.PreviousClose = &pc
	} else {
		res.Diagnostics = append(res.Diagnostics, "previous close unavailable; records omit vs-close deltas")
	}

	series := Normalize(bars, quote, window, cfg.Location)
	if len(series) == 0 {
		if havePrev {
			res.Diagnostics = append(res.Diagnostics,
				fmt.Sprintf("no intraday observations; window filled with previous close %.2f", prevClose))
		} else {
			res.Diagnostics = append(res.Diagnostics, "no intraday observations and no previous close; feed will be empty")
		}
	}

	slots := Resample(series, window, prevClose, havePrev, cfg.Cadence)

	emitted, fallbackUsed := Emit(slots, window, cfg.EmitCap, cfg.FallbackEnabled)
	res.FallbackUsed = fallbackUsed
	if fallbackUsed {
		res.Diagnostics = append(res.Diagnostics,
			fmt.Sprintf("flat or stale series; emitted the last %d raw slots instead of change points", len(emitted)))
	}

	res.Records = Compose(emitted, slots, window, prevClose, havePrev, cfg)
	return res
}


