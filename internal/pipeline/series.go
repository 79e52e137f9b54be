package pipeline

import (
	"sort"
	"time"

	"StockFeed/internal/model"
)

// SelectPrice returns the usable price of a bar. The close is preferred;
// when it is missing the first populated field is used instead (a zero
// field means the upstream value was null). Returns false when the bar
// carries no price at all.
func SelectPrice(b model.OHLCV) (float64, bool) {
	for _, v := range []float64{b.Close, b.Open, b.High, b.Low} {
		if v != 0 {
			return v, true
		}
	}
	return 0, false
}

// Normalize turns raw bars plus an optional live quote into a sorted,
// deduplicated price series restricted to the trading window. Bars before
// the window start are dropped so a previous session's after-hours price
// cannot leak into today's pre-market. A quote at or after window start is
// merged as its own observation and wins an exact timestamp collision.
func Normalize(bars []model.OHLCV, quote *model.QuoteSnapshot, window []time.Time, loc *time.Location) []model.PricePoint {
	if len(window) == 0 {
		return nil
	}
	start := window[0]

	pts := make([]model.PricePoint, 0, len(bars)+1)
	for _, b := range bars {
		price, ok := SelectPrice(b)
		if !ok {
			continue
		}
		ts := b.Time.In(loc)
		if ts.Before(start) {
			continue
		}
		pts = append(pts, model.PricePoint{Time: ts, Price: price})
	}

	if quote != nil {
		qt := quote.Time.In(loc)
		if !qt.Before(start) {
			pts = append(pts, model.PricePoint{Time: qt, Price: quote.Price})
		}
	}

	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Time.Before(pts[j].Time) })

	// Keep-last dedupe. The quote was appended after the bars, so a stable
	// sort leaves it last among equal timestamps and it wins here.
	out := make([]model.PricePoint, 0, len(pts))
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1].Time.Equal(p.Time) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

// PreviousClose finds the most recent usable price strictly before the
// window start. It must see the raw pre-truncation bars, since everything
// before window start is exactly what Normalize throws away.
func PreviousClose(bars []model.OHLCV, windowStart time.Time, loc *time.Location) (float64, bool) {
	var (
		price  float64
		latest time.Time
		found  bool
	)
	for _, b := range bars {
		ts := b.Time.In(loc)
		if !ts.Before(windowStart) {
			continue
		}
		p, ok := SelectPrice(b)
		if !ok {
			continue
		}
		if !found || !ts.Before(latest) {
			price, latest, found = p, ts, true
		}
	}
	return price, found
}


