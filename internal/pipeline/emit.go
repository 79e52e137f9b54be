package pipeline

import (
	"math"
	"time"
)

// EmittedPoint is one grid slot selected for publication.
type EmittedPoint struct {
	Time  time.Time
	Price float64
}

// roundCents rounds a price to 2 decimals so sub-cent float jitter does
// not count as a price change.
func roundCents(p float64) float64 {
	return math.Round(p*100) / 100
}

// Emit selects which resampled slots get published. Flat runs are
// compressed to their first slot: a slot is kept when it is the first
// present slot, or when its rounded price differs from the last kept
// slot's rounded price. Only the chronologically last `limit` kept points
// survive the cap.
//
// When compression leaves at most one point but the grid holds more than
// one present slot (flat session, holiday, pre-market constant fill) and
// the fallback is enabled, the last `limit` raw present slots are emitted
// instead so readers still get a populated feed. The second return value
// reports whether that fallback fired.
func Emit(slots []Slot, window []time.Time, limit int, fallbackEnabled bool) ([]EmittedPoint, bool) {
	var kept []EmittedPoint
	var lastRounded float64
	haveLast := false
	present := 0

	for i, s := range slots {
		if !s.Filled {
			continue
		}
		present++
		r := roundCents(s.Price)
		if !haveLast || r != lastRounded {
			kept = append(kept, EmittedPoint{Time: window[i], Price: s.Price})
			lastRounded = r
			haveLast = true
		}
	}
	if len(kept) > limit {
		kept = kept[len(kept)-limit:]
	}

	if fallbackEnabled && len(kept) <= 1 && present > 1 {
		raw := make([]EmittedPoint, 0, present)
		for i, s := range slots {
			if s.Filled {
				raw = append(raw, EmittedPoint{Time: window[i], Price: s.Price})
			}
		}
		if len(raw) > limit {
			raw = raw[len(raw)-limit:]
		}
		return raw, true
	}

	return kept, false
}


