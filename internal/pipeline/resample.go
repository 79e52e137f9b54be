package pipeline

import (
	"time"

	"StockFeed/internal/model"
)

// Slot is one grid position of the resampled series.
type Slot struct {
	Price  float64
	Filled bool
}

// Resample buckets the normalized series onto the window grid. Each grid
// timestamp t labels the bucket [t, t+cadence); the last observation in a
// bucket wins (closing-value semantics), and empty buckets inherit the
// previous bucket's value. Observations past the final bucket edge are
// discarded.
//
// An entirely empty series falls back to a constant previous-close fill
// across the whole grid, or stays all-absent when no previous close is
// known. A non-empty series that starts late keeps its leading slots
// absent; they are never back-filled.
func Resample(series []model.PricePoint, window []time.Time, prevClose float64, havePrev bool, cadence time.Duration) []Slot {
	slots := make([]Slot, len(window))

	if len(series) == 0 {
		if havePrev {
			for i := range slots {
				slots[i] = Slot{Price: prevClose, Filled: true}
			}
		}
		return slots
	}

	idx := 0
	var last float64
	have := false
	for i, t := range window {
		edge := t.Add(cadence)
		for idx < len(series) && series[idx].Time.Before(edge) {
			last = series[idx].Price
			have = true
			idx++
		}
		if have {
			slots[i] = Slot{Price: last, Filled: true}
		}
	}
	return slots
}


