package pipeline

import "time"

// BuildWindow returns the ascending fixed-cadence timestamp grid for the
// current session in exchange-local time: session start through
// min(session end, now floored to the cadence), inclusive.
//
// When the run happens before the session opens, the full start..end grid
// is returned instead of an empty range, so downstream stages always see
// a complete grid (the previous-close fill populates it).
func BuildWindow(now time.Time, cfg Config) []time.Time {
	local := now.In(cfg.Location)
	y, m, d := local.Date()
	start := time.Date(y, m, d, cfg.SessionStartHour, 0, 0, 0, cfg.Location)
	end := time.Date(y, m, d, cfg.SessionEndHour, 0, 0, 0, cfg.Location)

	last := floorToCadence(local, cfg.Cadence)
	if last.After(end) {
		last = end
	}
	if last.Before(start) {
		last = end
	}

	grid := make([]time.Time, 0, end.Sub(start)/cfg.Cadence+1)
	for t := start; !t.After(last); t = t.Add(cfg.Cadence) {
		grid = append(grid, t)
	}
	return grid
}

// floorToCadence floors a timestamp to the previous wall-clock cadence
// boundary within its hour.
func floorToCadence(t time.Time, cadence time.Duration) time.Time {
	step := int(cadence / time.Minute)
	minute := (t.Minute() / step) * step
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}


