package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"StockFeed/internal/model"
)

// Compose derives the final feed records from the emitted points, newest
// first. Each record carries the delta vs the previous close and the
// delta vs the grid value one lookback earlier; either is omitted when
// its baseline is unknown.
func Compose(emitted []EmittedPoint, slots []Slot, window []time.Time, prevClose float64, havePrev bool, cfg Config) []model.FeedRecord {
	records := make([]model.FeedRecord, 0, len(emitted))
	for i := len(emitted) - 1; i >= 0; i-- {
		records = append(records, composeRecord(emitted[i], slots, window, prevClose, havePrev, cfg))
	}
	return records
}

func composeRecord(p EmittedPoint, slots []Slot, window []time.Time, prevClose float64, havePrev bool, cfg Config) model.FeedRecord {
	rec := model.FeedRecord{
		ID:        fmt.Sprintf("%s-%s", strings.ToLower(cfg.Symbol), p.Time.Format("20060102-1504")),
		Time:      p.Time,
		Price:     p.Price,
		TimeLabel: p.Time.Format("15:04 MST"),
	}

	if havePrev {
		change := p.Price - prevClose
		pct := 0.0
		if prevClose != 0 {
			pct = change / prevClose * 100
		}
		rec.ChangeVsPrevClose = &change
		rec.PctVsPrevClose = &pct
	}

	// One-hour lookback: the grid value at the latest grid timestamp at or
	// before t-lookback. An exact floor to the grid, not nearest-available.
	if lb, ok := lookbackPrice(p.Time, slots, window, cfg.Lookback); ok && lb != 0 {
		change := p.Price - lb
		pct := change / lb * 100
		rec.ChangeVs1h = &change
		rec.PctVs1h = &pct
	}

	rec.Summary = formatSummary(cfg.Symbol, p, prevClose, havePrev)
	rec.Title = formatTitle(cfg.Symbol, p, rec.ChangeVs1h, rec.PctVs1h)
	rec.ContentHTML = formatContentHTML(cfg.Symbol, p, prevClose, havePrev)
	return rec
}

func lookbackPrice(t time.Time, slots []Slot, window []time.Time, lookback time.Duration) (float64, bool) {
	target := t.Add(-lookback)
	// First grid index strictly after the target, minus one.
	i := sort.Search(len(window), func(i int) bool { return window[i].After(target) }) - 1
	if i < 0 || !slots[i].Filled {
		return 0, false
	}
	return slots[i].Price, true
}

func formatTitle(symbol string, p EmittedPoint, change1h, pct1h *float64) string {
	diff := ""
	if change1h != nil && pct1h != nil {
		diff = fmt.Sprintf(" (%+.2f, %+.2f%% vs 1h ago)", *change1h, *pct1h)
	}
	return fmt.Sprintf("%s: $%.2f%s [%s]", symbol, p.Price, diff, p.Time.Format("15:04 MST"))
}

func formatSummary(symbol string, p EmittedPoint, prevClose float64, havePrev bool) string {
	label := p.Time.Format("15:04 MST")
	if !havePrev {
		return fmt.Sprintf("%s %.2f at %s", symbol, p.Price, label)
	}
	change := p.Price - prevClose
	pct := 0.0
	if prevClose != 0 {
		pct = change / prevClose * 100
	}
	return fmt.Sprintf("%s %.2f (%+.2f, %+.2f%%) at %s", symbol, p.Price, change, pct, label)
}

func formatContentHTML(symbol string, p EmittedPoint, prevClose float64, havePrev bool) string {
	var b strings.Builder
	b.WriteString("<div>\n")
	b.WriteString(fmt.Sprintf("<h2>%s Stock Price Update</h2>\n", symbol))
	b.WriteString(fmt.Sprintf("<p><strong>Price:</strong> $%.2f</p>\n", p.Price))
	if havePrev {
		b.WriteString(fmt.Sprintf("<p><strong>Previous Close:</strong> $%.2f</p>\n", prevClose))
	}
	b.WriteString(fmt.Sprintf("<p><strong>Timestamp:</strong> %s</p>\n", p.Time.Format("2006-01-02 15:04 MST")))
	b.WriteString("</div>")
	return b.String()
}


