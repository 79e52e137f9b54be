package notifier

import (
	"fmt"
	"strings"

	"StockFeed/internal/recorder"
)

// FormatRunReport formats a run snapshot into a Telegram status message.
func FormatRunReport(snap *recorder.RunSnapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>%s feed refresh</b> | %s\n\n", snap.Symbol, snap.RunAt.Format("2006-01-02 15:04 MST")))
	b.WriteString(fmt.Sprintf("Market state: %s\n", snap.MarketState))
	if snap.LatestPrice != nil {
		b.WriteString(fmt.Sprintf("Latest price: $%.2f\n", *snap.LatestPrice))
	}
	if snap.PreviousClose != nil {
		b.WriteString(fmt.Sprintf("Previous close: $%.2f\n", *snap.PreviousClose))
	}
	b.WriteString(fmt.Sprintf("Bars fetched: %d\n", snap.BarCount))
	b.WriteString(fmt.Sprintf("Entries emitted: %d", snap.EmittedCount))
	if snap.FallbackUsed {
		b.WriteString(" (flat-series fallback)")
	}
	b.WriteString("\n")

	if len(snap.Diagnostics) > 0 {
		b.WriteString("\n⚠️ Diagnostics:\n")
		for _, d := range snap.Diagnostics {
			b.WriteString(fmt.Sprintf("  • %s\n", d))
		}
	}
	return b.String()
}

// FormatDegradedAlert formats an alert for a run that produced no usable feed.
func FormatDegradedAlert(symbol string, reason string) string {
	return fmt.Sprintf("❌ <b>%s feed degraded</b>\n\n%s", symbol, reason)
}


