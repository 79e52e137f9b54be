package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"StockFeed/internal/collector"
	"StockFeed/internal/feed"
	"StockFeed/internal/model"
	"StockFeed/internal/notifier"
	"StockFeed/internal/pipeline"
	"StockFeed/internal/recorder"
)

func testScheduler(t *testing.T, fetcher collector.Fetcher) (*Scheduler, string) {
	t.Helper()
	loc := time.FixedZone("BRT", -3*60*60)
	dir := t.TempDir()

	pcfg := pipeline.Config{
		Symbol:           "OCGN",
		Location:         loc,
		SessionStartHour: 4,
		SessionEndHour:   21,
		Cadence:          5 * time.Minute,
		Lookback:         time.Hour,
		EmitCap:          50,
		FallbackEnabled:  true,
	}
	meta := feed.Meta{
		Title:       "OCGN Stock Price Feed",
		Subtitle:    "test",
		Homepage:    "https://example.com/",
		Author:      "bot",
		Symbol:      "OCGN",
		PubDateZone: loc,
	}
	s := NewScheduler(
		context.Background(),
		collector.NewCollector(fetcher, "OCGN"),
		pcfg,
		meta,
		feed.NewPublisher(dir, ""),
		recorder.NewNoopRecorder(),
		notifier.NewTelegramNotifier("", "", ""),
	)
	return s, dir
}

func TestRefresh_PublishesFeedFiles(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Now().In(loc)
	fetcher := &collector.MockFetcher{
		Bars: []model.OHLCV{
			{Time: now.Add(-2 * time.Hour), Close: 1.10},
			{Time: now.Add(-time.Hour), Close: 1.15},
			{Time: now.Add(-10 * time.Minute), Close: 1.20},
		},
	}
	s, dir := testScheduler(t, fetcher)

	s.RunNow()

	for _, name := range []string{"feed.atom", "feed.rss", "index.html"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to be published: %v", name, err)
		}
	}
}

func TestRefresh_RecordsLastRunForStatus(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Quote: &model.QuoteSnapshot{
			Price: 1.25, Time: time.Now(), Source: "regularMarketPrice", State: model.StateRegular,
		},
	}
	s, _ := testScheduler(t, fetcher)

	if reply := s.HandleCommand("/status"); reply != "No refresh has run yet." {
		t.Errorf("unexpected pre-run status: %q", reply)
	}
	s.RunNow()
	if reply := s.HandleCommand("/status"); reply == "No refresh has run yet." {
		t.Error("status must reflect the completed run")
	}
}

func TestHandleCommand_Unknown(t *testing.T) {
	s, _ := testScheduler(t, &collector.MockFetcher{})
	if reply := s.HandleCommand("/bogus"); reply == "" {
		t.Error("unknown commands must get a help reply")
	}
}

