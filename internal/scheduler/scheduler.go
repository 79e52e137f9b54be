package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"StockFeed/internal/collector"
	"StockFeed/internal/feed"
	"StockFeed/internal/model"
	"StockFeed/internal/notifier"
	"StockFeed/internal/pipeline"
	"StockFeed/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the periodic feed refresh.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Pipeline  pipeline.Config
	Meta      feed.Meta
	Publisher *feed.Publisher
	Recorder  recorder.Recorder
	Notifier  *notifier.TelegramNotifier
	Ctx       context.Context

	mu      sync.Mutex
	lastRun *recorder.RunSnapshot
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, pcfg pipeline.Config, meta feed.Meta, pub *feed.Publisher, rec recorder.Recorder, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Pipeline:  pcfg,
		Meta:      meta,
		Publisher: pub,
		Recorder:  rec,
		Notifier:  tn,
		Ctx:       ctx,
	}
}

// Register schedules the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running feed refresh")

	data, err := s.Collector.Collect()
	if err != nil {
		log.Printf("[ERROR] refresh collect: %v", err)
		s.tryAlert(notifier.FormatDegradedAlert(s.Pipeline.Symbol, fmt.Sprintf("data collection failed: %v", err)))
		// Still run the pipeline: the previous-close / empty-grid paths
		// produce a best-effort feed rather than leaving stale files.
		data = &model.MarketData{Symbol: s.Pipeline.Symbol, FetchedAt: time.Now()}
	}

	res := pipeline.Run(time.Now(), data.Bars, data.Quote, s.Pipeline)
	for _, d := range res.Diagnostics {
		log.Printf("[WARN] pipeline: %s", d)
	}
	log.Printf("[INFO] emitted %d entries (fallback=%v)", len(res.Records), res.FallbackUsed)

	if err := s.Publisher.Publish(res, s.Meta); err != nil {
		log.Printf("[ERROR] publish feed: %v", err)
		s.tryAlert(notifier.FormatDegradedAlert(s.Pipeline.Symbol, fmt.Sprintf("publish failed: %v", err)))
		return
	}

	snap := buildSnapshot(data, res)
	if err := s.Recorder.RecordRun(snap); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	s.mu.Lock()
	s.lastRun = snap
	s.mu.Unlock()

	if len(res.Records) == 0 {
		s.tryAlert(notifier.FormatDegradedAlert(s.Pipeline.Symbol, "refresh produced an empty feed"))
	}
}

func buildSnapshot(data *model.MarketData, res pipeline.Result) *recorder.RunSnapshot {
	snap := &recorder.RunSnapshot{
		RunAt:         res.Now,
		Symbol:        data.Symbol,
		MarketState:   model.StateUnknown,
		BarCount:      len(data.Bars),
		EmittedCount:  len(res.Records),
		FallbackUsed:  res.FallbackUsed,
		PreviousClose: res.PreviousClose,
		Diagnostics:   res.Diagnostics,
		Records:       res.Records,
	}
	if data.Quote != nil {
		snap.MarketState = data.Quote.State
	}
	if len(res.Records) > 0 {
		latest := res.Records[0].Price // records are newest first
		snap.LatestPrice = &latest
	}
	return snap
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/status":
		s.mu.Lock()
		last := s.lastRun
		s.mu.Unlock()
		if last == nil {
			return "No refresh has run yet."
		}
		return notifier.FormatRunReport(last)
	case "/refresh":
		s.refreshTask()
		return "Refresh triggered."
	default:
		return "Available commands:\n• /status\n• /refresh"
	}
}

func (s *Scheduler) tryAlert(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}


