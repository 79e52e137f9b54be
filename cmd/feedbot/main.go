package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockFeed/internal/collector"
	"StockFeed/internal/config"
	"StockFeed/internal/feed"
	"StockFeed/internal/notifier"
	"StockFeed/internal/pipeline"
	"StockFeed/internal/recorder"
	"StockFeed/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] feedbot starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Session.Timezone)
	if err != nil {
		log.Fatalf("[FATAL] load timezone: %v", err)
	}
	pubZone, err := time.LoadLocation(cfg.Output.PubDateZone)
	if err != nil {
		log.Fatalf("[FATAL] load pubdate zone: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher = collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s, symbol: %s", fetcher.Name(), cfg.DataSource.Symbol)

	// Init collector
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol)

	// Pipeline configuration
	pcfg := pipeline.Config{
		Symbol:           cfg.DataSource.Symbol,
		Location:         loc,
		SessionStartHour: cfg.Session.StartHour,
		SessionEndHour:   cfg.Session.EndHour,
		Cadence:          time.Duration(cfg.Session.CadenceMinutes) * time.Minute,
		Lookback:         time.Duration(cfg.Session.LookbackMinutes) * time.Minute,
		EmitCap:          cfg.Emit.MaxItems,
		FallbackEnabled:  cfg.FallbackEnabled(),
	}

	// Feed metadata and publisher
	meta := feed.Meta{
		Title:       cfg.Feed.Title,
		Subtitle:    cfg.Feed.Subtitle,
		AtomURL:     cfg.Feed.AtomURL,
		RSSURL:      cfg.Feed.RSSURL,
		Homepage:    cfg.Feed.Homepage,
		IconURL:     cfg.Feed.IconURL,
		Author:      cfg.Feed.Author,
		Symbol:      cfg.DataSource.Symbol,
		PubDateZone: pubZone,
	}
	pub := feed.NewPublisher(cfg.Output.Dir, cfg.Output.IconFile)

	// Init Telegram notifier (disabled when unconfigured)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, pcfg, meta, pub, rec, tn)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling when configured
	if tn.Enabled() {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing feed now")
		go sched.RunNow()
	}

	log.Println("[INFO] feedbot is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] feedbot stopped")
}


