package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanGreiner33/podcast-summary-platform/agents/summarizer"
	"github.com/DanGreiner33/podcast-summary-platform/shared/ai"
	"github.com/DanGreiner33/podcast-summary-platform/shared/config"
	"github.com/DanGreiner33/podcast-summary-platform/shared/monitoring"
	"github.com/DanGreiner33/podcast-summary-platform/shared/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateSummarizer(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	corpus, err := storage.NewCorpus(cfg.Scraper.TranscriptsDir)
	if err != nil {
		log.Fatalf("Failed to open corpus: %v", err)
	}
	store, err := storage.NewSummaryStore(cfg.Summarizer.SummariesDir)
	if err != nil {
		log.Fatalf("Failed to open summary store: %v", err)
	}

	gemini, err := ai.NewSummarizer(&cfg.AI)
	if err != nil {
		log.Fatalf("Failed to create summarizer: %v", err)
	}

	driver := summarizer.New(&cfg.Summarizer, corpus, store, gemini)
	monitor := monitoring.NewMonitor()

	start := time.Now()
	succeeded, failed, err := driver.SummarizeAll(ctx)
	if err != nil {
		monitor.RecordCriticalFailure(err, time.Since(start))
		os.Exit(1)
	}

	dataset, err := summarizer.Export(store, cfg.Summarizer.ExportPath)
	if err != nil {
		monitor.RecordCriticalFailure(err, time.Since(start))
		os.Exit(1)
	}

	monitor.RecordSuccess(
		fmt.Sprintf("summarized %d episodes (%d failed), exported %d", succeeded, failed, dataset.TotalCount),
		time.Since(start))
}
