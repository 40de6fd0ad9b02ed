package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanGreiner33/podcast-summary-platform/agents/scraper"
	"github.com/DanGreiner33/podcast-summary-platform/agents/scraper/transcript"
	"github.com/DanGreiner33/podcast-summary-platform/agents/scraper/youtube"
	"github.com/DanGreiner33/podcast-summary-platform/shared/catalog"
	"github.com/DanGreiner33/podcast-summary-platform/shared/config"
	"github.com/DanGreiner33/podcast-summary-platform/shared/monitoring"
	"github.com/DanGreiner33/podcast-summary-platform/shared/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateScraper(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cat := catalog.Default()
	if cfg.Scraper.CatalogFile != "" {
		cat, err = catalog.LoadFile(cfg.Scraper.CatalogFile)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
	}

	ytClient, err := youtube.NewClient(&cfg.YouTube)
	if err != nil {
		log.Fatalf("Failed to create YouTube client: %v", err)
	}

	corpus, err := storage.NewCorpus(cfg.Scraper.TranscriptsDir)
	if err != nil {
		log.Fatalf("Failed to open corpus: %v", err)
	}

	s := scraper.New(&cfg.Scraper, cat, ytClient, transcript.NewResolver(), corpus)
	monitor := monitoring.NewMonitor()

	start := time.Now()
	stats, err := s.ScrapeAll(ctx)
	if err != nil {
		monitor.RecordCriticalFailure(err, time.Since(start))
		os.Exit(1)
	}

	monitor.RecordSuccess(
		fmt.Sprintf("saved %d episodes across %d genres", stats.Total, len(stats.ByGenre)),
		time.Since(start))

	fmt.Println("\nEpisodes by genre:")
	for _, genre := range cat.Genres {
		fmt.Printf("  %s: %d\n", genre.Tag, stats.ByGenre[genre.Tag])
	}
}
