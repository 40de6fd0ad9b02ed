package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/DanGreiner33/podcast-summary-platform/internal/models"
	"github.com/DanGreiner33/podcast-summary-platform/shared/catalog"
	"github.com/DanGreiner33/podcast-summary-platform/shared/config"
	"github.com/DanGreiner33/podcast-summary-platform/shared/storage"

	"golang.org/x/time/rate"
)

// overFetchFactor is how many candidates are enumerated per quota slot,
// to absorb losses to filtering and missing transcripts.
const overFetchFactor = 3

// VideoSource lists a channel's recent uploads and fetches per-video
// metadata.
type VideoSource interface {
	ListChannelVideos(ctx context.Context, channel string, maxVideos int) ([]*models.Video, error)
	GetVideoMetadata(ctx context.Context, videoID string) (*models.Video, error)
}

// TranscriptSource resolves a video's transcript.
type TranscriptSource interface {
	Resolve(ctx context.Context, videoID string) (*models.Transcript, error)
}

// Scraper walks the catalog, filters candidates down to real episodes,
// resolves their transcripts, and persists one record per accepted
// episode. Strictly sequential; pacing between remote calls comes from
// an injected rate limiter.
type Scraper struct {
	catalog      *catalog.Catalog
	videos       VideoSource
	transcripts  TranscriptSource
	corpus       *storage.Corpus
	limiter      *rate.Limiter
	podcastPause time.Duration
	targetTotal  int
	minPerShow   int
}

// New wires a scraper from its collaborators. Interval values below
// zero in the config disable pacing entirely (tests use this).
func New(cfg *config.ScraperConfig, cat *catalog.Catalog, videos VideoSource, transcripts TranscriptSource, corpus *storage.Corpus) *Scraper {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if interval := cfg.RequestInterval(); interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	pause := cfg.PodcastPause()
	if pause < 0 {
		pause = 0
	}

	return &Scraper{
		catalog:      cat,
		videos:       videos,
		transcripts:  transcripts,
		corpus:       corpus,
		limiter:      limiter,
		podcastPause: pause,
		targetTotal:  cfg.TargetTotal,
		minPerShow:   cfg.MinEpisodesPerShow,
	}
}

// ScrapePodcast acquires up to quota episodes for one show. Enumeration
// failure is logged and yields zero rather than an error, so one dead
// channel never blocks the rest of the run. Returned errors are limited
// to persistence failures and context cancellation.
func (s *Scraper) ScrapePodcast(ctx context.Context, show catalog.Show, genre string, quota int) (int, error) {
	log.Printf("Scraping: %s (channel %s)", show.Name, show.Channel)

	videos, err := s.videos.ListChannelVideos(ctx, show.Channel, quota*overFetchFactor)
	if err != nil {
		log.Printf("Warning: failed to list channel %s: %v", show.Channel, err)
		return 0, nil
	}
	log.Printf("Found %d videos", len(videos))

	saved := 0
	for _, video := range videos {
		if saved >= quota {
			break
		}
		if video.ID == "" {
			continue
		}

		meta, err := s.videos.GetVideoMetadata(ctx, video.ID)
		if err != nil {
			log.Printf("  Error getting metadata for %s: %v", video.ID, err)
			continue
		}

		if !IsEpisode(meta.Title, meta.DurationSeconds) {
			log.Printf("  Skipping (not full episode): %s", truncateTitle(meta.Title))
			if err := s.pace(ctx); err != nil {
				return saved, err
			}
			continue
		}

		log.Printf("  Fetching: %s", truncateTitle(meta.Title))
		tr, err := s.transcripts.Resolve(ctx, video.ID)
		if err != nil {
			log.Printf("    No transcript available: %v", err)
			if err := s.pace(ctx); err != nil {
				return saved, err
			}
			continue
		}

		episode := &models.Episode{
			PodcastName:     show.Name,
			Genre:           genre,
			VideoID:         video.ID,
			Title:           meta.Title,
			Description:     meta.Description,
			DurationSeconds: meta.DurationSeconds,
			UploadDate:      meta.UploadDate,
			ViewCount:       meta.ViewCount,
			Transcript:      tr.Text,
			Segments:        tr.Segments,
			IsAutoGenerated: tr.IsAutoGenerated,
			YouTubeURL:      meta.URL,
			ScrapedAt:       time.Now(),
		}

		if _, err := s.corpus.WriteEpisode(episode); err != nil {
			return saved, fmt.Errorf("failed to persist episode %s: %w", video.ID, err)
		}

		saved++
		log.Printf("    Saved! (%d/%d)", saved, quota)

		if err := s.pace(ctx); err != nil {
			return saved, err
		}
	}

	return saved, nil
}

// ScrapeAll runs the full catalog scrape, stopping early once the target
// total is reached. One podcast failing is recorded as zero episodes and
// does not abort the run; statistics are written unconditionally.
func (s *Scraper) ScrapeAll(ctx context.Context) (*models.RunStats, error) {
	totalShows := s.catalog.TotalShows()
	if totalShows == 0 {
		return nil, fmt.Errorf("catalog contains no shows")
	}

	quota := s.targetTotal / totalShows
	if quota < s.minPerShow {
		quota = s.minPerShow
	}

	log.Printf("Starting scrape: %d podcasts, target %d episodes (%d per show)", totalShows, s.targetTotal, quota)
	log.Printf("Output: %s", s.corpus.Root())

	stats := &models.RunStats{
		ByGenre:   make(map[string]int),
		ByPodcast: make(map[string]int),
		StartedAt: time.Now(),
	}

	total := 0
	for _, genre := range s.catalog.Genres {
		stats.ByGenre[genre.Tag] = 0
		log.Printf(">>> GENRE: %s", strings.ToUpper(genre.Tag))

		for _, show := range genre.Shows {
			if total >= s.targetTotal {
				break
			}

			count, err := s.ScrapePodcast(ctx, show, genre.Tag, quota)
			if err != nil {
				log.Printf("Error scraping %s: %v", show.Name, err)
			}
			stats.ByPodcast[show.Name] = count
			stats.ByGenre[genre.Tag] += count
			total += count

			if s.podcastPause > 0 {
				time.Sleep(s.podcastPause)
			}
			if ctx.Err() != nil {
				break
			}
		}

		if total >= s.targetTotal || ctx.Err() != nil {
			break
		}
	}

	stats.Total = total
	stats.CompletedAt = time.Now()

	statsPath, err := s.corpus.WriteStats(stats)
	if err != nil {
		return stats, fmt.Errorf("failed to write run statistics: %w", err)
	}

	log.Printf("Scraping complete: %d episodes, stats saved to %s", total, statsPath)
	return stats, nil
}

// pace applies the per-candidate delay after each processed candidate.
func (s *Scraper) pace(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("scrape interrupted: %w", err)
	}
	return nil
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= 50 {
		return title
	}
	return string(runes[:50]) + "..."
}
