// Package summarizer turns persisted episode transcripts into
// article-style summary records and aggregates them into the single
// export dataset consumed downstream.
package summarizer

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/DanGreiner33/podcast-summary-platform/internal/models"
	"github.com/DanGreiner33/podcast-summary-platform/shared/config"
	"github.com/DanGreiner33/podcast-summary-platform/shared/storage"
)

// truncationMarker is appended when a transcript exceeds the character
// budget of the summarization model.
const truncationMarker = "\n\n[TRANSCRIPT TRUNCATED]"

// SummarySource generates an article summary from one transcript.
type SummarySource interface {
	SummarizeTranscript(ctx context.Context, podcastName, episodeTitle, transcript string) (string, error)
}

// Driver reads persisted episode records, invokes the summarization
// collaborator once per episode, and persists the successes mirroring
// the corpus layout. Strictly sequential.
type Driver struct {
	corpus             *storage.Corpus
	store              *storage.SummaryStore
	ai                 SummarySource
	maxTranscriptChars int
	limit              int
}

func New(cfg *config.SummarizerConfig, corpus *storage.Corpus, store *storage.SummaryStore, ai SummarySource) *Driver {
	return &Driver{
		corpus:             corpus,
		store:              store,
		ai:                 ai,
		maxTranscriptChars: cfg.MaxTranscriptChars,
		limit:              cfg.Limit,
	}
}

// SummarizeEpisode produces the summary record for one transcript file.
// Always returns a record; failures are captured in it rather than
// returned, so one bad episode never halts a batch.
func (d *Driver) SummarizeEpisode(ctx context.Context, transcriptPath string) *models.SummaryRecord {
	episode, err := d.corpus.ReadEpisode(transcriptPath)
	if err != nil {
		return failureRecord(transcriptPath, err.Error())
	}

	if episode.Transcript == "" {
		return failureRecord(transcriptPath, "no transcript content")
	}

	transcript := truncateTranscript(episode.Transcript, d.maxTranscriptChars)

	summary, err := d.ai.SummarizeTranscript(ctx, episode.PodcastName, episode.Title, transcript)
	if err != nil {
		return failureRecord(transcriptPath, err.Error())
	}

	return &models.SummaryRecord{
		Success:         true,
		Summary:         summary,
		PodcastName:     episode.PodcastName,
		EpisodeTitle:    episode.Title,
		VideoID:         episode.VideoID,
		YouTubeURL:      episode.YouTubeURL,
		UploadDate:      episode.UploadDate,
		DurationSeconds: episode.DurationSeconds,
		Genre:           episode.Genre,
		ViewCount:       episode.ViewCount,
		SourceFile:      transcriptPath,
		SummarizedAt:    time.Now(),
	}
}

// SummarizeAll processes every persisted transcript, optionally capped,
// persisting each success. Returns the success and failure counts;
// the error is reserved for discovery and persistence problems.
func (d *Driver) SummarizeAll(ctx context.Context) (succeeded, failed int, err error) {
	files, err := d.corpus.ListEpisodeFiles()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to discover transcripts: %w", err)
	}
	if d.limit > 0 && len(files) > d.limit {
		files = files[:d.limit]
	}

	log.Printf("Found %d transcripts to summarize", len(files))

	for i, path := range files {
		log.Printf("[%d/%d] %s", i+1, len(files), filepath.Base(path))

		record := d.SummarizeEpisode(ctx, path)
		if record.Success {
			if _, err := d.store.WriteSummary(record); err != nil {
				return succeeded, failed, fmt.Errorf("failed to persist summary: %w", err)
			}
			succeeded++
			log.Printf("  ✓ Done")
		} else {
			failed++
			log.Printf("  ✗ Error: %s", record.Error)
		}

		if ctx.Err() != nil {
			return succeeded, failed, ctx.Err()
		}
	}

	log.Printf("Summarization complete: %d/%d successful", succeeded, len(files))
	return succeeded, failed, nil
}

func failureRecord(sourceFile, errMsg string) *models.SummaryRecord {
	return &models.SummaryRecord{
		Success:    false,
		Error:      errMsg,
		SourceFile: sourceFile,
	}
}

// truncateTranscript caps a transcript at maxChars characters. The cut
// is a raw character boundary, not a semantic one.
func truncateTranscript(transcript string, maxChars int) string {
	runes := []rune(transcript)
	if maxChars <= 0 || len(runes) <= maxChars {
		return transcript
	}
	return string(runes[:maxChars]) + truncationMarker
}
