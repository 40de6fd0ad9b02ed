package summarizer

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/DanGreiner33/podcast-summary-platform/internal/models"
	"github.com/DanGreiner33/podcast-summary-platform/shared/storage"
)

// Export scans every persisted summary record, drops failures, and
// rebuilds the single aggregated dataset from scratch, fully replacing
// any prior artifact at outputPath.
func Export(store *storage.SummaryStore, outputPath string) (*models.Dataset, error) {
	files, err := store.ListSummaryFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover summaries: %w", err)
	}

	var episodes []models.ExportedEpisode
	for _, path := range files {
		record, err := store.ReadSummary(path)
		if err != nil {
			log.Printf("Warning: skipping unreadable summary %s: %v", path, err)
			continue
		}
		if !record.Success {
			continue
		}

		episodes = append(episodes, models.ExportedEpisode{
			ID:              record.VideoID,
			Podcast:         record.PodcastName,
			Title:           record.EpisodeTitle,
			Genre:           record.Genre,
			Date:            formatUploadDate(record.UploadDate),
			DurationSeconds: record.DurationSeconds,
			ViewCount:       record.ViewCount,
			Summary:         record.Summary,
			YouTubeURL:      record.YouTubeURL,
		})
	}

	// Descending lexicographic on the zero-padded date, which matches
	// calendar order for well-formed dates; empty dates sort last.
	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].Date > episodes[j].Date
	})

	genres := make(map[string][]string)
	podcasts := make(map[string]*models.PodcastIndex)
	for _, ep := range episodes {
		genres[ep.Genre] = append(genres[ep.Genre], ep.ID)

		if idx, ok := podcasts[ep.Podcast]; ok {
			idx.Episodes = append(idx.Episodes, ep.ID)
		} else {
			podcasts[ep.Podcast] = &models.PodcastIndex{
				Genre:    ep.Genre,
				Episodes: []string{ep.ID},
			}
		}
	}

	dataset := &models.Dataset{
		Episodes:   episodes,
		Genres:     genres,
		Podcasts:   podcasts,
		TotalCount: len(episodes),
		ExportedAt: time.Now(),
	}

	if err := storage.WriteJSONFile(outputPath, dataset); err != nil {
		return nil, fmt.Errorf("failed to write export dataset: %w", err)
	}

	log.Printf("Export complete: %d episodes, %d genres, %d podcasts -> %s",
		dataset.TotalCount, len(genres), len(podcasts), outputPath)
	return dataset, nil
}

// formatUploadDate turns a raw 8-digit YYYYMMDD date into hyphenated
// YYYY-MM-DD form. Anything else maps to the empty string.
func formatUploadDate(raw string) string {
	if len(raw) != 8 {
		return ""
	}
	return raw[:4] + "-" + raw[4:6] + "-" + raw[6:8]
}
