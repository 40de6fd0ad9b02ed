package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DanGreiner33/podcast-summary-platform/internal/models"
)

// SummaryStore persists summary records mirroring the corpus layout:
// {root}/{genre}/{podcast}/{date}_{title}.json.
type SummaryStore struct {
	root string
}

// NewSummaryStore creates the summary root directory if needed.
func NewSummaryStore(root string) (*SummaryStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create summaries directory: %w", err)
	}
	return &SummaryStore{root: root}, nil
}

func (s *SummaryStore) Root() string {
	return s.root
}

// WriteSummary persists one summary record and returns its path.
func (s *SummaryStore) WriteSummary(rec *models.SummaryRecord) (string, error) {
	genre := rec.Genre
	if genre == "" {
		genre = "unknown"
	}
	podcast := rec.PodcastName
	if podcast == "" {
		podcast = "unknown"
	}

	dir := filepath.Join(s.root, genre, SanitizeFilename(podcast))
	path := filepath.Join(dir, RecordFilename(rec.UploadDate, rec.EpisodeTitle))
	if err := WriteJSONFile(path, rec); err != nil {
		return "", fmt.Errorf("failed to write summary for %s: %w", rec.VideoID, err)
	}
	return path, nil
}

// ListSummaryFiles returns every summary record path in sorted order.
func (s *SummaryStore) ListSummaryFiles() ([]string, error) {
	return listJSONFiles(s.root, "")
}

// ReadSummary loads one persisted summary record.
func (s *SummaryStore) ReadSummary(path string) (*models.SummaryRecord, error) {
	var rec models.SummaryRecord
	if err := readJSON(path, &rec); err != nil {
		return nil, fmt.Errorf("failed to read summary record %s: %w", path, err)
	}
	return &rec, nil
}
