package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DanGreiner33/podcast-summary-platform/internal/models"
)

// StatsFileName is the run-statistics record written at the corpus root.
const StatsFileName = "scrape_stats.json"

// maxTitleChars caps the title portion of a record filename.
const maxTitleChars = 50

// Corpus is the on-disk transcript store: one JSON record per episode
// under {root}/{genre}/{podcast}/, plus the run statistics file. Writes
// are whole-file overwrites keyed by upload date and title, so re-running
// an identical scrape replaces records instead of duplicating them.
type Corpus struct {
	root string
}

// NewCorpus creates the corpus root directory if needed.
func NewCorpus(root string) (*Corpus, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create corpus directory: %w", err)
	}
	return &Corpus{root: root}, nil
}

func (c *Corpus) Root() string {
	return c.root
}

// WriteEpisode persists one episode record and returns its path.
func (c *Corpus) WriteEpisode(ep *models.Episode) (string, error) {
	dir := filepath.Join(c.root, ep.Genre, SanitizeFilename(ep.PodcastName))
	path := filepath.Join(dir, RecordFilename(ep.UploadDate, ep.Title))
	if err := WriteJSONFile(path, ep); err != nil {
		return "", fmt.Errorf("failed to write episode %s: %w", ep.VideoID, err)
	}
	return path, nil
}

// WriteStats persists the run statistics record, replacing any prior run's.
func (c *Corpus) WriteStats(stats *models.RunStats) (string, error) {
	path := filepath.Join(c.root, StatsFileName)
	if err := WriteJSONFile(path, stats); err != nil {
		return "", fmt.Errorf("failed to write run stats: %w", err)
	}
	return path, nil
}

// ListEpisodeFiles walks the corpus and returns every episode record
// path, excluding the statistics file, in sorted order.
func (c *Corpus) ListEpisodeFiles() ([]string, error) {
	return listJSONFiles(c.root, StatsFileName)
}

// ReadEpisode loads one persisted episode record.
func (c *Corpus) ReadEpisode(path string) (*models.Episode, error) {
	var ep models.Episode
	if err := readJSON(path, &ep); err != nil {
		return nil, fmt.Errorf("failed to read episode record %s: %w", path, err)
	}
	return &ep, nil
}

// SanitizeFilename strips characters that are invalid in filenames and
// trims surrounding whitespace. Idempotent.
func SanitizeFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(cleaned)
}

// RecordFilename derives the record filename from an upload date and
// title. The date defaults to "unknown" and the title is truncated to
// its first characters before sanitization, so two episodes sharing a
// date and truncated title collide and overwrite.
func RecordFilename(uploadDate, title string) string {
	if uploadDate == "" {
		uploadDate = "unknown"
	}
	runes := []rune(title)
	if len(runes) > maxTitleChars {
		runes = runes[:maxTitleChars]
	}
	return fmt.Sprintf("%s_%s.json", uploadDate, SanitizeFilename(string(runes)))
}

// WriteJSONFile writes v as indented JSON, creating parent directories
// and replacing any existing file.
func WriteJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

func readJSON(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(v)
}

func listJSONFiles(root string, exclude string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		if exclude != "" && filepath.Base(path) == exclude {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
