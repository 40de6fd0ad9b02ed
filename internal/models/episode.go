package models

import "time"

// Video is a candidate pulled from a channel listing. Listings are
// metadata-light, so most fields are only filled in by a follow-up
// metadata fetch. Candidates are never persisted directly.
type Video struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ChannelTitle    string `json:"channel_title"`
	UploadDate      string `json:"upload_date"` // YYYYMMDD, empty when unknown
	DurationSeconds int    `json:"duration_seconds"`
	ViewCount       int64  `json:"view_count"`
	URL             string `json:"url"`
}

// TranscriptSegment is one timed caption entry.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is a resolved caption track. Text is the ordered
// single-space join of the segment texts.
type Transcript struct {
	Text            string              `json:"transcript"`
	Segments        []TranscriptSegment `json:"segments"`
	IsAutoGenerated bool                `json:"is_auto_generated"`
}

// Episode is the persisted record for one acquired podcast episode.
// Written once by the scraper, never mutated afterwards.
type Episode struct {
	PodcastName     string              `json:"podcast_name"`
	Genre           string              `json:"genre"`
	VideoID         string              `json:"video_id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	DurationSeconds int                 `json:"duration_seconds"`
	UploadDate      string              `json:"upload_date"`
	ViewCount       int64               `json:"view_count"`
	Transcript      string              `json:"transcript"`
	Segments        []TranscriptSegment `json:"segments"`
	IsAutoGenerated bool                `json:"is_auto_generated"`
	YouTubeURL      string              `json:"youtube_url"`
	ScrapedAt       time.Time           `json:"scraped_at"`
}

// SummaryRecord is the outcome of summarizing one episode. Failed
// records carry Error and SourceFile only.
type SummaryRecord struct {
	Success         bool      `json:"success"`
	Summary         string    `json:"summary,omitempty"`
	Error           string    `json:"error,omitempty"`
	PodcastName     string    `json:"podcast_name,omitempty"`
	EpisodeTitle    string    `json:"episode_title,omitempty"`
	VideoID         string    `json:"video_id,omitempty"`
	YouTubeURL      string    `json:"youtube_url,omitempty"`
	UploadDate      string    `json:"upload_date,omitempty"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	Genre           string    `json:"genre,omitempty"`
	ViewCount       int64     `json:"view_count,omitempty"`
	SourceFile      string    `json:"source_file"`
	SummarizedAt    time.Time `json:"summarized_at,omitempty"`
}

// RunStats summarizes one scrape run. Overwritten each run.
type RunStats struct {
	ByGenre     map[string]int `json:"by_genre"`
	ByPodcast   map[string]int `json:"by_podcast"`
	Total       int            `json:"total"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
}

// ExportedEpisode is the flat projection consumed downstream.
type ExportedEpisode struct {
	ID              string `json:"id"`
	Podcast         string `json:"podcast"`
	Title           string `json:"title"`
	Genre           string `json:"genre"`
	Date            string `json:"date"` // YYYY-MM-DD, empty when unknown
	DurationSeconds int    `json:"duration_seconds"`
	ViewCount       int64  `json:"view_count"`
	Summary         string `json:"summary"`
	YouTubeURL      string `json:"youtube_url"`
}

// PodcastIndex groups a podcast's episode IDs under its genre.
type PodcastIndex struct {
	Genre    string   `json:"genre"`
	Episodes []string `json:"episodes"`
}

// Dataset is the single export artifact, rebuilt fully on every export.
type Dataset struct {
	Episodes   []ExportedEpisode        `json:"episodes"`
	Genres     map[string][]string      `json:"genres"`
	Podcasts   map[string]*PodcastIndex `json:"podcasts"`
	TotalCount int                      `json:"total_count"`
	ExportedAt time.Time                `json:"exported_at"`
}
