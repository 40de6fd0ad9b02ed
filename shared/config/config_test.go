package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"YOUTUBE_API_KEY", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("AI.Model = %s", cfg.AI.Model)
	}
	if cfg.AI.MaxOutputTokens != 2000 {
		t.Errorf("AI.MaxOutputTokens = %d", cfg.AI.MaxOutputTokens)
	}
	if cfg.Scraper.TranscriptsDir != "./transcripts" {
		t.Errorf("Scraper.TranscriptsDir = %s", cfg.Scraper.TranscriptsDir)
	}
	if cfg.Scraper.TargetTotal != 500 {
		t.Errorf("Scraper.TargetTotal = %d", cfg.Scraper.TargetTotal)
	}
	if cfg.Scraper.MinEpisodesPerShow != 5 {
		t.Errorf("Scraper.MinEpisodesPerShow = %d", cfg.Scraper.MinEpisodesPerShow)
	}
	if cfg.Scraper.RequestInterval() != time.Second {
		t.Errorf("RequestInterval() = %v", cfg.Scraper.RequestInterval())
	}
	if cfg.Scraper.PodcastPause() != 2*time.Second {
		t.Errorf("PodcastPause() = %v", cfg.Scraper.PodcastPause())
	}
	if cfg.Summarizer.SummariesDir != "./summaries" {
		t.Errorf("Summarizer.SummariesDir = %s", cfg.Summarizer.SummariesDir)
	}
	if cfg.Summarizer.ExportPath != "./data/episodes.json" {
		t.Errorf("Summarizer.ExportPath = %s", cfg.Summarizer.ExportPath)
	}
	if cfg.Summarizer.MaxTranscriptChars != 300000 {
		t.Errorf("Summarizer.MaxTranscriptChars = %d", cfg.Summarizer.MaxTranscriptChars)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `
youtube:
  api_key: file-key
ai:
  gemini_api_key: gem-key
  model: gemini-2.5-pro
scraper:
  target_total: 100
  request_interval_seconds: 3
summarizer:
  limit: 10
`)
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.YouTube.APIKey != "file-key" {
		t.Errorf("YouTube.APIKey = %s", cfg.YouTube.APIKey)
	}
	if cfg.AI.Model != "gemini-2.5-pro" {
		t.Errorf("AI.Model = %s", cfg.AI.Model)
	}
	if cfg.Scraper.TargetTotal != 100 {
		t.Errorf("Scraper.TargetTotal = %d", cfg.Scraper.TargetTotal)
	}
	if cfg.Scraper.RequestInterval() != 3*time.Second {
		t.Errorf("RequestInterval() = %v", cfg.Scraper.RequestInterval())
	}
	if cfg.Summarizer.Limit != 10 {
		t.Errorf("Summarizer.Limit = %d", cfg.Summarizer.Limit)
	}
	// Unset keys still get defaults.
	if cfg.Scraper.MinEpisodesPerShow != 5 {
		t.Errorf("Scraper.MinEpisodesPerShow = %d", cfg.Scraper.MinEpisodesPerShow)
	}
}

func TestLoadEnvFallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("YOUTUBE_API_KEY", "env-yt-key")
	t.Setenv("GEMINI_API_KEY", "env-gem-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.YouTube.APIKey != "env-yt-key" {
		t.Errorf("YouTube.APIKey = %s", cfg.YouTube.APIKey)
	}
	if cfg.AI.GeminiAPIKey != "env-gem-key" {
		t.Errorf("AI.GeminiAPIKey = %s", cfg.AI.GeminiAPIKey)
	}
}

func TestLoadFileWinsOverEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "youtube:\n  api_key: file-key\n")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("YOUTUBE_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.YouTube.APIKey != "file-key" {
		t.Errorf("YouTube.APIKey = %s, want file value to win", cfg.YouTube.APIKey)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "youtube: [broken\n")
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded for malformed config, want error")
	}
}

func TestValidateScraper(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "api key alone is enough",
			cfg:     Config{YouTube: YouTubeConfig{APIKey: "k"}, Scraper: ScraperConfig{TargetTotal: 500}},
			wantErr: false,
		},
		{
			name:    "oauth pair alone is enough",
			cfg:     Config{YouTube: YouTubeConfig{ClientID: "id", ClientSecret: "secret"}, Scraper: ScraperConfig{TargetTotal: 500}},
			wantErr: false,
		},
		{
			name:    "client id without secret",
			cfg:     Config{YouTube: YouTubeConfig{ClientID: "id"}, Scraper: ScraperConfig{TargetTotal: 500}},
			wantErr: true,
		},
		{
			name:    "no credentials",
			cfg:     Config{Scraper: ScraperConfig{TargetTotal: 500}},
			wantErr: true,
		},
		{
			name:    "non-positive target",
			cfg:     Config{YouTube: YouTubeConfig{APIKey: "k"}, Scraper: ScraperConfig{TargetTotal: 0}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateScraper()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScraper() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSummarizer(t *testing.T) {
	withKey := Config{AI: AIConfig{GeminiAPIKey: "k"}}
	if err := withKey.ValidateSummarizer(); err != nil {
		t.Errorf("ValidateSummarizer() error = %v", err)
	}

	var withoutKey Config
	if err := withoutKey.ValidateSummarizer(); err == nil {
		t.Error("ValidateSummarizer() succeeded without key, want error")
	}
}
