package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube    YouTubeConfig    `yaml:"youtube"`
	AI         AIConfig         `yaml:"ai"`
	Scraper    ScraperConfig    `yaml:"scraper"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

type YouTubeConfig struct {
	APIKey       string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile    string `yaml:"token_file"`
}

type AIConfig struct {
	GeminiAPIKey    string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model           string `yaml:"model"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}

type ScraperConfig struct {
	TranscriptsDir         string `yaml:"transcripts_dir"`
	CatalogFile            string `yaml:"catalog_file"`
	TargetTotal            int    `yaml:"target_total"`
	MinEpisodesPerShow     int    `yaml:"min_episodes_per_show"`
	RequestIntervalSeconds int    `yaml:"request_interval_seconds"`
	PodcastPauseSeconds    int    `yaml:"podcast_pause_seconds"`
}

type SummarizerConfig struct {
	SummariesDir       string `yaml:"summaries_dir"`
	ExportPath         string `yaml:"export_path"`
	Limit              int    `yaml:"limit"`
	MaxTranscriptChars int    `yaml:"max_transcript_chars"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.YouTube.ClientID == "" {
		cfg.YouTube.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if cfg.YouTube.ClientSecret == "" {
		cfg.YouTube.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if cfg.YouTube.TokenFile == "" {
		cfg.YouTube.TokenFile = "youtube_token.json"
	}
	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.AI.MaxOutputTokens == 0 {
		c.AI.MaxOutputTokens = 2000
	}
	if c.Scraper.TranscriptsDir == "" {
		c.Scraper.TranscriptsDir = "./transcripts"
	}
	if c.Scraper.TargetTotal == 0 {
		c.Scraper.TargetTotal = 500
	}
	if c.Scraper.MinEpisodesPerShow == 0 {
		c.Scraper.MinEpisodesPerShow = 5
	}
	if c.Scraper.RequestIntervalSeconds == 0 {
		c.Scraper.RequestIntervalSeconds = 1
	}
	if c.Scraper.PodcastPauseSeconds == 0 {
		c.Scraper.PodcastPauseSeconds = 2
	}
	if c.Summarizer.SummariesDir == "" {
		c.Summarizer.SummariesDir = "./summaries"
	}
	if c.Summarizer.ExportPath == "" {
		c.Summarizer.ExportPath = "./data/episodes.json"
	}
	if c.Summarizer.MaxTranscriptChars == 0 {
		c.Summarizer.MaxTranscriptChars = 300000
	}
}

// ValidateScraper checks the keys the scraping pipeline needs. Either an
// API key or an OAuth client pair is enough to talk to the Data API.
func (c *Config) ValidateScraper() error {
	if c.YouTube.APIKey == "" && (c.YouTube.ClientID == "" || c.YouTube.ClientSecret == "") {
		return fmt.Errorf("YouTube credentials are required (set YOUTUBE_API_KEY, or GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET)")
	}
	if c.Scraper.TargetTotal < 1 {
		return fmt.Errorf("scraper target_total must be positive")
	}
	return nil
}

// ValidateSummarizer checks the keys the summarization pipeline needs.
func (c *Config) ValidateSummarizer() error {
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	return nil
}

// RequestInterval is the pause enforced after each processed candidate.
func (c *ScraperConfig) RequestInterval() time.Duration {
	return time.Duration(c.RequestIntervalSeconds) * time.Second
}

// PodcastPause is the pause enforced after each podcast.
func (c *ScraperConfig) PodcastPause() time.Duration {
	return time.Duration(c.PodcastPauseSeconds) * time.Second
}
