package ai

import (
	"context"
	"fmt"

	"github.com/DanGreiner33/podcast-summary-platform/shared/config"

	"google.golang.org/genai"
)

// Summarizer turns episode transcripts into article-style summaries via
// a single Gemini call per episode. No streaming, no retries.
type Summarizer struct {
	client          *genai.Client
	model           string
	maxOutputTokens int32
}

func NewSummarizer(cfg *config.AIConfig) (*Summarizer, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Summarizer{
		client:          client,
		model:           cfg.Model,
		maxOutputTokens: int32(cfg.MaxOutputTokens),
	}, nil
}

// SummarizeTranscript generates the article summary for one episode.
// The transcript is expected to be pre-truncated by the caller.
func (s *Summarizer) SummarizeTranscript(ctx context.Context, podcastName, episodeTitle, transcript string) (string, error) {
	prompt := buildArticlePrompt(podcastName, episodeTitle, transcript)

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: s.maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no summary response received")
	}
	return text, nil
}

func buildArticlePrompt(podcastName, episodeTitle, transcript string) string {
	return fmt.Sprintf(`You are a skilled writer for a site that creates engaging article summaries of podcast episodes. Think of yourself as writing for The Ringer or Morning Brew - casual, smart, and fun to read.

Given the following podcast transcript, write an article-style summary that:

1. Has an engaging, clickable headline (not clickbait, but genuinely interesting)
2. Opens with a 2-3 sentence hook that captures what made this episode worth listening to
3. Covers 5-8 key topics or moments with 2-3 sentences each
4. Uses a conversational, friendly tone - like you're telling a friend about a podcast you just listened to
5. Includes any notable quotes or memorable moments (paraphrased or very briefly quoted)
6. Ends with a quick "Bottom line" - who should listen and why

Keep it around 500-700 words. Be accurate to what was discussed - don't make things up.

PODCAST: %s
EPISODE TITLE: %s

TRANSCRIPT:
%s

Write the article summary now:`, podcastName, episodeTitle, transcript)
}
