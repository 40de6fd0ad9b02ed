package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/DanGreiner33/podcast-summary-platform/internal/models"
	"github.com/DanGreiner33/podcast-summary-platform/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client wraps the YouTube Data API for channel listings and per-video
// metadata. It authenticates with an API key when one is configured
// (public data only needs that), falling back to the OAuth device flow.
type Client struct {
	service *youtube.Service
	config  *config.YouTubeConfig
}

func NewClient(cfg *config.YouTubeConfig) (*Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       []string{"https://www.googleapis.com/auth/youtube.readonly"},
			Endpoint:     google.Endpoint,
		}

		token, err := getToken(oauthConfig, cfg.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to get OAuth token: %w", err)
		}

		tokenSource := &tokenSaver{
			config:    oauthConfig,
			token:     token,
			tokenFile: cfg.TokenFile,
		}
		opts = append(opts, option.WithHTTPClient(oauth2.NewClient(ctx, tokenSource)))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service: service,
		config:  cfg,
	}, nil
}

// ListChannelVideos returns up to maxVideos of a channel's most recent
// uploads in the platform's newest-first order. Channel accepts an
// "@handle" or a raw channel ID. Listing entries are metadata-light;
// callers enrich accepted candidates via GetVideoMetadata.
func (c *Client) ListChannelVideos(ctx context.Context, channel string, maxVideos int) ([]*models.Video, error) {
	uploadsPlaylist, err := c.resolveUploadsPlaylist(ctx, channel)
	if err != nil {
		return nil, err
	}

	var videos []*models.Video
	pageToken := ""

	for len(videos) < maxVideos {
		pageSize := int64(maxVideos - len(videos))
		if pageSize > 50 {
			pageSize = 50
		}

		call := c.service.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(uploadsPlaylist).
			MaxResults(pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list uploads for %s: %w", channel, err)
		}

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Snippet.ResourceId == nil {
				continue
			}
			id := item.Snippet.ResourceId.VideoId
			videos = append(videos, &models.Video{
				ID:    id,
				Title: item.Snippet.Title,
				URL:   WatchURL(id),
			})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if len(videos) > maxVideos {
		videos = videos[:maxVideos]
	}
	return videos, nil
}

// GetVideoMetadata fetches full metadata for a single video.
func (c *Client) GetVideoMetadata(ctx context.Context, videoID string) (*models.Video, error) {
	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata for %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	item := resp.Items[0]
	video := &models.Video{
		ID:  videoID,
		URL: WatchURL(videoID),
	}

	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.Description = item.Snippet.Description
		video.ChannelTitle = item.Snippet.ChannelTitle
		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.UploadDate = publishedAt.UTC().Format("20060102")
		}
	}
	if item.ContentDetails != nil {
		video.DurationSeconds = parseDurationSeconds(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
	}

	return video, nil
}

func (c *Client) resolveUploadsPlaylist(ctx context.Context, channel string) (string, error) {
	call := c.service.Channels.List([]string{"contentDetails"}).Context(ctx)
	if strings.HasPrefix(channel, "@") {
		call = call.ForHandle(channel)
	} else {
		call = call.Id(channel)
	}

	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up channel %s: %w", channel, err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("channel %s not found", channel)
	}

	details := resp.Items[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		return "", fmt.Errorf("channel %s has no uploads playlist", channel)
	}
	return details.RelatedPlaylists.Uploads, nil
}

// WatchURL is the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://youtube.com/watch?v=" + videoID
}

var iso8601DurationRE = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseDurationSeconds converts an ISO 8601 duration like "PT2H15M30S"
// into seconds. Returns 0 for empty or unparseable input.
func parseDurationSeconds(duration string) int {
	if duration == "" {
		return 0
	}

	matches := iso8601DurationRE.FindStringSubmatch(duration)
	if len(matches) == 0 {
		return 0
	}

	var totalSeconds int
	if matches[1] != "" {
		if hours, err := strconv.Atoi(matches[1]); err == nil {
			totalSeconds += hours * 3600
		}
	}
	if matches[2] != "" {
		if minutes, err := strconv.Atoi(matches[2]); err == nil {
			totalSeconds += minutes * 60
		}
	}
	if matches[3] != "" {
		if seconds, err := strconv.Atoi(matches[3]); err == nil {
			totalSeconds += seconds
		}
	}
	return totalSeconds
}
