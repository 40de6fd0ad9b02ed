// Package transcript retrieves YouTube caption tracks. The Data API's
// captions.download endpoint only works with the video owner's OAuth
// grant, so track listing goes through the Innertube player endpoint and
// the selected track is fetched as timedtext XML.
package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DanGreiner33/podcast-summary-platform/internal/models"
)

const (
	defaultPlayerURL = "https://www.youtube.com/youtubei/v1/player"
	androidVersion   = "19.09.37"
	androidUserAgent = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"
)

// ErrNoEnglishTrack is returned when a video has caption tracks but none
// in English, manual or generated.
var ErrNoEnglishTrack = errors.New("no English caption track available")

// Resolver fetches transcripts for individual videos. Manually created
// English captions are always preferred over auto-generated ones.
type Resolver struct {
	client    *http.Client
	playerURL string
}

func NewResolver() *Resolver {
	return &Resolver{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		playerURL: defaultPlayerURL,
	}
}

// Resolve lists the video's caption tracks, selects a manual English
// track or falls back to a generated one, and fetches its timed entries.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (*models.Transcript, error) {
	tracks, err := r.listCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, isAuto, err := chooseEnglishTrack(tracks)
	if err != nil {
		return nil, err
	}

	segments, err := r.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, errors.New("caption track has no entries")
	}

	return &models.Transcript{
		Text:            joinSegments(segments),
		Segments:        segments,
		IsAutoGenerated: isAuto,
	}, nil
}

type playerRequest struct {
	VideoID        string        `json:"videoId"`
	Context        playerContext `json:"context"`
	RacyCheckOk    bool          `json:"racyCheckOk"`
	ContentCheckOk bool          `json:"contentCheckOk"`
}

type playerContext struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion"`
	Hl                string `json:"hl"`
	Gl                string `json:"gl"`
}

type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks
}

func (r *Resolver) listCaptionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	reqBody, err := json.Marshal(playerRequest{
		VideoID: videoID,
		Context: playerContext{
			Client: playerClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.playerURL+"?prettyPrint=false", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list caption tracks for %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player endpoint returned status %d for %s", resp.StatusCode, videoID)
	}

	var playerResp playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return nil, fmt.Errorf("failed to decode player response: %w", err)
	}

	if playerResp.Captions == nil {
		if playerResp.PlayabilityStatus != nil && playerResp.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", playerResp.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}

	tracks := playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks")
	}
	return tracks, nil
}

// chooseEnglishTrack applies the two-tier preference: a manually created
// English track wins, an auto-generated English track is the fallback.
func chooseEnglishTrack(tracks []captionTrack) (captionTrack, bool, error) {
	for _, t := range tracks {
		if isEnglish(t.LanguageCode) && t.Kind != "asr" {
			return t, false, nil
		}
	}
	for _, t := range tracks {
		if isEnglish(t.LanguageCode) && t.Kind == "asr" {
			return t, true, nil
		}
	}
	return captionTrack{}, false, ErrNoEnglishTrack
}

func isEnglish(languageCode string) bool {
	return languageCode == "en" || strings.HasPrefix(languageCode, "en-")
}

type timedText struct {
	XMLName xml.Name        `xml:"transcript"`
	Lines   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}

func (r *Resolver) fetchTimedText(ctx context.Context, baseURL string) ([]models.TranscriptSegment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", androidUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read timedtext: %w", err)
	}

	return parseTimedText(body)
}

func parseTimedText(data []byte) ([]models.TranscriptSegment, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("failed to parse timedtext XML: %w", err)
	}

	segments := make([]models.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		// Caption text arrives double-escaped ("&amp;#39;")
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		segments = append(segments, models.TranscriptSegment{
			Text:     text,
			Start:    line.Start,
			Duration: line.Dur,
		})
	}
	return segments, nil
}

func joinSegments(segments []models.TranscriptSegment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
