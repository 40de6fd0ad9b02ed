package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChooseEnglishTrack(t *testing.T) {
	manual := captionTrack{BaseURL: "http://example.com/manual", LanguageCode: "en"}
	manualUS := captionTrack{BaseURL: "http://example.com/manual-us", LanguageCode: "en-US"}
	auto := captionTrack{BaseURL: "http://example.com/auto", LanguageCode: "en", Kind: "asr"}
	french := captionTrack{BaseURL: "http://example.com/fr", LanguageCode: "fr"}

	tests := []struct {
		name     string
		tracks   []captionTrack
		wantURL  string
		wantAuto bool
		wantErr  bool
	}{
		{
			name:     "manual preferred over auto even when auto listed first",
			tracks:   []captionTrack{auto, manual},
			wantURL:  manual.BaseURL,
			wantAuto: false,
		},
		{
			name:     "auto used when no manual exists",
			tracks:   []captionTrack{french, auto},
			wantURL:  auto.BaseURL,
			wantAuto: true,
		},
		{
			name:     "regional English counts as manual",
			tracks:   []captionTrack{auto, manualUS},
			wantURL:  manualUS.BaseURL,
			wantAuto: false,
		},
		{
			name:    "no English track fails",
			tracks:  []captionTrack{french},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, isAuto, err := chooseEnglishTrack(tt.tracks)
			if tt.wantErr {
				if !errors.Is(err, ErrNoEnglishTrack) {
					t.Fatalf("chooseEnglishTrack() error = %v, want ErrNoEnglishTrack", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("chooseEnglishTrack() error = %v", err)
			}
			if track.BaseURL != tt.wantURL {
				t.Errorf("chose track %s, want %s", track.BaseURL, tt.wantURL)
			}
			if isAuto != tt.wantAuto {
				t.Errorf("isAuto = %v, want %v", isAuto, tt.wantAuto)
			}
		})
	}
}

func TestParseTimedText(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.5" dur="2.5">so today we&amp;#39;re talking</text>
  <text start="3.0" dur="1.5">   </text>
  <text start="4.5" dur="3.0">about podcasts</text>
</transcript>`)

	segments, err := parseTimedText(data)
	if err != nil {
		t.Fatalf("parseTimedText() error = %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2 (blank entry dropped)", len(segments))
	}

	if segments[0].Text != "so today we're talking" {
		t.Errorf("segment[0].Text = %q, want unescaped text", segments[0].Text)
	}
	if segments[0].Start != 0.5 || segments[0].Duration != 2.5 {
		t.Errorf("segment[0] timing = (%v, %v), want (0.5, 2.5)", segments[0].Start, segments[0].Duration)
	}
	if segments[1].Text != "about podcasts" {
		t.Errorf("segment[1].Text = %q", segments[1].Text)
	}
}

func TestResolve(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	var tracks []captionTrack
	mux.HandleFunc("/player", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		resp := map[string]any{
			"captions": map[string]any{
				"playerCaptionsTracklistRenderer": map[string]any{
					"captionTracks": tracks,
				},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode player response: %v", err)
		}
	})
	mux.HandleFunc("/timedtext/manual", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript><text start="0" dur="2.5">hello</text><text start="2.5" dur="3">world</text></transcript>`)
	})
	mux.HandleFunc("/timedtext/auto", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript><text start="0" dur="1">auto text</text></transcript>`)
	})

	resolver := &Resolver{
		client:    &http.Client{Timeout: 5 * time.Second},
		playerURL: server.URL + "/player",
	}

	t.Run("PrefersManualCaptions", func(t *testing.T) {
		tracks = []captionTrack{
			{BaseURL: server.URL + "/timedtext/auto", LanguageCode: "en", Kind: "asr"},
			{BaseURL: server.URL + "/timedtext/manual", LanguageCode: "en"},
		}

		tr, err := resolver.Resolve(context.Background(), "video1")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if tr.IsAutoGenerated {
			t.Error("IsAutoGenerated = true, want false when a manual track exists")
		}
		if tr.Text != "hello world" {
			t.Errorf("Text = %q, want %q", tr.Text, "hello world")
		}
		if len(tr.Segments) != 2 {
			t.Errorf("got %d segments, want 2", len(tr.Segments))
		}
	})

	t.Run("FallsBackToAutoCaptions", func(t *testing.T) {
		tracks = []captionTrack{
			{BaseURL: server.URL + "/timedtext/auto", LanguageCode: "en", Kind: "asr"},
		}

		tr, err := resolver.Resolve(context.Background(), "video2")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !tr.IsAutoGenerated {
			t.Error("IsAutoGenerated = false, want true for asr track")
		}
		if tr.Text != "auto text" {
			t.Errorf("Text = %q, want %q", tr.Text, "auto text")
		}
	})

	t.Run("NoEnglishTrackFails", func(t *testing.T) {
		tracks = []captionTrack{
			{BaseURL: server.URL + "/timedtext/manual", LanguageCode: "fr"},
		}

		if _, err := resolver.Resolve(context.Background(), "video3"); !errors.Is(err, ErrNoEnglishTrack) {
			t.Errorf("Resolve() error = %v, want ErrNoEnglishTrack", err)
		}
	})

	t.Run("NoTracksFails", func(t *testing.T) {
		tracks = nil

		if _, err := resolver.Resolve(context.Background(), "video4"); err == nil {
			t.Error("Resolve() error = nil, want error for empty track list")
		}
	})
}
