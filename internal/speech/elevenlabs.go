// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/docsync/internal/httputil"
	"github.com/pdiddy/docsync/pkg/types"
)

// elevenLabsAPIBase is the ElevenLabs API origin. Declared as a var so
// tests can substitute an httptest server.
var elevenLabsAPIBase = "https://api.elevenlabs.io"

// TooLongError reports input over the per-request character ceiling.
type TooLongError struct {
	Chars int
	Limit int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("text is %s chars, exceeds %s limit", groupDigits(e.Chars), groupDigits(e.Limit))
}

// Synthesizer sends spoken text to ElevenLabs and writes the audio.
type Synthesizer struct {
	Client *http.Client
	APIKey string
	Config types.SpeechConfig
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	SpeakerBoost    bool    `json:"use_speaker_boost"`
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Synthesize converts text to audio and writes it to outPath, creating
// parent directories as needed.
func (s *Synthesizer) Synthesize(ctx context.Context, text, outPath string, w io.Writer) error {
	cfg := s.Config
	chars := len([]rune(text))
	limit := cfg.MaxChars
	if limit <= 0 {
		limit = types.DefaultSpeechConfig().MaxChars
	}
	fmt.Fprintf(w, "Characters: %s  (limit %s)\n", groupDigits(chars), groupDigits(limit))
	if chars > limit {
		return &TooLongError{Chars: chars, Limit: limit}
	}

	body, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: cfg.Model,
		VoiceSettings: voiceSettings{
			Stability:       cfg.Stability,
			SimilarityBoost: cfg.SimilarityBoost,
			Style:           cfg.Style,
			SpeakerBoost:    cfg.SpeakerBoost,
		},
	})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		elevenLabsAPIBase, url.PathEscape(cfg.VoiceID), url.QueryEscape(cfg.OutputFormat))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("xi-api-key", s.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("ElevenLabs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if err := httputil.CheckResponse("ElevenLabs", resp); err != nil {
			return err
		}
		return &httputil.StatusError{Service: "ElevenLabs", Code: resp.StatusCode}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading audio: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, audio, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(w, "Wrote %s  (%d KB, %.1fs)\n", outPath, len(audio)/1024, time.Since(start).Seconds())
	return nil
}

// groupDigits formats n with thousands commas.
func groupDigits(n int) string {
	s := fmt.Sprint(n)
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
