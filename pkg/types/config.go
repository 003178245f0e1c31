// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration records shared by the docsync stages.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docsync/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SyncConfig is the on-disk shape of the file/tab/document mapping.
type SyncConfig struct {
	// DocID is the primary Google Doc that owns every file without an override.
	DocID string `json:"doc_id" yaml:"doc_id" mapstructure:"doc_id"`

	// SiteURL is the canonical site origin (e.g. "https://6pack.care").
	// Links under it are relativized on pull and absolutized on push.
	SiteURL string `json:"site_url" yaml:"site_url" mapstructure:"site_url"`

	// Files lists the managed Markdown files, in sync order.
	Files []string `json:"files" yaml:"files" mapstructure:"files"`

	// Tabs maps each managed file to its tab ID.
	Tabs map[string]string `json:"tabs" yaml:"tabs" mapstructure:"tabs"`

	// DocOverrides maps a file to a document other than DocID.
	DocOverrides map[string]string `json:"doc_overrides,omitempty" yaml:"doc_overrides,omitempty" mapstructure:"doc_overrides"`

	// ContentStart maps a file to the heading prefix where managed content
	// begins inside its tab. Files not listed sync the whole tab.
	ContentStart map[string]string `json:"content_start,omitempty" yaml:"content_start,omitempty" mapstructure:"content_start"`

	// FAQFiles lists files that get FAQ anchor reconstruction on pull.
	FAQFiles []string `json:"faq_files,omitempty" yaml:"faq_files,omitempty" mapstructure:"faq_files"`

	// Scrape configures the published-HTML fallback.
	Scrape ScrapeConfig `json:"scrape" yaml:"scrape" mapstructure:"scrape"`
}

// ScrapeConfig holds settings for the published-HTML scrape fallback.
type ScrapeConfig struct {
	// DocURL is the published ("File > Share > Publish to web") document URL.
	DocURL string `json:"doc_url" yaml:"doc_url" mapstructure:"doc_url"`

	// Sections maps a section marker (e.g. "ch1: attentiveness.md") to a
	// local filename. Markers not listed are written under their own name.
	Sections map[string]string `json:"sections,omitempty" yaml:"sections,omitempty" mapstructure:"sections"`

	// StopPrefixes end a section early when an element's text starts with
	// one of them.
	StopPrefixes []string `json:"stop_prefixes,omitempty" yaml:"stop_prefixes,omitempty" mapstructure:"stop_prefixes"`
}

// SpeechConfig holds settings for the speech synthesis stage.
type SpeechConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// VoiceID is the ElevenLabs voice.
	VoiceID string `json:"voice_id" yaml:"voice_id" mapstructure:"voice_id"`

	// Model is the ElevenLabs model identifier (e.g. "eleven_turbo_v2").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// OutputFormat is the ElevenLabs output format (e.g. "mp3_44100_128").
	OutputFormat string `json:"output_format" yaml:"output_format" mapstructure:"output_format"`

	// MaxChars is the input-length ceiling for one synthesis request.
	MaxChars int `json:"max_chars" yaml:"max_chars" mapstructure:"max_chars"`

	// Stability, SimilarityBoost, Style and SpeakerBoost are sent as
	// voice_settings.
	Stability       float64 `json:"stability" yaml:"stability" mapstructure:"stability"`
	SimilarityBoost float64 `json:"similarity_boost" yaml:"similarity_boost" mapstructure:"similarity_boost"`
	Style           float64 `json:"style" yaml:"style" mapstructure:"style"`
	SpeakerBoost    bool    `json:"use_speaker_boost" yaml:"use_speaker_boost" mapstructure:"use_speaker_boost"`
}

// LoudnessConfig holds the loudness normalization targets.
type LoudnessConfig struct {
	// IntegratedLUFS is the integrated loudness target.
	IntegratedLUFS float64 `json:"integrated_lufs" yaml:"integrated_lufs" mapstructure:"integrated_lufs"`

	// TruePeak is the true-peak ceiling in dBTP.
	TruePeak float64 `json:"true_peak" yaml:"true_peak" mapstructure:"true_peak"`

	// LoudnessRange is the target loudness range in LU.
	LoudnessRange float64 `json:"loudness_range" yaml:"loudness_range" mapstructure:"loudness_range"`

	// SampleRate is the output sample rate in Hz.
	SampleRate int `json:"sample_rate" yaml:"sample_rate" mapstructure:"sample_rate"`
}

// DefaultSpeechConfig returns the settings the site's narration is
// produced with.
func DefaultSpeechConfig() SpeechConfig {
	return SpeechConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   300 * time.Second,
			UserAgent: "docsync/0.1",
		},
		VoiceID:         "0YIItGwEClgeMtCdHyV1",
		Model:           "eleven_turbo_v2",
		OutputFormat:    "mp3_44100_128",
		MaxChars:        40000,
		Stability:       0.99,
		SimilarityBoost: 0.99,
		Style:           0.0,
		SpeakerBoost:    true,
	}
}

// DefaultLoudnessConfig returns the broadcast speech loudness targets.
func DefaultLoudnessConfig() LoudnessConfig {
	return LoudnessConfig{
		IntegratedLUFS: -16,
		TruePeak:       -1.5,
		LoudnessRange:  7,
		SampleRate:     44100,
	}
}
