// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsync/internal/audio"
	"github.com/pdiddy/docsync/internal/secrets"
	"github.com/pdiddy/docsync/internal/speech"
	"github.com/pdiddy/docsync/pkg/types"
)

var speakCmd = &cobra.Command{
	Use:   "speak <input.md> <output.mp3>",
	Short: "Narrate a Markdown page with ElevenLabs",
	Long: `Speak rewrites a Markdown page into speech-ready text (numbers, years and
currency spelled out, markup removed), synthesizes it with ElevenLabs, and
normalizes the result to -16 LUFS with ffmpeg. --dry-run prints the spoken
text without calling the API.`,
	Args: cobra.ExactArgs(2),
	RunE: runSpeak,
}

func init() {
	speakCmd.Flags().Bool("dry-run", false, "print the spoken text and exit")
	speakCmd.Flags().Bool("skip-normalize", false, "keep the synthesized audio as returned")
	speakCmd.Flags().String("voice", "", "ElevenLabs voice ID (default from ELEVENLABS_VOICE_ID or built-in)")
	speakCmd.Flags().Duration("timeout", 0, "synthesis request timeout (default 300s)")

	rootCmd.AddCommand(speakCmd)
}

func runSpeak(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skipNormalize, _ := cmd.Flags().GetBool("skip-normalize")
	voice, _ := cmd.Flags().GetString("voice")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	raw, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}
	text := speech.Transform(string(raw))

	if dryRun {
		fmt.Println(text)
		return nil
	}

	apiKey, err := store.ElevenLabs()
	if err != nil {
		return err
	}

	cfg := types.DefaultSpeechConfig()
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	if voice == "" {
		voice, _ = store.Lookup(secrets.EnvElevenLabsVoiceID)
	}
	if voice != "" {
		cfg.VoiceID = voice
	}

	ctx := cmd.Context()
	s := &speech.Synthesizer{
		Client: &http.Client{Timeout: cfg.Timeout},
		APIKey: apiKey,
		Config: cfg,
	}
	if err := s.Synthesize(ctx, text, outPath, os.Stdout); err != nil {
		return err
	}

	if skipNormalize {
		return nil
	}
	n := audio.NewNormalizer(types.DefaultLoudnessConfig())
	if err := n.Normalize(ctx, outPath, os.Stdout); err != nil {
		fmt.Fprintf(os.Stdout, "Warning: loudness normalization skipped: %v\n", err)
	}
	return nil
}
