// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audio normalizes synthesized narration to a broadcast loudness
// target with a two-pass ffmpeg run.
package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/docsync/pkg/types"
)

const binFFmpeg = "ffmpeg"

// dynaudnorm flattens frame-level dynamics before loudnorm sets the
// integrated level.
const dynaudnorm = "dynaudnorm=f=150:g=31:p=0.95:m=20"

// ErrNoMeasurement means the analysis pass printed no loudnorm JSON.
var ErrNoMeasurement = errors.New("could not parse loudnorm output")

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

// Measurement is the loudnorm analysis printed by the first pass. ffmpeg
// reports every value as a JSON string.
type Measurement struct {
	InputI      string `json:"input_i"`
	InputTP     string `json:"input_tp"`
	InputLRA    string `json:"input_lra"`
	InputThresh string `json:"input_thresh"`
}

// Normalizer runs dynaudnorm followed by two-pass loudnorm over an audio
// file in place.
type Normalizer struct {
	Config types.LoudnessConfig
	exec   executor
}

// NewNormalizer returns a Normalizer that shells out to ffmpeg.
func NewNormalizer(cfg types.LoudnessConfig) *Normalizer {
	return &Normalizer{Config: cfg, exec: &osExecutor{}}
}

// Available reports whether ffmpeg is on PATH.
func (n *Normalizer) Available() bool {
	_, err := n.exec.LookPath(binFFmpeg)
	return err == nil
}

// Normalize measures path, then rewrites it at the configured loudness.
// On any error the original file is left untouched.
func (n *Normalizer) Normalize(ctx context.Context, path string, w io.Writer) error {
	if !n.Available() {
		return fmt.Errorf("%s not found on PATH", binFFmpeg)
	}

	m, err := n.measure(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Measured loudness: %s LUFS  (range %s LU, peak %s dBTP)\n",
		m.InputI, m.InputLRA, m.InputTP)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	filter := n.loudnorm() +
		":measured_I=" + m.InputI +
		":measured_TP=" + m.InputTP +
		":measured_LRA=" + m.InputLRA +
		":measured_thresh=" + m.InputThresh +
		":linear=true"
	args := []string{
		"-y", "-i", path,
		"-af", dynaudnorm + "," + filter,
		"-ar", strconv.Itoa(n.sampleRate()),
		tmpPath,
	}
	var stderr bytes.Buffer
	if err := n.exec.Run(ctx, binFFmpeg, args, &stderr); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("applying loudness: %w: %s", err, tail(stderr.String(), 200))
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	fmt.Fprintf(w, "Normalized → %s LUFS\n", formatFloat(n.Config.IntegratedLUFS))
	return nil
}

// measure runs the analysis pass and parses its JSON report.
func (n *Normalizer) measure(ctx context.Context, path string) (Measurement, error) {
	args := []string{
		"-i", path,
		"-af", dynaudnorm + "," + n.loudnorm() + ":print_format=json",
		"-f", "null", "-",
	}
	var stderr bytes.Buffer
	runErr := n.exec.Run(ctx, binFFmpeg, args, &stderr)

	m, err := ParseMeasurement(stderr.String())
	if err != nil {
		if runErr != nil {
			return Measurement{}, fmt.Errorf("measuring loudness: %w", runErr)
		}
		return Measurement{}, err
	}
	return m, nil
}

func (n *Normalizer) loudnorm() string {
	return "loudnorm=I=" + formatFloat(n.Config.IntegratedLUFS) +
		":TP=" + formatFloat(n.Config.TruePeak) +
		":LRA=" + formatFloat(n.Config.LoudnessRange)
}

func (n *Normalizer) sampleRate() int {
	if n.Config.SampleRate > 0 {
		return n.Config.SampleRate
	}
	return types.DefaultLoudnessConfig().SampleRate
}

// ParseMeasurement extracts the last JSON object from ffmpeg's stderr.
func ParseMeasurement(stderr string) (Measurement, error) {
	start := strings.LastIndex(stderr, "{")
	end := strings.LastIndex(stderr, "}") + 1
	if start < 0 || end <= start {
		return Measurement{}, ErrNoMeasurement
	}
	var m Measurement
	if err := json.Unmarshal([]byte(stderr[start:end]), &m); err != nil {
		return Measurement{}, fmt.Errorf("%w: %v", ErrNoMeasurement, err)
	}
	if m.InputI == "" || m.InputTP == "" || m.InputLRA == "" || m.InputThresh == "" {
		return Measurement{}, fmt.Errorf("%w: missing fields", ErrNoMeasurement)
	}
	return m, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
