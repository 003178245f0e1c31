// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API credentials. Environment variables win; a
// directory of plain-text files (one secret per file, the filename is the
// key in lowercase-dash form) is the fallback for local runs.
//
// Recognized keys: GOOGLE_REFRESH_TOKEN, GOOGLE_CLIENT_ID,
// GOOGLE_CLIENT_SECRET, ELEVENLABS_API_KEY, ELEVENLABS_VOICE_ID.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variable names.
const (
	EnvGoogleRefreshToken = "GOOGLE_REFRESH_TOKEN"
	EnvGoogleClientID     = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvElevenLabsAPIKey   = "ELEVENLABS_API_KEY"
	EnvElevenLabsVoiceID  = "ELEVENLABS_VOICE_ID"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// MissingError reports every required credential that could not be resolved.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing env: " + strings.Join(e.Keys, ", ")
}

// GoogleCredentials is the refresh-token triple for the Docs API.
type GoogleCredentials struct {
	RefreshToken string
	ClientID     string
	ClientSecret string
}

// Store resolves credentials from the environment, then from file secrets.
type Store struct {
	lookupEnv func(string) (string, bool)
	files     map[string]string
}

// NewStore returns a Store backed by the process environment and files,
// usually the result of Load.
func NewStore(files map[string]string) *Store {
	return &Store{lookupEnv: os.LookupEnv, files: files}
}

// fileKey maps an environment name to its secrets-file name:
// GOOGLE_CLIENT_ID becomes google-client-id.
func fileKey(env string) string {
	return strings.ReplaceAll(strings.ToLower(env), "_", "-")
}

// Lookup returns the value for an environment-style key.
func (s *Store) Lookup(key string) (string, bool) {
	if s.lookupEnv != nil {
		if v, ok := s.lookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	v, ok := s.files[fileKey(key)]
	return v, ok && v != ""
}

// Require resolves every key or returns a *MissingError naming the absent ones.
func (s *Store) Require(keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	var missing []string
	for _, k := range keys {
		v, ok := s.Lookup(k)
		if !ok {
			missing = append(missing, k)
			continue
		}
		out[k] = v
	}
	if len(missing) > 0 {
		return nil, &MissingError{Keys: missing}
	}
	return out, nil
}

// Google returns the Docs API credentials.
func (s *Store) Google() (GoogleCredentials, error) {
	v, err := s.Require(EnvGoogleRefreshToken, EnvGoogleClientID, EnvGoogleClientSecret)
	if err != nil {
		return GoogleCredentials{}, err
	}
	return GoogleCredentials{
		RefreshToken: v[EnvGoogleRefreshToken],
		ClientID:     v[EnvGoogleClientID],
		ClientSecret: v[EnvGoogleClientSecret],
	}, nil
}

// ElevenLabs returns the speech synthesis API key.
func (s *Store) ElevenLabs() (string, error) {
	v, err := s.Require(EnvElevenLabsAPIKey)
	if err != nil {
		return "", err
	}
	return v[EnvElevenLabsAPIKey], nil
}
