// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "google-refresh-token", "  rt_abc123  \n")
				writeFile(t, dir, "google-client-id", "cid_xyz789")
				writeFile(t, dir, "elevenlabs-voice-id", "voice42\n")
				return dir
			},
			want: map[string]string{
				"google-refresh-token": "rt_abc123",
				"google-client-id":     "cid_xyz789",
				"elevenlabs-voice-id":  "voice42",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "elevenlabs-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"elevenlabs-api-key": "valid-key",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "google-client-secret", "cs_real")
				return dir
			},
			want: map[string]string{
				"google-client-secret": "cs_real",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "elevenlabs-api-key", "el_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"elevenlabs-api-key": "el_123",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func fakeEnv(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestStoreLookup(t *testing.T) {
	s := &Store{
		lookupEnv: fakeEnv(map[string]string{
			"GOOGLE_CLIENT_ID": "env-id",
			"BLANK":            "   ",
		}),
		files: map[string]string{
			"google-client-id":     "file-id",
			"google-client-secret": "file-secret",
			"blank":                "file-blank",
		},
	}

	v, ok := s.Lookup("GOOGLE_CLIENT_ID")
	assert.True(t, ok)
	assert.Equal(t, "env-id", v, "environment wins over files")

	v, ok = s.Lookup("GOOGLE_CLIENT_SECRET")
	assert.True(t, ok)
	assert.Equal(t, "file-secret", v)

	v, ok = s.Lookup("BLANK")
	assert.True(t, ok)
	assert.Equal(t, "file-blank", v, "blank environment values fall through")

	_, ok = s.Lookup("ELEVENLABS_API_KEY")
	assert.False(t, ok)
}

func TestStoreGoogle(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		s := &Store{lookupEnv: fakeEnv(map[string]string{
			EnvGoogleRefreshToken: "rt",
			EnvGoogleClientID:     "id",
			EnvGoogleClientSecret: "secret",
		})}
		creds, err := s.Google()
		require.NoError(t, err)
		assert.Equal(t, GoogleCredentials{RefreshToken: "rt", ClientID: "id", ClientSecret: "secret"}, creds)
	})

	t.Run("missing keys are all named", func(t *testing.T) {
		s := &Store{lookupEnv: fakeEnv(map[string]string{EnvGoogleClientID: "id"})}
		_, err := s.Google()
		var missing *MissingError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{EnvGoogleRefreshToken, EnvGoogleClientSecret}, missing.Keys)
		assert.Equal(t, "missing env: GOOGLE_REFRESH_TOKEN, GOOGLE_CLIENT_SECRET", err.Error())
	})
}

func TestStoreElevenLabs(t *testing.T) {
	s := NewStore(map[string]string{"elevenlabs-api-key": "xi"})
	s.lookupEnv = fakeEnv(nil)
	key, err := s.ElevenLabs()
	require.NoError(t, err)
	assert.Equal(t, "xi", key)

	_, err = NewStore(nil).Require("DOCSYNC_TEST_SURELY_UNSET_KEY")
	require.Error(t, err)
}
