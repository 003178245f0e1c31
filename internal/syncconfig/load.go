// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package syncconfig

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/docsync/pkg/types"
)

//go:embed default.yaml
var defaultConfig []byte

// keyDelimiter replaces viper's "." so filenames like "faq.md" survive as
// map keys instead of being split into nested paths.
const keyDelimiter = "::"

// Load reads the sync mapping from path. An empty path loads the built-in
// default mapping. The returned Registry is not yet validated.
func Load(path string) (*Registry, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigType("yaml")

	if path == "" {
		if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
			return nil, fmt.Errorf("reading built-in sync config: %w", err)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading sync config %s: %w", path, err)
		}
	}

	var cfg types.SyncConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding sync config: %w", err)
	}
	return New(cfg), nil
}

// LoadValidated loads the mapping from path and validates it.
func LoadValidated(path string) (*Registry, error) {
	r, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
