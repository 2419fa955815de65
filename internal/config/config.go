// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads and validates the declarative content plan that
// drives documentation generation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docforge/pkg/types"
)

// ErrConfig classifies a missing or malformed content plan. Callers use
// errors.Is to distinguish configuration failures from later stages.
var ErrConfig = errors.New("invalid configuration")

// DefaultPath is the well-known location of the content plan.
const DefaultPath = "docforge.yaml"

// Load reads the content plan at path and returns the parsed Configuration.
// Loading performs no network access; the OpenAPI reference is fetched
// later by the spec stage.
func Load(path string) (*types.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}

	var cfg types.Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfig, path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *types.Configuration) {
	if cfg.Global.Provider == "" {
		cfg.Global.Provider = types.ProviderAnthropic
	}
}

// validate checks the structural invariants the compiler relies on:
// sections name a directory, every topic names a file, and filenames are
// unique within their output directory.
func validate(cfg *types.Configuration) error {
	switch cfg.Global.Provider {
	case types.ProviderAnthropic, types.ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q", cfg.Global.Provider)
	}

	seen := make(map[string]bool)

	for i, topic := range cfg.Content.Topics {
		if topic.Filename == "" {
			return fmt.Errorf("root topic %d: missing filename", i)
		}
		if seen[topic.Filename] {
			return fmt.Errorf("duplicate topic %q", topic.Filename)
		}
		seen[topic.Filename] = true
	}

	for i, section := range cfg.Content.Sections {
		if section.Directory == "" {
			return fmt.Errorf("section %d (%q): missing directory", i, section.Title)
		}
		for j, topic := range section.Topics {
			if topic.Filename == "" {
				return fmt.Errorf("section %q topic %d: missing filename", section.Directory, j)
			}
			id := path.Join(section.Directory, topic.Filename)
			if seen[id] {
				return fmt.Errorf("duplicate topic %q", id)
			}
			seen[id] = true
		}
	}
	return nil
}
