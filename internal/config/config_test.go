// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docforge/pkg/types"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validPlan = `
global:
  api_spec_ref: spec/openapi.yaml
  model: claude-sonnet-4-5-20250929
  prompt_template: Write documentation.
content:
  topics:
    - filename: index.md
      front_matter:
        title: Home
        ai-generated: false
  sections:
    - directory: getting-started
      title: Getting Started
      purpose: Onboarding
      audience: new users
      reader_level: beginner
      topic_sections:
        - Prerequisites
        - Installation
      topics:
        - filename: quick-start.md
          front_matter:
            title: Quick Start
            nav_order: "{{position}}"
`

func TestLoad(t *testing.T) {
	path := writePlan(t, validPlan)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "spec/openapi.yaml", cfg.Global.APISpecRef)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Global.Model)
	assert.Equal(t, types.ProviderAnthropic, cfg.Global.Provider, "provider defaults to anthropic")

	require.Len(t, cfg.Content.Topics, 1)
	assert.Equal(t, "index.md", cfg.Content.Topics[0].Filename)
	assert.Equal(t, "Home", cfg.Content.Topics[0].FrontMatter.String("title"))

	require.Len(t, cfg.Content.Sections, 1)
	sec := cfg.Content.Sections[0]
	assert.Equal(t, "getting-started", sec.Directory)
	assert.Equal(t, []string{"Prerequisites", "Installation"}, sec.TopicSections)
	require.Len(t, sec.Topics, 1)
	assert.Equal(t, "{{position}}", sec.Topics[0].FrontMatter.String("nav_order"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writePlan(t, "global: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		plan    string
		wantErr string
	}{
		{
			name: "section without directory",
			plan: `
content:
  sections:
    - title: Broken
      topics:
        - filename: a.md
`,
			wantErr: "missing directory",
		},
		{
			name: "topic without filename",
			plan: `
content:
  topics:
    - front_matter:
        title: Nameless
`,
			wantErr: "missing filename",
		},
		{
			name: "duplicate filename in one directory",
			plan: `
content:
  sections:
    - directory: guides
      topics:
        - filename: setup.md
        - filename: setup.md
`,
			wantErr: "duplicate topic",
		},
		{
			name: "unknown provider",
			plan: `
global:
  provider: cohere
content:
  topics:
    - filename: index.md
`,
			wantErr: "unknown provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlan(t, tt.plan)
			_, err := Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSameFilenameInDifferentDirectories(t *testing.T) {
	path := writePlan(t, `
content:
  topics:
    - filename: index.md
  sections:
    - directory: guides
      topics:
        - filename: index.md
    - directory: reference
      topics:
        - filename: index.md
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Content.Sections, 2)
}
