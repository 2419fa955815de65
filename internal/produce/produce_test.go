// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package produce

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docforge/internal/apispec"
	"github.com/pdiddy/docforge/pkg/types"
)

// --- mock generator ---

type mockGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
	models   []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt, model string) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.models = append(m.models, model)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func testGlobal() types.GlobalConfig {
	return types.GlobalConfig{
		PromptTemplate: "You are a technical writer.",
		Model:          "test-model",
		Provider:       types.ProviderAnthropic,
	}
}

func sectionJob(mode types.GenerationMode, fm types.FrontMatter) types.Job {
	section := &types.Section{
		Directory:     "getting-started",
		Title:         "Getting Started",
		Purpose:       "Onboard new users",
		Audience:      "developers",
		ReaderLevel:   "beginner",
		TopicSections: []string{"Prerequisites", "Installation"},
	}
	return types.Job{
		Topic:     types.Topic{Filename: "quick-start.md", FrontMatter: fm},
		OutputDir: "docs/getting-started",
		Section:   section,
		Mode:      mode,
		Identity:  "getting-started/quick-start.md",
	}
}

// --- templated mode ---

func TestProduceTemplatedMakesNoExternalCall(t *testing.T) {
	gen := &mockGenerator{}
	job := types.Job{
		Topic: types.Topic{
			Filename: "index.md",
			FrontMatter: types.FrontMatter{
				{Key: "title", Value: "Intro"},
				{Key: "ai-generated", Value: false},
			},
		},
		OutputDir: "docs",
		Mode:      types.ModeTemplated,
		Identity:  "index.md",
	}

	content, err := Produce(context.Background(), job, testGlobal(), &apispec.Index{}, gen)
	require.NoError(t, err)
	assert.Zero(t, gen.calls, "templated pages must not contact the generator")

	assert.True(t, strings.HasPrefix(content, "---\n"), "content starts with a front matter block")
	assert.Contains(t, content, "title: Intro")
	assert.Contains(t, content, "ai-generated: false")
	assert.Contains(t, content, "\n---\n\n# Intro\n")
	assert.Contains(t, content, outlineMarker)
}

func TestProduceTemplatedOutlineSections(t *testing.T) {
	job := sectionJob(types.ModeTemplated, types.FrontMatter{
		{Key: "title", Value: "Quick Start"},
		{Key: "ai-generated", Value: false},
	})

	content, err := Produce(context.Background(), job, testGlobal(), &apispec.Index{}, &mockGenerator{})
	require.NoError(t, err)

	// Sub-section headings appear in declared order, each with a pending body.
	prereq := strings.Index(content, "## Prerequisites")
	install := strings.Index(content, "## Installation")
	require.GreaterOrEqual(t, prereq, 0)
	require.GreaterOrEqual(t, install, 0)
	assert.Less(t, prereq, install)
	assert.Equal(t, 2, strings.Count(content, pendingBody))
}

func TestProduceTemplatedTitleFallsBackToFilename(t *testing.T) {
	job := types.Job{
		Topic:    types.Topic{Filename: "notes.md", FrontMatter: types.FrontMatter{}},
		Mode:     types.ModeTemplated,
		Identity: "notes.md",
	}

	content, err := Produce(context.Background(), job, testGlobal(), &apispec.Index{}, &mockGenerator{})
	require.NoError(t, err)
	assert.Contains(t, content, "# notes.md")
}

// --- generated mode ---

func TestProduceGeneratedReturnsTextVerbatim(t *testing.T) {
	gen := &mockGenerator{response: "---\ntitle: Quick Start\n---\n\n# Quick Start\n\nBody.\n"}
	job := sectionJob(types.ModeGenerated, types.FrontMatter{
		{Key: "title", Value: "Quick Start"},
		{Key: "description", Value: "Install and call the API"},
	})

	content, err := Produce(context.Background(), job, testGlobal(), &apispec.Index{}, gen)
	require.NoError(t, err)
	assert.Equal(t, gen.response, content, "generated text is used verbatim")
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, []string{"test-model"}, gen.models)
}

func TestProduceGeneratedPropagatesFailure(t *testing.T) {
	gen := &mockGenerator{err: ErrGeneration}
	job := sectionJob(types.ModeGenerated, types.FrontMatter{
		{Key: "title", Value: "Quick Start"},
	})

	_, err := Produce(context.Background(), job, testGlobal(), &apispec.Index{}, gen)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Equal(t, 1, gen.calls, "no retry on generation failure")
}

// --- prompt construction ---

func TestBuildPromptComposition(t *testing.T) {
	job := sectionJob(types.ModeGenerated, types.FrontMatter{
		{Key: "title", Value: "Quick Start"},
		{Key: "description", Value: "Install and call the API"},
	})

	prompt := buildPrompt(job, testGlobal(), &apispec.Index{})

	assert.True(t, strings.HasPrefix(prompt, "You are a technical writer."))
	assert.Contains(t, prompt, "File: quick-start.md")
	assert.Contains(t, prompt, "Title: Quick Start")
	assert.Contains(t, prompt, "Description: Install and call the API")
	assert.Contains(t, prompt, `This page belongs to the "Getting Started" section.`)
	assert.Contains(t, prompt, "Section purpose: Onboard new users")
	assert.Contains(t, prompt, "Audience: developers")
	assert.Contains(t, prompt, "Reader level: beginner")
	assert.Contains(t, prompt, `delimited by lines containing only "---"`)
	assert.Contains(t, prompt, "in this order: Prerequisites, Installation.")
}

func TestBuildPromptRootTopicOmitsSectionContext(t *testing.T) {
	job := types.Job{
		Topic: types.Topic{
			Filename:    "index.md",
			FrontMatter: types.FrontMatter{{Key: "title", Value: "Home"}},
		},
		Mode:     types.ModeGenerated,
		Identity: "index.md",
	}

	prompt := buildPrompt(job, testGlobal(), &apispec.Index{})
	assert.NotContains(t, prompt, "belongs to the")
	assert.NotContains(t, prompt, "in this order:")
}

func TestBuildPromptEndpoints(t *testing.T) {
	idx := indexWith(t, map[string][]apispec.Operation{
		"/pet": {
			{Method: "GET", Summary: "List pets."},
			{Method: "POST", Summary: "Create a pet."},
		},
	})

	job := sectionJob(types.ModeGenerated, types.FrontMatter{
		{Key: "title", Value: "Pets"},
		{Key: "api-endpoints", Value: []any{"/pet", "/missing"}},
	})

	prompt := buildPrompt(job, testGlobal(), idx)

	assert.Contains(t, prompt, "Relevant API endpoints:")
	assert.Contains(t, prompt, "- /pet\n  - GET: List pets.\n  - POST: Create a pet.\n")
	// Endpoints absent from the index keep their line but get no sub-lines.
	assert.Contains(t, prompt, "- /missing\n")
	assert.NotContains(t, prompt, "- /missing\n  -")
}

func TestBuildPromptNoEndpointsDeclared(t *testing.T) {
	job := sectionJob(types.ModeGenerated, types.FrontMatter{
		{Key: "title", Value: "Quick Start"},
	})

	prompt := buildPrompt(job, testGlobal(), &apispec.Index{})
	assert.NotContains(t, prompt, "Relevant API endpoints:")
}

// indexWith builds an Index for prompt tests through the public Fetch path.
func indexWith(t *testing.T, paths map[string][]apispec.Operation) *apispec.Index {
	t.Helper()

	var b strings.Builder
	b.WriteString("openapi: 3.0.3\ninfo:\n  title: Test\n  version: 1.0.0\npaths:\n")
	for path, ops := range paths {
		b.WriteString("  " + path + ":\n")
		for _, op := range ops {
			b.WriteString("    " + strings.ToLower(op.Method) + ":\n")
			b.WriteString("      summary: " + op.Summary + "\n")
			b.WriteString("      responses:\n        \"200\":\n          description: OK\n")
		}
	}

	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	idx, err := apispec.Fetch(context.Background(), path, nil)
	require.NoError(t, err)
	return idx
}
