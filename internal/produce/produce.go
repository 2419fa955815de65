// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package produce turns compiled jobs into page content: deterministic
// outline templates for hand-authored pages, and prompt construction plus a
// generation call for everything else.
package produce

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docforge/internal/apispec"
	"github.com/pdiddy/docforge/pkg/types"
)

const (
	titleKey       = "title"
	descriptionKey = "description"
	endpointsKey   = "api-endpoints"

	// outlineMarker identifies a templated page whose prose has not been
	// written yet.
	outlineMarker = "*This page is an outline template. Content is pending.*"

	// pendingBody is the placeholder under each outline sub-section heading.
	pendingBody = "_Content to be written._"
)

// Produce returns the content for one job. Templated jobs render locally
// with no external call; generated jobs submit a prompt to the backend and
// return its text verbatim.
func Produce(ctx context.Context, job types.Job, global types.GlobalConfig, idx *apispec.Index, gen Generator) (string, error) {
	if job.Mode == types.ModeTemplated {
		return renderOutline(job)
	}

	prompt := buildPrompt(job, global, idx)
	text, err := gen.Generate(ctx, prompt, global.Model)
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", job.Identity, err)
	}
	return text, nil
}

// renderOutline synthesizes the deterministic outline page: resolved front
// matter, the title heading, the outline marker, and one pending sub-section
// per declared topic section.
func renderOutline(job types.Job) (string, error) {
	fmBlock, err := serializeFrontMatter(job.Topic.FrontMatter)
	if err != nil {
		return "", fmt.Errorf("serializing front matter for %s: %w", job.Identity, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(fmBlock)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", pageTitle(job.Topic))
	b.WriteString(outlineMarker)
	b.WriteString("\n")

	if job.Section != nil {
		for _, heading := range job.Section.TopicSections {
			fmt.Fprintf(&b, "\n## %s\n\n%s\n", heading, pendingBody)
		}
	}

	return b.String(), nil
}

// serializeFrontMatter encodes the ordered front matter without delimiters.
func serializeFrontMatter(fm types.FrontMatter) (string, error) {
	if len(fm) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		_ = enc.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pageTitle prefers the title front-matter field, falling back to the
// filename.
func pageTitle(topic types.Topic) string {
	if title := topic.FrontMatter.String(titleKey); title != "" {
		return title
	}
	return topic.Filename
}

// buildPrompt composes the generation instruction: global base
// instructions, file context, section context, relevant endpoint summaries
// from the OpenAPI index, and fixed output-format requirements. Front
// matter placeholders are already resolved by the compiler, so the prompt
// sees final values.
func buildPrompt(job types.Job, global types.GlobalConfig, idx *apispec.Index) string {
	var b strings.Builder

	if global.PromptTemplate != "" {
		b.WriteString(strings.TrimRight(global.PromptTemplate, "\n"))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "File: %s\n", job.Topic.Filename)
	if title := job.Topic.FrontMatter.String(titleKey); title != "" {
		fmt.Fprintf(&b, "Title: %s\n", title)
	}
	if desc := job.Topic.FrontMatter.String(descriptionKey); desc != "" {
		fmt.Fprintf(&b, "Description: %s\n", desc)
	}

	if sec := job.Section; sec != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "This page belongs to the %q section.\n", sec.Title)
		if sec.Purpose != "" {
			fmt.Fprintf(&b, "Section purpose: %s\n", sec.Purpose)
		}
		if sec.Audience != "" {
			fmt.Fprintf(&b, "Audience: %s\n", sec.Audience)
		}
		if sec.ReaderLevel != "" {
			fmt.Fprintf(&b, "Reader level: %s\n", sec.ReaderLevel)
		}
	}

	if endpoints := job.Topic.FrontMatter.Strings(endpointsKey); len(endpoints) > 0 {
		b.WriteString("\nRelevant API endpoints:\n")
		for _, endpoint := range endpoints {
			fmt.Fprintf(&b, "- %s\n", endpoint)
			for _, op := range idx.Operations(endpoint) {
				fmt.Fprintf(&b, "  - %s: %s\n", op.Method, op.Summary)
			}
		}
	}

	b.WriteString("\nOutput a single complete Markdown document and nothing else.\n")
	b.WriteString("Begin the document with a front matter block delimited by lines containing only \"---\".\n")

	if sec := job.Section; sec != nil && len(sec.TopicSections) > 0 {
		fmt.Fprintf(&b, "Structure the body with the following sections, in this order: %s.\n",
			strings.Join(sec.TopicSections, ", "))
	}

	return b.String()
}
