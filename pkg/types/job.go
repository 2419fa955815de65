// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the documentation generator:
// the declarative content plan, the per-run settings, and the compiled jobs.
package types

// GenerationMode selects how a job's content is produced.
type GenerationMode string

const (
	// ModeTemplated renders a deterministic outline page with no external call.
	ModeTemplated GenerationMode = "templated"

	// ModeGenerated submits a prompt to the generation endpoint and writes
	// its response verbatim.
	ModeGenerated GenerationMode = "generated"
)

// Job is one resolved, ready-to-produce unit of work derived from a topic.
// The topic's front matter is a resolved copy: positional and date
// placeholders are already substituted, so prompt construction sees final
// values. Jobs are produced by the plan compiler and consumed exactly once,
// in order.
type Job struct {
	// Topic carries the placeholder-resolved front matter and filename.
	Topic Topic

	// OutputDir is the directory the file is written into
	// (e.g. "docs" or "docs/getting-started").
	OutputDir string

	// Section is the owning section, or nil for root-level topics.
	Section *Section

	// Mode is templated or generated, from the topic's ai-generated flag.
	Mode GenerationMode

	// Identity is the filter key: the root filename, or
	// "directory/filename" for section topics.
	Identity string
}
