// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan compiles the declarative content plan into an ordered list
// of generation jobs. Compilation resolves front-matter placeholders and
// decides, per topic, whether content is templated or generated; the order
// it emits is the order the pipeline must execute.
package plan

import (
	"path"
	"strings"
	"time"

	"github.com/pdiddy/docforge/pkg/types"
)

const (
	// PositionMarker in a front-matter value is replaced by the topic's
	// 1-based position within its containing section's topic list. Root
	// topics are never resolved; the marker passes through untouched.
	PositionMarker = "{{position}}"

	// DateMarker in a string-valued front-matter field is replaced by the
	// current date in YYYY-MM-DD form. Each resolution pass replaces the
	// first occurrence only: a field holding the marker twice keeps one
	// unresolved copy. That single-replacement behavior is relied on
	// downstream and must not be "fixed" to replace all.
	DateMarker = "{{currentDate}}"

	// aiGeneratedKey is the front-matter flag selecting the generation
	// mode. Only an explicit boolean false selects the outline template;
	// absent or any other value means generated.
	aiGeneratedKey = "ai-generated"
)

const dateFmt = "2006-01-02"

// timeNow returns the current time. Package-level var for test substitution.
var timeNow = time.Now

// DefaultRestrictedSet is the inclusion set used in restricted mode when
// the content plan does not override it.
var DefaultRestrictedSet = []string{
	"index.md",
	"getting-started/quick-start.md",
}

// Compile expands the content plan into the ordered job list: root topics
// in plan order, then each section's topics in plan order. In restricted
// mode only jobs whose identity is in the inclusion set are emitted; other
// topics are skipped entirely. Section directories are not the compiler's
// concern — the writer creates every configured section directory
// regardless of filtering.
func Compile(cfg *types.Configuration, run types.RunConfig) []types.Job {
	include := inclusionSet(cfg, run)
	today := timeNow().Format(dateFmt)

	var jobs []types.Job

	for _, topic := range cfg.Content.Topics {
		if !include(topic.Filename) {
			continue
		}
		resolved := resolveTopic(topic, -1, today)
		jobs = append(jobs, types.Job{
			Topic:     resolved,
			OutputDir: run.OutputRoot,
			Section:   nil,
			Mode:      modeOf(resolved),
			Identity:  topic.Filename,
		})
	}

	for s := range cfg.Content.Sections {
		section := &cfg.Content.Sections[s]
		for i, topic := range section.Topics {
			identity := path.Join(section.Directory, topic.Filename)
			if !include(identity) {
				continue
			}
			resolved := resolveTopic(topic, i, today)
			jobs = append(jobs, types.Job{
				Topic:     resolved,
				OutputDir: path.Join(run.OutputRoot, section.Directory),
				Section:   section,
				Mode:      modeOf(resolved),
				Identity:  identity,
			})
		}
	}

	return jobs
}

// inclusionSet returns the identity filter for this run. Full mode admits
// everything.
func inclusionSet(cfg *types.Configuration, run types.RunConfig) func(string) bool {
	if !run.Restricted {
		return func(string) bool { return true }
	}

	identities := run.RestrictedTopics
	if len(identities) == 0 {
		identities = cfg.RestrictedTopics
	}
	if len(identities) == 0 {
		identities = DefaultRestrictedSet
	}

	set := make(map[string]bool, len(identities))
	for _, id := range identities {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

// resolveTopic substitutes placeholders into a copy of the topic's front
// matter. sectionIndex is the topic's 0-based position within its section,
// or -1 for root topics (which never receive positional resolution).
// Resolution happens before content generation so prompts see final values.
func resolveTopic(topic types.Topic, sectionIndex int, today string) types.Topic {
	fm := topic.FrontMatter.Clone()

	for i, field := range fm {
		if sectionIndex >= 0 {
			if s, ok := field.Value.(string); ok && s == PositionMarker {
				fm[i].Value = sectionIndex + 1
				continue
			}
		}
		if s, ok := field.Value.(string); ok && strings.Contains(s, DateMarker) {
			fm[i].Value = strings.Replace(s, DateMarker, today, 1)
		}
	}

	return types.Topic{Filename: topic.Filename, FrontMatter: fm}
}

// modeOf reads the ai-generated flag: explicit false selects the outline
// template, everything else (including absent) selects generation.
func modeOf(topic types.Topic) types.GenerationMode {
	if v, ok := topic.FrontMatter.Get(aiGeneratedKey); ok {
		if b, isBool := v.(bool); isBool && !b {
			return types.ModeTemplated
		}
	}
	return types.ModeGenerated
}
