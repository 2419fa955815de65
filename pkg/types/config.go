// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Provider identifies the text-generation backend.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// GlobalConfig holds settings shared by every generated page.
type GlobalConfig struct {
	// APISpecRef is a URL or filesystem path to the OpenAPI document that
	// endpoint summaries are drawn from. Empty disables endpoint lookup.
	APISpecRef string `yaml:"api_spec_ref"`

	// PromptTemplate is the base instruction text prepended to every
	// generation prompt.
	PromptTemplate string `yaml:"prompt_template"`

	// Model is the text-generation model identifier
	// (e.g. "claude-sonnet-4-5-20250929").
	Model string `yaml:"model"`

	// Provider selects the generation backend: anthropic (default) or openai.
	Provider Provider `yaml:"provider"`
}

// Topic is one planned output document: a filename plus the front matter
// that will head the generated page.
type Topic struct {
	Filename    string      `yaml:"filename"`
	FrontMatter FrontMatter `yaml:"front_matter"`
}

// Section is a named group of topics sharing an output directory and prompt
// context.
type Section struct {
	Directory   string `yaml:"directory"`
	Title       string `yaml:"title"`
	Purpose     string `yaml:"purpose"`
	Audience    string `yaml:"audience"`
	ReaderLevel string `yaml:"reader_level"`

	// TopicSections is an ordered list of sub-section headings every page
	// in this section should carry.
	TopicSections []string `yaml:"topic_sections"`

	Topics []Topic `yaml:"topics"`
}

// ContentConfig is the declarative content plan: root-level topics followed
// by sections.
type ContentConfig struct {
	Topics   []Topic   `yaml:"topics"`
	Sections []Section `yaml:"sections"`
}

// Configuration is the full content plan loaded from docforge.yaml.
// Loaded once at startup and read-only thereafter.
type Configuration struct {
	Global  GlobalConfig  `yaml:"global"`
	Content ContentConfig `yaml:"content"`

	// RestrictedTopics overrides the default restricted-mode inclusion set.
	// Identities are root filenames or "directory/filename" for section
	// topics.
	RestrictedTopics []string `yaml:"restricted_topics,omitempty"`
}

// RunConfig collects per-invocation process settings. It is built once in
// the CLI layer and passed explicitly into the compiler and producer; there
// is no ambient global state.
type RunConfig struct {
	// Restricted limits generation to the inclusion set when true.
	Restricted bool

	// RestrictedTopics is the inclusion set consulted in restricted mode.
	RestrictedTopics []string

	// APIKey authenticates against the generation endpoint.
	APIKey string

	// OutputRoot is the root directory of the generated site tree.
	OutputRoot string
}
