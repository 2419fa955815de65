// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package produce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/docforge/pkg/types"
)

// ErrGeneration classifies a failed or unusable generation call. The
// pipeline does not retry generation failures; the error aborts the run.
var ErrGeneration = errors.New("generation failed")

// Generator abstracts the text-generation endpoint so tests can supply a
// stub without touching the compiler or producer logic.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// NewBackend returns the Generator for the configured provider. The API key
// is not checked here: a plan with no generated topics never calls the
// backend, and a missing key surfaces as a generation failure otherwise.
func NewBackend(provider types.Provider, apiKey string) (Generator, error) {
	switch provider {
	case types.ProviderAnthropic, "":
		return &AnthropicBackend{APIKey: apiKey}, nil
	case types.ProviderOpenAI:
		return &OpenAIBackend{APIKey: apiKey}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// messagesAPIURL is the Anthropic Messages API endpoint. Package-level var
// for test substitution.
var messagesAPIURL = "https://api.anthropic.com/v1/messages"

const maxTokens = 4096

// AnthropicBackend calls the Anthropic Messages API with a single user-role
// message and returns the first text content block verbatim.
type AnthropicBackend struct {
	APIKey string
	Client *http.Client
}

// messagesRequest is the request body for the Messages API.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

// message is a single message in the API conversation.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the response body from the Messages API.
type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

// contentBlock is one part of the API response; the first text block
// carries the generated document.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate submits the prompt and returns the generated text.
func (a *AnthropicBackend) Generate(ctx context.Context, prompt, model string) (string, error) {
	reqBody := messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", ErrGeneration, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, messagesAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: calling messages API: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: messages API returned %d: %s", ErrGeneration, resp.StatusCode, string(body))
	}

	var mResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mResp); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrGeneration, err)
	}

	for _, block := range mResp.Content {
		if block.Type != "text" {
			continue
		}
		if block.Text == "" {
			break
		}
		return block.Text, nil
	}

	return "", fmt.Errorf("%w: no usable text in response", ErrGeneration)
}

// OpenAIBackend calls the OpenAI chat completions API through the official
// SDK. Selected with provider "openai" in the content plan.
type OpenAIBackend struct {
	APIKey string

	// Opts holds extra request options (base URL overrides in tests).
	Opts []option.RequestOption
}

// Generate submits the prompt as a single user message and returns the
// first choice's content.
func (o *OpenAIBackend) Generate(ctx context.Context, prompt, model string) (string, error) {
	opts := append([]option.RequestOption{option.WithAPIKey(o.APIKey)}, o.Opts...)
	client := openai.NewClient(opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: calling chat completions: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no usable text in response", ErrGeneration)
	}
	return resp.Choices[0].Message.Content, nil
}
