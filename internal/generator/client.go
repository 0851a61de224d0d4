package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	openai "github.com/sashabaranov/go-openai"

	"github.com/prepgen/backend/internal/models"
)

// Generation settings shared by the API backends.
const (
	maxTokens   = 8192
	temperature = 0.4
)

// LLMClient is the interface every backend implementation satisfies.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Backend names accepted by BuildClient.
const (
	BackendAnthropic = "anthropic"
	BackendOpenAI    = "openai"
	BackendCLI       = "cli"
	BackendMock      = "mock"
)

// ClientConfig selects and configures an LLM backend. Zero values fall
// back to environment variables and per-backend defaults.
type ClientConfig struct {
	Backend string
	Model   string
	APIKey  string
	BaseURL string
	CLIPath string
}

// BuildClient constructs the configured backend and returns it together
// with the effective model name.
func BuildClient(cfg ClientConfig) (LLMClient, string, error) {
	switch cfg.Backend {
	case BackendMock:
		log.Println("LLM backend: mock data")
		return NewMockClient(), "mock", nil

	case BackendCLI:
		cliPath := cfg.CLIPath
		if cliPath == "" {
			cliPath = "claude"
		}
		log.Println("LLM backend: local CLI:", cliPath)
		return NewCLIClient(cliPath), "cli", nil

	case BackendOpenAI:
		model := cfg.Model
		if model == "" {
			model = openai.GPT4o
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		log.Println("LLM backend: OpenAI-compatible API:", model)
		return NewOpenAIClient(apiKey, cfg.BaseURL, model), model, nil

	case BackendAnthropic, "":
		model := cfg.Model
		if model == "" {
			model = "claude-sonnet-4-5-20250929"
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		log.Println("LLM backend: Anthropic API:", model)
		return NewAPIClient(apiKey, model), model, nil

	default:
		return nil, "", models.NewError(models.KindConfiguration,
			"unknown LLM backend: %s (valid: anthropic, openai, cli, mock)", cfg.Backend)
	}
}

// Generator ties an LLM backend to the prompt builder and parser.
type Generator struct {
	llm   LLMClient
	model string
}

func NewGenerator(llm LLMClient, model string) *Generator {
	return &Generator{llm: llm, model: model}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateSubjectBatch requests count questions for one subject and
// parses the response in non-strict mode: the caller receives whatever
// valid subset came back. LLM failures are wrapped as subject-scoped
// service errors; parse failures keep their own kind.
func (g *Generator) GenerateSubjectBatch(ctx context.Context, exam, subject string, chapters []string, count int, difficulty models.Difficulty) ([]models.Question, *LLMResponse, error) {
	prompt := BuildPrompt(exam, subject, strings.Join(chapters, ", "), count, difficulty)
	log.Printf("%s: prompt length %d chars", subject, len(prompt))

	resp, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, nil, models.WrapError(models.KindLLMService, err,
			"LLM call failed: %v", err).WithSubject(subject)
	}

	questions, err := ParseOutput(resp.Content, subject, count, false)
	if err != nil {
		return nil, resp, err
	}
	return questions, resp, nil
}

// ── APIClient — Anthropic SDK ──────────────────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(apiKey, model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, prompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Temperature: param.NewOpt(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── OpenAIClient — OpenAI-compatible APIs ──────────────────

type OpenAIClient struct {
	api   *openai.Client
	model string
}

// NewOpenAIClient builds a client for OpenAI or any compatible endpoint
// (baseURL overrides the default host).
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		api:   openai.NewClientWithConfig(config),
		model: model,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (*LLMResponse, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return nil, models.WrapError(models.KindLLMService, err, "rate limit exceeded").
				WithDetail("status_code", apiErr.HTTPStatusCode)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.WrapError(models.KindLLMService, err, "LLM request timed out")
		}
		return nil, fmt.Errorf("openai API call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in API response")
	}

	return &LLMResponse{
		Content:      resp.Choices[0].Message.Content,
		PromptTokens: resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}
