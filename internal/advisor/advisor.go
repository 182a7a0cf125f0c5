package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

// LLMClient abstracts the chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// Service turns a market condition into a DeFi/yield-farming strategy via an
// OpenAI-compatible chat model.
type Service struct {
	tracer trace.Tracer
	llm    LLMClient
	model  string
}

func NewService(tracer trace.Tracer, llm LLMClient, model string) *Service {
	if model == "" {
		model = "deepseek-chat"
	}
	return &Service{tracer: tracer, llm: llm, model: model}
}

// Recommend generates a strategy for the asset under the given market
// condition. API failures come back as *domain.GenerationError carrying the
// upstream status code.
func (s *Service) Recommend(ctx context.Context, asset string, condition domain.MarketCondition) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.recommend")
	defer span.End()
	span.SetAttributes(
		attribute.String("asset", asset),
		attribute.String("condition", string(condition)),
		attribute.String("llm.model", s.model),
	)

	if s.llm == nil {
		return "", &domain.GenerationError{Err: errors.New("llm client not configured")}
	}
	asset = strings.ToUpper(strings.TrimSpace(asset))
	if asset == "" {
		return "", fmt.Errorf("asset is required")
	}

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(analystSystemPrompt),
			openai.UserMessage(BuildStrategyPrompt(asset, condition)),
		},
	})
	if err != nil {
		span.RecordError(err)
		genErr := &domain.GenerationError{Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			genErr.StatusCode = apiErr.StatusCode
		}
		return "", genErr
	}
	if len(completion.Choices) == 0 {
		return "", &domain.GenerationError{Err: errors.New("no choices in completion")}
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return "", &domain.GenerationError{Err: errors.New("empty completion content")}
	}
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service. The base
// URL override points it at any OpenAI-compatible provider such as DeepSeek.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey, baseURL string) LLMClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openaiClient{client: openai.NewClient(opts...)}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
