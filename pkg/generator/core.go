package generator

import (
	"context"
	"fmt"

	"github.com/shouni/gemini-roast-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GenAIClient は google.golang.org/genai を使った AIClient の実装です。
type GenAIClient struct {
	client *genai.Client
}

// NewGenAIClient は API キーで Gemini API 用のクライアントを初期化します。
// キーが空の場合は domain.ErrMissingCredential を返し、通信は一切行いません。
func NewGenAIClient(ctx context.Context, apiKey string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingCredential
	}
	return newGenAIClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func newGenAIClient(ctx context.Context, cfg *genai.ClientConfig) (*GenAIClient, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GenAIClient{client: client}, nil
}

// GenerateWithParts はパーツ列を1つのユーザーターンとして送信します。
// opts.SystemPrompt が指定されていればシステム指示として渡します。
func (c *GenAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var cfg *genai.GenerateContentConfig
	if opts.SystemPrompt != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser),
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}
