package generator

import (
	"context"
	"sync"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

// mockAIClient は AIClient のテスト用モックなのだ。呼び出しを記録するのだ。
type mockAIClient struct {
	mu        sync.Mutex
	calls     int
	lastModel string
	lastParts []*genai.Part
	lastOpts  gemini.GenerateOptions

	generateFunc func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.mu.Lock()
	m.calls++
	m.lastModel = model
	m.lastParts = parts
	m.lastOpts = opts
	m.mu.Unlock()

	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, parts, opts)
	}
	return textResponse("default roast"), nil
}

// textResponse はテキストだけを含む正常レスポンスを組み立てるのだ。
func textResponse(texts ...string) *gemini.Response {
	parts := make([]*genai.Part, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, &genai.Part{Text: t})
	}
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: parts},
				FinishReason: genai.FinishReasonStop,
			}},
		},
	}
}
