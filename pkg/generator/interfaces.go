package generator

import (
	"context"

	"github.com/shouni/gemini-roast-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// AIClient は Gemini へのマルチモーダル生成リクエストを抽象化します。
// 入出力には go-gemini-client の Response と GenerateOptions を使います。
type AIClient interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// RoastGenerator はハンドラー層が利用する統合窓口です。
type RoastGenerator interface {
	// GenerateRoast は画像1枚とオプションからロースト文を1つ生成します。
	GenerateRoast(ctx context.Context, req domain.RoastRequest) (*domain.RoastResult, error)
}
