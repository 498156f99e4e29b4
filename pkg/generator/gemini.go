package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/gemini-roast-kit/pkg/domain"
	"github.com/shouni/gemini-roast-kit/pkg/prompt"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GeminiRoaster は画像1枚からロースト文を生成するジェネレーターです。
// 状態を持たないため、複数のリクエストから同時に呼び出せます。
type GeminiRoaster struct {
	aiClient     AIClient
	model        string
	variant      prompt.Variant
	systemPrompt string
	timeout      time.Duration
}

// Option は GeminiRoaster の任意設定です。
type Option func(*GeminiRoaster)

// WithVariant はプロンプトテンプレートを切り替えます。
func WithVariant(v prompt.Variant) Option {
	return func(g *GeminiRoaster) { g.variant = v }
}

// WithTimeout は1回の生成にかける上限時間を設定します。0 は上書きなしです。
func WithTimeout(d time.Duration) Option {
	return func(g *GeminiRoaster) { g.timeout = d }
}

// WithSystemPrompt はシステム指示を追加します。
func WithSystemPrompt(s string) Option {
	return func(g *GeminiRoaster) { g.systemPrompt = s }
}

// NewGeminiRoaster は GeminiRoaster を初期化します。
func NewGeminiRoaster(aiClient AIClient, model string, opts ...Option) (*GeminiRoaster, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if model == "" {
		model = DefaultModel
	}
	g := &GeminiRoaster{
		aiClient: aiClient,
		model:    model,
		variant:  prompt.VariantEnhanced,
	}
	for _, opt := range opts {
		opt(g)
	}
	if _, err := prompt.ParseVariant(string(g.variant)); err != nil {
		return nil, err
	}
	return g, nil
}

// GenerateRoast は画像とプロンプトを1回だけモデルに送信し、生成テキストを返します。
// リトライは行いません。
func (g *GeminiRoaster) GenerateRoast(ctx context.Context, req domain.RoastRequest) (*domain.RoastResult, error) {
	if len(req.Image) == 0 {
		return nil, domain.ErrMissingImage
	}

	intensity := req.Intensity
	if g.variant.UsesIntensity() && intensity == "" {
		intensity = fmt.Sprint(domain.DefaultIntensity)
	}
	text, err := prompt.Build(g.variant, req.Language, intensity)
	if err != nil {
		return nil, err
	}

	// 画像パーツを先に置く
	parts := []*genai.Part{
		toPart(req.Image, req.MIMEType),
		{Text: text},
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	slog.DebugContext(ctx, "Geminiロースト生成リクエスト送信", "model", g.model, "variant", g.variant, "image_bytes", len(req.Image))

	resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, gemini.GenerateOptions{SystemPrompt: g.systemPrompt})
	if err != nil {
		return nil, fmt.Errorf("Geminiロースト生成エラー: %w", err)
	}

	out, err := parseToText(resp)
	if err != nil {
		return nil, fmt.Errorf("Geminiレスポンス解析エラー: %w", err)
	}

	return &domain.RoastResult{Text: out, Model: g.model}, nil
}
