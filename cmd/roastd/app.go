package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shouni/gemini-roast-kit/pkg/adapters"
	"github.com/shouni/gemini-roast-kit/pkg/config"
	"github.com/shouni/gemini-roast-kit/pkg/generator"
	"github.com/shouni/gemini-roast-kit/pkg/metrics"
	"github.com/shouni/gemini-roast-kit/pkg/prompt"
)

// newAIClient はテストで差し替えられるように変数にしています。
var newAIClient = func(ctx context.Context, apiKey string) (generator.AIClient, error) {
	c, err := generator.NewGenAIClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// newRoaster は設定から GeminiRoaster を組み立てます。
func newRoaster(cfg *config.Config, ai generator.AIClient) (*generator.GeminiRoaster, error) {
	variant, err := prompt.ParseVariant(cfg.Roast.PromptVariant)
	if err != nil {
		return nil, err
	}
	return generator.NewGeminiRoaster(ai, cfg.Gemini.Model,
		generator.WithVariant(variant),
		generator.WithTimeout(cfg.Gemini.Timeout),
		generator.WithSystemPrompt(cfg.Gemini.SystemPrompt),
	)
}

// buildRouter は HTTP ハンドラー一式を組み立てます。
// ai が nil の場合、/api/roast は常に 500 を返します。
func buildRouter(cfg *config.Config, ai generator.AIClient) (*gin.Engine, error) {
	variant, err := prompt.ParseVariant(cfg.Roast.PromptVariant)
	if err != nil {
		return nil, err
	}

	var gen generator.RoastGenerator
	if ai != nil {
		roaster, err := newRoaster(cfg, ai)
		if err != nil {
			return nil, fmt.Errorf("ジェネレーターの初期化に失敗しました: %w", err)
		}
		gen = roaster
	}

	handler := adapters.NewRoastHandler(gen, adapters.Options{
		MaxUploadBytes:   cfg.Server.MaxUploadBytes,
		StrictValidation: cfg.Roast.StrictValidation,
		NormalizeJPEG:    cfg.Roast.NormalizeJPEG,
		JPEGQuality:      cfg.Roast.JPEGQuality,
		Variant:          variant,
	})

	metrics.Register()
	return adapters.NewRouter(adapters.RouterConfig{
		RoastHandler:   handler,
		CORSEnabled:    cfg.CORS.Enabled,
		AllowedOrigin:  cfg.CORS.AllowedOrigin,
		MetricsHandler: promhttp.Handler(),
	}), nil
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
