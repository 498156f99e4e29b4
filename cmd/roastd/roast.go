package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shouni/gemini-roast-kit/pkg/adapters"
	"github.com/shouni/gemini-roast-kit/pkg/config"
	"github.com/shouni/gemini-roast-kit/pkg/domain"
	"github.com/shouni/gemini-roast-kit/pkg/imgutil"
	"github.com/shouni/gemini-roast-kit/pkg/prompt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type roastOptions struct {
	configFile string
	imagePath  string
	language   string
	intensity  string
}

func newRoastCmd(v *viper.Viper) *cobra.Command {
	var opts roastOptions

	cmd := &cobra.Command{
		Use:   "roast",
		Short: "画像ファイル1枚をローストして標準出力に書き出します",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configFile, _ = cmd.Flags().GetString("config")
			return runRoast(cmd.Context(), v, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.imagePath, "image", "i", "", "画像ファイルのパス")
	cmd.Flags().StringVarP(&opts.language, "language", "l", domain.DefaultLanguage, "ロースト文の言語")
	cmd.Flags().StringVarP(&opts.intensity, "intensity", "n", "", "ローストの強さ (0-100)")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func runRoast(ctx context.Context, v *viper.Viper, opts roastOptions, out, logOut io.Writer) error {
	cfg, err := config.Load(v, opts.configFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	data, err := os.ReadFile(opts.imagePath)
	if err != nil {
		return fmt.Errorf("画像ファイルの読み込みに失敗しました: %w", err)
	}
	if len(data) == 0 {
		return domain.ErrMissingImage
	}

	language, intensity := opts.language, opts.intensity
	if cfg.Roast.StrictValidation {
		variant, err := prompt.ParseVariant(cfg.Roast.PromptVariant)
		if err != nil {
			return err
		}
		language, intensity, err = adapters.NormalizeOptions(language, intensity, variant)
		if err != nil {
			return err
		}
	}

	data, mimeType := imgutil.PrepareUpload(data, cfg.Roast.NormalizeJPEG, cfg.Roast.JPEGQuality)

	ai, err := newAIClient(ctx, cfg.Gemini.APIKey)
	if err != nil {
		return fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	roaster, err := newRoaster(cfg, ai)
	if err != nil {
		return err
	}

	res, err := roaster.GenerateRoast(ctx, domain.RoastRequest{
		Image:     data,
		MIMEType:  mimeType,
		Language:  language,
		Intensity: intensity,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, res.Text)
	return err
}
