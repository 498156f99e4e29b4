package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/shouni/gemini-roast-kit/pkg/config"
	"github.com/shouni/gemini-roast-kit/pkg/domain"
	"github.com/shouni/gemini-roast-kit/pkg/generator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type serveOptions struct {
	configFile             string
	allowMissingCredential bool
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "HTTPサーバーを起動します",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configFile, _ = cmd.Flags().GetString("config")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, v, opts, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().Int("port", 8080, "待ち受けポート")
	_ = v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	cmd.Flags().BoolVar(&opts.allowMissingCredential, "allow-missing-credential", false,
		"APIキーが無くても起動し、ロースト要求には500を返します")

	return cmd
}

func runServe(ctx context.Context, v *viper.Viper, opts serveOptions, logOut io.Writer) error {
	cfg, err := config.Load(v, opts.configFile)
	missingCredential := errors.Is(err, config.ErrMissingCredential)
	if err != nil && !missingCredential {
		return err
	}

	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	var ai generator.AIClient
	if missingCredential {
		if !opts.allowMissingCredential {
			return config.ErrMissingCredential
		}
		slog.Error("APIキーが設定されていません。ロースト要求はすべて失敗します",
			"kind", string(domain.KindMissingCredential))
	} else {
		ai, err = newAIClient(ctx, cfg.Gemini.APIKey)
		if err != nil {
			return fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
		}
	}

	router, err := buildRouter(cfg, ai)
	if err != nil {
		return err
	}
	srv := newHTTPServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTPサーバーを起動します",
			"addr", srv.Addr,
			"model", cfg.Gemini.Model,
			"prompt_variant", cfg.Roast.PromptVariant,
			"cors_enabled", cfg.CORS.Enabled,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTPサーバーが異常終了しました: %w", err)
	case <-ctx.Done():
	}

	slog.Info("HTTPサーバーを停止します", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバーを正常に停止できませんでした: %w", err)
	}
	slog.Info("HTTPサーバーを停止しました")
	return nil
}
