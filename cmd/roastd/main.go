package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:          "roastd",
		Short:        "画像をGeminiに送ってロースト文を返すプロキシ",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "設定ファイルのパス (yaml/json/toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "ログレベル (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "ログ形式 (json, text)")
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(newServeCmd(v), newRoastCmd(v))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
