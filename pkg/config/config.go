package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrMissingCredential は Gemini の API キーが設定されていないことを示します。
// 起動時に一度だけ検出し、リクエストごとには確認しません。
var ErrMissingCredential = errors.New("missing GEMINI_API_KEY: set it in the environment or the config file")

// Config はサービス全体の設定です。
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Roast  RoastConfig  `mapstructure:"roast"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

type GeminiConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	Model        string        `mapstructure:"model" validate:"required"`
	SystemPrompt string        `mapstructure:"system_prompt"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"` // 0 は上書きなし
}

type RoastConfig struct {
	PromptVariant    string `mapstructure:"prompt_variant" validate:"oneof=classic enhanced"`
	StrictValidation bool   `mapstructure:"strict_validation"`
	NormalizeJPEG    bool   `mapstructure:"normalize_jpeg"`
	JPEGQuality      int    `mapstructure:"jpeg_quality" validate:"gte=1,lte=100"`
}

type CORSConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	AllowedOrigin string `mapstructure:"allowed_origin" validate:"required_if=Enabled true"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

// Addr は listen アドレスを返します。
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SetDefaults は v にデフォルト値と環境変数の対応を登録します。
// GEMINI_API_KEY のように入れ子のキーは "." を "_" に置き換えた名前で読みます。
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_upload_bytes", 10<<20)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.system_prompt", "")
	v.SetDefault("gemini.timeout", time.Duration(0))

	v.SetDefault("roast.prompt_variant", "enhanced")
	v.SetDefault("roast.strict_validation", false)
	v.SetDefault("roast.normalize_jpeg", false)
	v.SetDefault("roast.jpeg_quality", 85)

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origin", "http://localhost:3000")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load は v から設定を読み出して検証します。
// configFile が空でなければ先に読み込みます。
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Gemini.APIKey == "" {
		return &cfg, ErrMissingCredential
	}

	return &cfg, nil
}
