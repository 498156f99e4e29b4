package domain

import "slices"

const (
	// DefaultLanguage は UI の初期選択と同じ言語です。
	DefaultLanguage = "Indonesia"

	MinIntensity     = 0
	MaxIntensity     = 100
	DefaultIntensity = 50
)

// Languages は UI のセレクターが提示する固定の言語リストです。
// 厳格モードではこのリスト以外の言語を受け付けません。
var Languages = []string{
	"Indonesia",
	"English",
	"Español",
	"Français",
	"Deutsch",
	"Italiano",
	"Português",
	"Русский",
	"中文",
	"日本語",
	"한국어",
}

// IsSupportedLanguage は言語が許可リストに含まれるかを判定します。
func IsSupportedLanguage(lang string) bool {
	return slices.Contains(Languages, lang)
}

// RoastRequest は1回のアップロードに対応するロースト要求です。
// 画像と付随するオプションは応答後に破棄され、どこにも保存されません。
type RoastRequest struct {
	Image     []byte
	MIMEType  string
	Language  string
	Intensity string // フォームの生の値。クラシック版では空のまま
}

// RoastResult は生成されたロースト文とそのメタデータです。
type RoastResult struct {
	Text  string
	Model string
}

// RoastResponse は成功時の JSON ボディです。
type RoastResponse struct {
	Roast string `json:"roast"`
}

// ErrorResponse は失敗時の JSON ボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}
