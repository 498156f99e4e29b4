package prompt

import (
	"fmt"
	"strings"
)

// Variant はプロンプトテンプレートの種類です。
type Variant string

const (
	// VariantClassic は言語だけを埋め込む最初期のテンプレートです。
	VariantClassic Variant = "classic"
	// VariantEnhanced は言語に加えて強さ（0〜100）を埋め込みます。
	VariantEnhanced Variant = "enhanced"
)

const baseInstruction = "Roast this image in a humorous way. Be creative, witty, and funny, but not overly mean. " +
	"Limit your response to 2-5 sentences, dont give me any option. " +
	"Please provide the roast in %s language."

const intensityInstruction = " The roast intensity is %s on a scale from 0 to 100, " +
	"where 0 is gentle, friendly teasing and 100 is a brutal, savage roast. Match your tone to that level."

// ParseVariant は設定値を Variant に変換します。
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantClassic, VariantEnhanced:
		return v, nil
	default:
		return "", fmt.Errorf("unknown prompt variant: %q", s)
	}
}

// Build はテンプレートに言語と強さを埋め込んだ指示文を返します。
// 値はエスケープせずそのまま埋め込むため、検証は呼び出し側の責務です。
// クラシック版では intensity を無視します。
func Build(variant Variant, language, intensity string) (string, error) {
	switch variant {
	case VariantClassic:
		return fmt.Sprintf(baseInstruction, language), nil
	case VariantEnhanced:
		return fmt.Sprintf(baseInstruction, language) + fmt.Sprintf(intensityInstruction, intensity), nil
	default:
		return "", fmt.Errorf("unknown prompt variant: %q", variant)
	}
}

// UsesIntensity はテンプレートが強さを参照するかどうかを返します。
func (v Variant) UsesIntensity() bool {
	return v == VariantEnhanced
}
