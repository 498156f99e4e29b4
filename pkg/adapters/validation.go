package adapters

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shouni/gemini-roast-kit/pkg/domain"
	"github.com/shouni/gemini-roast-kit/pkg/prompt"
)

// roastForm は厳格モードで検証するフォーム値です。
type roastForm struct {
	Language  string `validate:"roast_language"`
	Intensity string `validate:"omitempty,roast_intensity"`
}

func newFormValidator() *validator.Validate {
	v := validator.New()
	// 登録に失敗するのはタグ名が空のときだけなので無視してよい
	_ = v.RegisterValidation("roast_language", languageValidator)
	_ = v.RegisterValidation("roast_intensity", intensityValidator)
	return v
}

func languageValidator(fl validator.FieldLevel) bool {
	return domain.IsSupportedLanguage(fl.Field().String())
}

func intensityValidator(fl validator.FieldLevel) bool {
	_, ok := parseIntensity(fl.Field().String())
	return ok
}

func parseIntensity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, n >= domain.MinIntensity && n <= domain.MaxIntensity
}

// normalizeOptions は言語と強さを検証し、モデルに渡す正規化済みの値を返します。
// 言語が空ならデフォルト言語、強さが空なら空のまま返します。
// checkIntensity が false の場合、強さはプロンプトで使われないため検証せずそのまま返します。
func normalizeOptions(v *validator.Validate, language, intensity string, checkIntensity bool) (string, string, error) {
	form := roastForm{Language: strings.TrimSpace(language)}
	if checkIntensity {
		form.Intensity = strings.TrimSpace(intensity)
	}
	if form.Language == "" {
		form.Language = domain.DefaultLanguage
	}

	if err := v.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Intensity" {
			return "", "", domain.NewRoastError(domain.KindInvalidInput, domain.ErrInvalidIntensity.Message, err)
		}
		return "", "", domain.NewRoastError(domain.KindInvalidInput, domain.ErrInvalidLanguage.Message, err)
	}

	if !checkIntensity {
		return form.Language, intensity, nil
	}
	if form.Intensity != "" {
		n, _ := parseIntensity(form.Intensity)
		form.Intensity = strconv.Itoa(n)
	}
	return form.Language, form.Intensity, nil
}

// NormalizeOptions は HTTP 以外の入口で同じ検証を行うためのものです。
func NormalizeOptions(language, intensity string, variant prompt.Variant) (string, string, error) {
	return normalizeOptions(newFormValidator(), language, intensity, variant.UsesIntensity())
}
