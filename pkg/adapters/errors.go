package adapters

import (
	"errors"
	"net/http"

	"github.com/shouni/gemini-roast-kit/pkg/domain"
)

// GenericFailureMessage は 500 系で返す唯一のメッセージです。
const GenericFailureMessage = "Failed to generate roast"

// MapErr はエラーを HTTP ステータスとクライアント向けメッセージに変換します。
// 上流や設定の失敗はすべて同じ汎用メッセージにまとめ、詳細は返しません。
func MapErr(err error) (int, string) {
	switch domain.KindOf(err) {
	case domain.KindMissingImage:
		return http.StatusBadRequest, domain.ErrMissingImage.Message
	case domain.KindInvalidInput:
		return http.StatusBadRequest, invalidInputMessage(err)
	case domain.KindImageTooLarge:
		return http.StatusRequestEntityTooLarge, domain.ErrImageTooLarge.Message
	case domain.KindOriginRejected:
		return http.StatusForbidden, domain.ErrOriginRejected.Message
	default:
		return http.StatusInternalServerError, GenericFailureMessage
	}
}

func invalidInputMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidLanguage):
		return domain.ErrInvalidLanguage.Message
	case errors.Is(err, domain.ErrInvalidIntensity):
		return domain.ErrInvalidIntensity.Message
	default:
		return "Invalid request"
	}
}
