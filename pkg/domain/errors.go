package domain

import (
	"errors"
	"fmt"
)

// ErrorKind はログとメトリクスのための内部的な失敗分類です。
// クライアントにはステータスコードと汎用メッセージしか返しません。
type ErrorKind string

const (
	KindMissingImage      ErrorKind = "missing_image"
	KindInvalidInput      ErrorKind = "invalid_input"
	KindImageTooLarge     ErrorKind = "image_too_large"
	KindMissingCredential ErrorKind = "missing_credential"
	KindOriginRejected    ErrorKind = "origin_rejected"
	KindUpstreamFailure   ErrorKind = "upstream_failure"
)

// RoastError は ErrorKind と原因を保持するエラーです。
type RoastError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *RoastError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RoastError) Unwrap() error {
	return e.Cause
}

// Is は Kind と Message が一致すれば同じエラーとみなします。
// Cause 付きで作り直したエラーも errors.Is で番兵と比較できます。
func (e *RoastError) Is(target error) bool {
	var t *RoastError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// NewRoastError は RoastError を生成します。
func NewRoastError(kind ErrorKind, msg string, cause error) *RoastError {
	return &RoastError{Kind: kind, Message: msg, Cause: cause}
}

var (
	ErrMissingImage      = &RoastError{Kind: KindMissingImage, Message: "No image provided"}
	ErrInvalidLanguage   = &RoastError{Kind: KindInvalidInput, Message: "Invalid language"}
	ErrInvalidIntensity  = &RoastError{Kind: KindInvalidInput, Message: "Invalid intensity"}
	ErrImageTooLarge     = &RoastError{Kind: KindImageTooLarge, Message: "Image too large"}
	ErrMissingCredential = &RoastError{Kind: KindMissingCredential, Message: "missing model provider credential"}
	ErrOriginRejected    = &RoastError{Kind: KindOriginRejected, Message: "Origin not allowed"}
)

// KindOf は err の連鎖から ErrorKind を取り出します。
// RoastError を含まない場合は上流の失敗として扱います。
func KindOf(err error) ErrorKind {
	var re *RoastError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUpstreamFailure
}
