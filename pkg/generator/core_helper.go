package generator

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-roast-kit/pkg/imgutil"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// toPart はアップロードされたバイト列を InlineData パーツに変換します。
// MIME タイプが空なら中身から判定します。
func toPart(data []byte, mimeType string) *genai.Part {
	if mimeType == "" {
		mimeType, _ = imgutil.DetectImageMIME(data)
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

// parseToText は最初の候補からテキストパーツを連結して返します。
// 思考パーツは含めません。
func parseToText(resp *gemini.Response) (string, error) {
	if resp == nil || resp.RawResponse == nil {
		return "", fmt.Errorf("invalid response")
	}
	raw := resp.RawResponse
	if len(raw.Candidates) == 0 {
		if raw.PromptFeedback != nil && raw.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked (BlockReason: %s)", raw.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no candidates in response")
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := raw.Candidates[0]

	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() > 0 {
		return sb.String(), nil
	}

	// 安全フィルター等によるブロックの確認
	// 正常終了でテキストが無い場合は空文字をそのまま返す
	switch candidate.FinishReason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
		return "", nil
	default:
		return "", fmt.Errorf("generation stopped abnormally (FinishReason: %s)", candidate.FinishReason)
	}
}
