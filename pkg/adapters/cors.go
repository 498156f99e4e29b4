package adapters

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shouni/gemini-roast-kit/pkg/domain"
)

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization"
)

// CORS は単一の許可オリジンだけを通すミドルウェアです。
// プリフライトは常に 204 で終了し、後続のハンドラーには進みません。
// Origin ヘッダーの無いリクエストは同一オリジンとして扱います。
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		setCORSHeaders(c, origin, allowedOrigin)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if origin != "" && origin != allowedOrigin {
			abortWithError(c, domain.ErrOriginRejected)
			return
		}

		c.Next()
	}
}

func setCORSHeaders(c *gin.Context, origin, allowedOrigin string) {
	allow := ""
	if origin != "" && origin == allowedOrigin {
		allow = origin
	}
	// c.Header は空文字を渡すとヘッダーを削除するので Writer を直接使う
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", allow)
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	h.Set("Vary", "Origin")
}

// Preflight は CORS が無効な構成でも OPTIONS に 204 を返すためのハンドラーです。
func Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
