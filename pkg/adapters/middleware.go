package adapters

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shouni/gemini-roast-kit/pkg/domain"
	"github.com/shouni/gemini-roast-kit/pkg/metrics"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "RequestID"

	// urn:uuid: 付きの表記が最長
	maxRequestIDLength = 45
)

// RequestID はリクエスト ID を払い出し、レスポンスヘッダーにも返します。
// クライアントの ID は UUID として解釈できる場合だけ引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientRequestID(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Set(requestIDKey, id)
		c.Next()
	}
}

func clientRequestID(raw string) string {
	if raw == "" || len(raw) > maxRequestIDLength {
		return ""
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return ""
	}
	return parsed.String()
}

// RequestLogger はリクエストの完了を1行ずつ記録します。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "http_request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"user_agent", c.Request.UserAgent(),
		)
	}
}

// Recovery は panic をログに残し、500 の JSON を返します。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "panic recovered",
					"request_id", c.GetString(requestIDKey),
					"method", c.Request.Method,
					"path", c.FullPath(),
					"reason", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, domain.ErrorResponse{Error: "Internal server error"})
			}
		}()
		c.Next()
	}
}

// abortWithError は失敗をログとメトリクスに記録し、汎用メッセージで応答します。
// 詳細な原因はログにだけ残ります。
func abortWithError(c *gin.Context, err error) {
	status, msg := MapErr(err)
	kind := domain.KindOf(err)

	attrs := []any{
		"request_id", c.GetString(requestIDKey),
		"kind", string(kind),
		"status", status,
		"error", err,
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "ロースト生成に失敗しました", attrs...)
	} else {
		slog.WarnContext(c.Request.Context(), "ロースト要求を拒否しました", attrs...)
	}

	metrics.RoastRequestsTotal.WithLabelValues(string(kind)).Inc()
	c.AbortWithStatusJSON(status, domain.ErrorResponse{Error: msg})
}
