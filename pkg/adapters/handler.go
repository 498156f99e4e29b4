package adapters

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shouni/gemini-roast-kit/pkg/domain"
	"github.com/shouni/gemini-roast-kit/pkg/generator"
	"github.com/shouni/gemini-roast-kit/pkg/imgutil"
	"github.com/shouni/gemini-roast-kit/pkg/metrics"
	"github.com/shouni/gemini-roast-kit/pkg/prompt"
)

// Options は RoastHandler の動作設定です。
type Options struct {
	// MaxUploadBytes はリクエストボディの上限です。0 以下なら制限しません。
	MaxUploadBytes int64
	// StrictValidation が true なら言語と強さを検証してから埋め込みます。
	// false なら任意の文字列を検証せずそのまま渡します。
	StrictValidation bool
	// NormalizeJPEG が true なら画像を JPEG に再エンコードしてから送信します。
	NormalizeJPEG bool
	JPEGQuality   int
	// Variant はジェネレーターが使うプロンプトの種類です。空なら enhanced とみなします。
	// 強さを使わない種類では厳格モードでも強さを検証しません。
	Variant prompt.Variant
}

// RoastHandler は POST /api/roast を処理します。
type RoastHandler struct {
	generator generator.RoastGenerator
	opts      Options
	validate  *validator.Validate
}

// NewRoastHandler は RoastHandler を生成します。
// gen が nil の場合は認証情報が無い構成とみなし、すべての要求に 500 を返します。
func NewRoastHandler(gen generator.RoastGenerator, opts Options) *RoastHandler {
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 85
	}
	if opts.Variant == "" {
		opts.Variant = prompt.VariantEnhanced
	}
	return &RoastHandler{
		generator: gen,
		opts:      opts,
		validate:  newFormValidator(),
	}
}

// Roast は画像1枚をモデルに送り、生成されたロースト文を返します。
// 失敗の詳細はログに残し、クライアントにはステータスと汎用メッセージだけを返します。
func (h *RoastHandler) Roast(c *gin.Context) {
	if h.generator == nil {
		abortWithError(c, domain.ErrMissingCredential)
		return
	}

	if h.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	}

	req, err := h.readRequest(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	metrics.UploadBytes.Observe(float64(len(req.Image)))

	start := time.Now()
	metrics.UpstreamInFlight.Inc()
	res, err := h.generator.GenerateRoast(c.Request.Context(), req)
	metrics.UpstreamInFlight.Dec()

	if err != nil {
		metrics.UpstreamDurationSeconds.WithLabelValues(string(domain.KindOf(err))).Observe(time.Since(start).Seconds())
		abortWithError(c, err)
		return
	}
	metrics.UpstreamDurationSeconds.WithLabelValues(metrics.ResultSuccess).Observe(time.Since(start).Seconds())
	metrics.RoastRequestsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	c.JSON(http.StatusOK, domain.RoastResponse{Roast: res.Text})
}

// readRequest はマルチパートフォームから RoastRequest を組み立てます。
func (h *RoastHandler) readRequest(c *gin.Context) (domain.RoastRequest, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return domain.RoastRequest{}, classifyFormError(err)
	}

	f, err := file.Open()
	if err != nil {
		return domain.RoastRequest{}, domain.NewRoastError(domain.KindUpstreamFailure, "failed to open uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.RoastRequest{}, classifyFormError(err)
	}
	if len(data) == 0 {
		return domain.RoastRequest{}, domain.ErrMissingImage
	}

	language := c.PostForm("language")
	intensity := c.PostForm("intensity")
	if h.opts.StrictValidation {
		language, intensity, err = normalizeOptions(h.validate, language, intensity, h.opts.Variant.UsesIntensity())
		if err != nil {
			return domain.RoastRequest{}, err
		}
	}

	data, mimeType := imgutil.PrepareUpload(data, h.opts.NormalizeJPEG, h.opts.JPEGQuality)

	return domain.RoastRequest{
		Image:     data,
		MIMEType:  mimeType,
		Language:  language,
		Intensity: intensity,
	}, nil
}

func classifyFormError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return domain.NewRoastError(domain.KindImageTooLarge, domain.ErrImageTooLarge.Message, err)
	case errors.Is(err, http.ErrMissingFile):
		return domain.NewRoastError(domain.KindMissingImage, domain.ErrMissingImage.Message, err)
	default:
		return domain.NewRoastError(domain.KindUpstreamFailure, "failed to parse multipart form", err)
	}
}

// HealthCheck はサービスの稼働状況を返します。
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "roastd",
	})
}
