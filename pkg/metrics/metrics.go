package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// ResultSuccess は成功時の result ラベルです。失敗時は domain.ErrorKind をそのまま使います。
const ResultSuccess = "success"

var (
	once sync.Once

	// RoastRequestsTotal はロースト要求を結果別に数えます。
	RoastRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roast",
		Subsystem: "proxy",
		Name:      "requests_total",
		Help:      "Total number of roast requests handled, labeled by result.",
	}, []string{"result"})

	// UpstreamDurationSeconds はモデル呼び出し1回にかかった時間です。
	UpstreamDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "roast",
		Subsystem: "proxy",
		Name:      "upstream_duration_seconds",
		Help:      "Time spent waiting for the generative model, labeled by result.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 60},
	}, []string{"result"})

	// UploadBytes はアップロードされた画像サイズの分布です。
	UploadBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "roast",
		Subsystem: "proxy",
		Name:      "upload_bytes",
		Help:      "Size of uploaded images in bytes.",
		Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 6),
	})

	// UpstreamInFlight は現在進行中のモデル呼び出し数です。
	UpstreamInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "roast",
		Subsystem: "proxy",
		Name:      "upstream_in_flight",
		Help:      "Current number of generative model calls in progress.",
	})
)

// Register はメトリクスをデフォルトレジストリに登録します。
// 何度呼んでも安全です。
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			RoastRequestsTotal,
			UpstreamDurationSeconds,
			UploadBytes,
			UpstreamInFlight,
		)
	})
}
