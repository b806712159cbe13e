// metrics описывает Prometheus-метрики пайплайна ленты.
// Все методы безопасны для nil-получателя: сервис можно собрать без метрик.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки result у portfolio_feed_fetch_total.
const (
	ResultOK         = "ok"
	ResultFetchError = "fetch_error"
	ResultParseError = "parse_error"
)

// Metrics — набор счётчиков и гистограмм загрузки ленты.
type Metrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	itemsSkipped  prometheus.Counter
	duplicates    prometheus.Counter
	articles      prometheus.Gauge
}

// New регистрирует метрики в reg (обычно prometheus.DefaultRegisterer).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		fetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "feed",
			Name:      "fetch_total",
			Help:      "Feed fetches by result.",
		}, []string{"result"}),
		fetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "feed",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a single feed fetch and parse.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		itemsSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "feed",
			Name:      "items_skipped_total",
			Help:      "Feed items dropped for missing required fields.",
		}),
		duplicates: f.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "feed",
			Name:      "duplicates_total",
			Help:      "Articles dropped as duplicate links.",
		}),
		articles: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "portfolio",
			Subsystem: "feed",
			Name:      "articles",
			Help:      "Number of articles returned by the last successful ingestion.",
		}),
	}
}

// ObserveFetch учитывает одну загрузку ленты.
func (m *Metrics) ObserveFetch(result string, d time.Duration) {
	if m == nil {
		return
	}

	m.fetchTotal.WithLabelValues(result).Inc()
	m.fetchDuration.Observe(d.Seconds())
}

// AddSkipped учитывает пропущенные элементы.
func (m *Metrics) AddSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.itemsSkipped.Add(float64(n))
}

// AddDuplicates учитывает отброшенные дубли.
func (m *Metrics) AddDuplicates(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.duplicates.Add(float64(n))
}

// SetArticles фиксирует размер последнего результата.
func (m *Metrics) SetArticles(n int) {
	if m == nil {
		return
	}

	m.articles.Set(float64(n))
}
