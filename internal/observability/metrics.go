package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/contactdesk/internal/domain"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqError *Counter
	records     *GaugeVec
	poolStats   *GaugeVec
}

// NewMetrics returns nil when disabled; every method tolerates a nil receiver.
func NewMetrics(enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	return &Metrics{
		apiRequests: NewCounterVec("cd_http_requests_total", "Total HTTP requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"cd_http_request_duration_seconds",
			"HTTP request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("cd_http_inflight_requests", "In-flight HTTP requests."),
		apiReqError: NewCounter("cd_http_requests_error_total", "HTTP requests answered with a 5xx status."),
		records:     NewGaugeVec("cd_records", "Stored rows by table.", []string{"table"}),
		poolStats:   NewGaugeVec("cd_db_pool", "database/sql pool statistics.", []string{"stat"}),
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
}

func (m *Metrics) InflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) InflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// CollectStore refreshes the row-count and pool gauges once.
func (m *Metrics) CollectStore(ctx context.Context, db *gorm.DB) error {
	if m == nil || db == nil {
		return nil
	}
	var contacts, notes int64
	if err := db.WithContext(ctx).Model(&types.Contact{}).Count(&contacts).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Model(&types.Note{}).Count(&notes).Error; err != nil {
		return err
	}
	m.records.Set(float64(contacts), "contacts")
	m.records.Set(float64(notes), "notes")

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	stats := sqlDB.Stats()
	m.poolStats.Set(float64(stats.OpenConnections), "open_connections")
	m.poolStats.Set(float64(stats.InUse), "in_use")
	m.poolStats.Set(float64(stats.Idle), "idle")
	m.poolStats.Set(float64(stats.WaitCount), "wait_count")
	m.poolStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
	m.poolStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
	return nil
}

// StartStoreCollector runs CollectStore on every tick until ctx is done.
func (m *Metrics) StartStoreCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, interval time.Duration) {
	if m == nil || db == nil {
		return
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.CollectStore(ctx, db); err != nil && ctx.Err() == nil && log != nil {
					log.Warn("metrics: store stats unavailable", "error", err)
				}
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.apiReqError,
		m.records,
		m.poolStats,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

// RouteLabel keeps unmatched paths from exploding label cardinality.
func RouteLabel(fullPath string) string {
	if strings.TrimSpace(fullPath) == "" {
		return "unknown"
	}
	return fullPath
}
