package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/dailydiet/dailydiet/internal/metrics"
)

// MetricsHandler exposes in-memory counters in Prometheus text format.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics handles GET /metrics.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeCounter(w, "dailydiet_users_registered_total", "Users registered.", snap.UsersRegistered)

	writeHelp(w, "dailydiet_session_cache_requests_total", "Session lookups by cache outcome.", "counter")
	writeMetric(w, "dailydiet_session_cache_requests_total{result=\"hit\"} %d\n", snap.SessionCacheHits)
	writeMetric(w, "dailydiet_session_cache_requests_total{result=\"miss\"} %d\n", snap.SessionCacheMisses)

	writeCounter(w, "dailydiet_meals_created_total", "Meals created.", snap.MealsCreated)
	writeCounter(w, "dailydiet_meals_updated_total", "Meals updated.", snap.MealsUpdated)
	writeCounter(w, "dailydiet_meals_deleted_total", "Meals deleted.", snap.MealsDeleted)

	writeHelp(w, "dailydiet_summary_duration_seconds", "Time spent computing meal summaries.", "summary")
	writeMetric(w, "dailydiet_summary_duration_seconds_count %d\n", snap.SummaryDurationCount)
	writeMetric(w, "dailydiet_summary_duration_seconds_sum %.6f\n", float64(snap.SummaryDurationTotalNs)/1e9)
}

func writeCounter(w io.Writer, name, help string, value uint64) {
	writeHelp(w, name, help, "counter")
	writeMetric(w, name+" %d\n", value)
}

func writeHelp(w io.Writer, name, help, kind string) {
	writeMetric(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func writeMetric(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
