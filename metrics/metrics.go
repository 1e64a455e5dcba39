package metrics

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

// All tracked metrics are to be added here.
// UnitType of the metric i.e. Incr / Count / Latency / Bytes must be prefixed with each metric name.
const (
	// Metrics to track request handling.
	IncrHTTPRequestCount = "http_request_count"
	LatencyHTTPRequest   = "http_request_latency"

	// Metrics related to dataset download and assembly.
	LatencyDatasetLoad   = "dataset_load_latency"
	CountDatasetRows     = "dataset_rows_count"
	BytesDatasetFileSize = "dataset_file_size"

	// Metrics related to dashboard query serving.
	IncrQueryCacheHit     = "query_cache_hit"
	IncrQueryCacheMiss    = "query_cache_miss"
	LatencyDashboardQuery = "dashboard_query_latency"
	LatencyRFMCompute     = "rfm_compute_latency"
)

var (
	// The task latency in milliseconds.
	latencyStats    = stats.Float64("task_latency", "The task latency in milliseconds", stats.UnitMilliseconds)
	guageStatsInt   = stats.Int64("int_counter", "The number of loop iterations", stats.UnitDimensionless)
	guageStatsFloat = stats.Float64("float_counter", "The number of loop iterations", stats.UnitDimensionless)
	bytesStatsFloat = stats.Float64("bytes_size", "Size of a table or object in bytes", stats.UnitBytes)
)

var (
	// MetricNameTag Label for the metric to be updated. To be used in filter.
	MetricNameTag, _ = tag.NewKey("metric_name")
)

var (
	latencyView = &view.View{
		Name:        "latency_view",
		Measure:     latencyStats,
		Description: "The distribution of the task latencies",

		// [>=0ms, >=100ms, >=200ms, >=400ms, >=1s, >=2s, >=4s]
		Aggregation: view.Distribution(0, 100, 200, 400, 1000, 2000, 4000),
		TagKeys:     []tag.Key{MetricNameTag},
	}

	countIntView = &view.View{
		Measure:     guageStatsInt,
		Name:        "count_int_view",
		Description: "Count int view",
		Aggregation: view.Sum(),
		TagKeys:     []tag.Key{MetricNameTag},
	}

	countFloatView = &view.View{
		Measure:     guageStatsFloat,
		Name:        "count_float_view",
		Description: "Count float view",
		Aggregation: view.Sum(),
		TagKeys:     []tag.Key{MetricNameTag},
	}

	bytesSizeViewDistributed = &view.View{
		Measure:     bytesStatsFloat,
		Name:        "bytes_size_view",
		Description: "Bytes size view",
		Aggregation: view.Distribution(0, 10, 100, 1000, 10000, 100000),
		TagKeys:     []tag.Key{MetricNameTag},
	}
)

// InitMetrics Initializes metrics views and starts periodic export of
// aggregates to the application log.
func InitMetrics(env, appName string) {
	if env == "development" {
		return
	}
	logCtx := log.WithField("Tag", "Metrics")
	logCtx.Info("Initializing metrics exporter ...")

	if err := view.Register(latencyView, countIntView, countFloatView, bytesSizeViewDistributed); err != nil {
		log.WithError(err).Error("Failed to register the view")
		return
	}

	view.RegisterExporter(&logExporter{appName: appName})
	view.SetReportingPeriod(time.Minute)
}

// Increment Increment the given metric by 1.
func Increment(metricName string) {
	CountInt(metricName, int64(1))
}

// CountInt Reports the count value for given int Metric.
func CountInt(metricName string, count int64) {
	ctx, err := tag.New(context.Background(), tag.Upsert(MetricNameTag, metricName))
	if err != nil {
		log.WithError(err).Error("Failed to record CountInt")
		return
	}
	stats.Record(ctx, guageStatsInt.M(count))
}

// CountFloat Reports the count value for given float Metric.
func CountFloat(metricName string, count float64) {
	ctx, err := tag.New(context.Background(), tag.Upsert(MetricNameTag, metricName))
	if err != nil {
		log.WithError(err).Error("Failed to record CountFloat")
		return
	}
	stats.Record(ctx, guageStatsFloat.M(count))
}

// RecordLatency Records latency as a metric in 'ms'.
func RecordLatency(metricName string, latency float64) {
	ctx, err := tag.New(context.Background(), tag.Upsert(MetricNameTag, metricName))
	if err != nil {
		log.WithError(err).Error("Failed to record Latency")
		return
	}
	stats.Record(ctx, latencyStats.M(latency))
}

// RecordBytesSize Record size in bytes for a table or an object.
func RecordBytesSize(metricName string, bytes float64) {
	ctx, err := tag.New(context.Background(), tag.Upsert(MetricNameTag, metricName))
	if err != nil {
		log.WithError(err).Error("Failed to record Bytes")
		return
	}
	stats.Record(ctx, bytesStatsFloat.M(bytes))
}
