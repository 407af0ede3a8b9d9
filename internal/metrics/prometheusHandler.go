package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countJobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_jobs_in_queue",
	Help: "Number of ingestion jobs in queue",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInQueue() {
	countJobsInQueue.Inc()
}

func DecrementJobsInQueue() {
	countJobsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "process_request_duration_seconds",
	Help:    "Total time spent processing an ingestion job.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 120, 600},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureJobMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

// retrieval

var variantSearchFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "rag_variant_search_failures_total",
	Help: "Expansion variant searches dropped after an error or timeout",
})

var noiseFilterFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Name: "rag_noise_filter_fallbacks_total",
	Help: "Queries where every candidate matched a noise marker and the filter was skipped",
})

var adaptiveKActivations = promauto.NewCounter(prometheus.CounterOpts{
	Name: "rag_adaptive_k_activations_total",
	Help: "Queries whose search depth was raised for Thai content",
})

var returnedPassages = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "rag_returned_passages",
	Help:    "Number of passages returned per retrieval",
	Buckets: []float64{0, 1, 3, 5, 10, 20, 50},
})

var embeddingCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rag_embedding_cache_lookups_total",
	Help: "Query embedding cache lookups by result",
}, []string{"result"})

var chunksProduced = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rag_chunks_produced_total",
	Help: "Chunks produced at ingestion, by chunking strategy",
}, []string{"strategy"})

func IncrementVariantSearchFailures() {
	variantSearchFailures.Inc()
}

func IncrementNoiseFilterFallbacks() {
	noiseFilterFallbacks.Inc()
}

func IncrementAdaptiveKActivations() {
	adaptiveKActivations.Inc()
}

func ObserveReturnedPassages(n int) {
	returnedPassages.Observe(float64(n))
}

func CaptureEmbeddingCacheLookup(hit bool) {
	if hit {
		embeddingCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	embeddingCacheLookups.WithLabelValues("miss").Inc()
}

func AddChunksProduced(strategy string, n int) {
	chunksProduced.WithLabelValues(strategy).Add(float64(n))
}
