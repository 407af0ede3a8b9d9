package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/CyberRAG/internal/config"
	jobmodel "github.com/akolanti/CyberRAG/internal/domain/jobModel"
	"github.com/akolanti/CyberRAG/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IngestJobTimeout)
	defer cancel()
	log := logger.WithTrace(ctx)
	log.Debug("Processing job:", "job Id:", job.Id)

	job.Status = jobmodel.JobStatusRunning
	saveJobState(ctx, job)

	if job.JobType != jobmodel.JobTypeIngest {
		log.Error("Unknown job type", "jobType", job.JobType)
		job.Status = jobmodel.JobStatusError
		job.CurrentStep = jobmodel.Error
		job.Error = jobmodel.JobError{Code: 400, Message: "unknown job type"}
	} else {
		job.CurrentStep = jobmodel.IngestInit
		job = _ragService.IngestDocument(ctx, job)
	}

	job.EndTime = time.Now()
	saveJobState(ctx, job)
}

// removeWorker expects the caller to have already released its slot in currentWorkerCount.
func removeWorker(reason string) {
	metrics.DecrementActiveWorkerCount()
	logger.Info("Removed worker", "reason", reason, "workerCount", atomic.LoadInt64(&currentWorkerCount))
	workerWaitGroup.Done()
}

// the job store outlives the request, so the state is saved even if ctx timed out
func saveJobState(ctx context.Context, job jobmodel.Job) {
	if err := _jobService.JobStore.SaveJob(context.WithoutCancel(ctx), job); err != nil {
		logger.Error("Failed to update job state", "err", err, "jobId", job.Id)
	}
}
