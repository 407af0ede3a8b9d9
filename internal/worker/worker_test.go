package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/internal/domain/jobModel"
	"github.com/akolanti/CyberRAG/internal/job"
	"github.com/akolanti/CyberRAG/internal/rag"
)

// MockRagService to track if jobs are executed
type MockRagService struct {
	ProcessedCount int32
}

func (m *MockRagService) Retrieve(ctx context.Context, query string, k int, opts rag.RetrieveOptions) ([]commonModels.Chunk, error) {
	return nil, nil
}

func (m *MockRagService) RetrieveWithScores(ctx context.Context, query string, k int) ([]commonModels.ScoredPassage, error) {
	return nil, nil
}

func (m *MockRagService) ChunkDocuments(contents []commonModels.Content, typeHint commonModels.SourceTag) []commonModels.Chunk {
	return nil
}

func (m *MockRagService) IngestDocument(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.ProcessedCount, 1)
	j.Status = jobModel.JobStatusComplete
	return j
}

type MockJobStore struct {
	mu    sync.Mutex
	saved []jobModel.Job
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, j)
	return nil
}

func (m *MockJobStore) statuses() []jobModel.JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]jobModel.JobStatus, len(m.saved))
	for i, j := range m.saved {
		out[i] = j.Status
	}
	return out
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	js := &MockJobStore{}
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          js,
	}
	mockRag := &MockRagService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockRag)
	InitWorkerPool(stopChan, wg)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a moment to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes an ingest job", func(t *testing.T) {
		testJob := jobModel.Job{Id: "test-1", JobType: jobModel.JobTypeIngest}
		jobSvc.JobChannel <- testJob

		// Wait for worker to pick up and process
		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockRag.ProcessedCount)
		if processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}
		got := js.statuses()
		if len(got) != 2 || got[0] != jobModel.JobStatusRunning || got[1] != jobModel.JobStatusComplete {
			t.Errorf("unexpected saved states %v", got)
		}
	})

	t.Run("Unknown job type is marked failed", func(t *testing.T) {
		jobSvc.JobChannel <- jobModel.Job{Id: "test-2", JobType: "Chat"}
		time.Sleep(50 * time.Millisecond)

		if processed := atomic.LoadInt32(&mockRag.ProcessedCount); processed != 1 {
			t.Errorf("unknown job reached the rag service")
		}
		got := js.statuses()
		if got[len(got)-1] != jobModel.JobStatusError {
			t.Errorf("expected error status, got %v", got)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	// Temporarily override globals for test
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 1)
	idleTimeout = 20 * time.Millisecond
	defer func() {
		atomic.StoreInt64(&minWorkerCount, config.MinWorkerCount)
		idleTimeout = config.IdleWorkerTimeout
	}()

	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockRagService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn 3 workers manually, only the ones above the minimum may retire
	createWorker()
	createWorker()
	createWorker()
	time.Sleep(200 * time.Millisecond)

	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 1 {
		t.Errorf("idle workers should shrink the pool to the minimum, count is %d", count)
	}

	close(stopChan)
	wg.Wait()
	if count := atomic.LoadInt64(&currentWorkerCount); count != 0 {
		t.Errorf("expected no workers after stop, got %d", count)
	}
}
