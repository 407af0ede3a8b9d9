// Package worker runs ingestion jobs off the shared job channel. The pool keeps
// at least minWorkerCount workers alive, grows on dispatcher signals up to
// config.MaxWorkerCount and shrinks again when workers sit idle.
package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/job"
	"github.com/akolanti/CyberRAG/internal/metrics"
	"github.com/akolanti/CyberRAG/internal/rag"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

var (
	_jobService        *job.Service
	_ragService        rag.Service
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	dispatcherChannel  chan bool
	currentWorkerCount int64
	minWorkerCount     = config.MinWorkerCount
	idleTimeout        = config.IdleWorkerTimeout
	logger             = logger_i.NewLogger("WorkerPool")
)

func InitServices(jobService *job.Service, ragService rag.Service) {
	_jobService = jobService
	_ragService = ragService
	dispatcherChannel = jobService.DispatcherChannel
}

func InitWorkerPool(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger.Info("Initializing ingestion worker pool", "min", atomic.LoadInt64(&minWorkerCount), "max", config.MaxWorkerCount)
	for i := int64(0); i < atomic.LoadInt64(&minWorkerCount); i++ {
		createWorker()
	}
	go dispatcher()
}

// dispatcher grows the pool; it never shrinks it.
func dispatcher() {
	for {
		select {
		case _, ok := <-dispatcherChannel:
			if !ok {
				return
			}
			if count := atomic.LoadInt64(&currentWorkerCount); count < config.MaxWorkerCount {
				logger.Info("Scaling up ingestion workers", "workerCount", count)
				createWorker()
			}
		case <-stopWorkerChannel:
			return
		}
	}
}

func createWorker() {
	workerWaitGroup.Add(1)
	atomic.AddInt64(&currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	go worker()
}

func worker() {
	idle := time.NewTimer(idleTimeout)
	defer idle.Stop()

	for {
		select {
		case currentJob := <-_jobService.JobChannel:
			metrics.DecrementJobsInQueue()
			executeJob(currentJob)
			idle.Reset(idleTimeout)

		case <-stopWorkerChannel:
			atomic.AddInt64(&currentWorkerCount, -1)
			removeWorker("stop signal received")
			return

		case <-idle.C:
			if retireIdle() {
				removeWorker("idle timeout")
				return
			}
			idle.Reset(idleTimeout)
		}
	}
}

// retireIdle gives up one slot above the minimum, so two idle workers cannot
// both retire past it.
func retireIdle() bool {
	for {
		count := atomic.LoadInt64(&currentWorkerCount)
		if count <= atomic.LoadInt64(&minWorkerCount) {
			return false
		}
		if atomic.CompareAndSwapInt64(&currentWorkerCount, count, count-1) {
			return true
		}
	}
}
