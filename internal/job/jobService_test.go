package job

import (
	"testing"

	"github.com/akolanti/CyberRAG/internal/data/store"
	"github.com/akolanti/CyberRAG/internal/domain/jobModel"
)

func TestInitJobService(t *testing.T) {
	jobs := make(chan jobModel.Job, 1)
	dispatch := make(chan bool, 1)
	js := store.InitInMemoryJobStore()

	s := InitJobService(ServiceConfig{JobChannel: jobs, DispatcherChannel: dispatch, JobStore: js, RequestCount: 3})

	if s.JobChannel != jobs || s.DispatcherChannel != dispatch || s.JobStore != js || s.RequestCount != 3 {
		t.Errorf("service not built from config: %+v", s)
	}
}
