package rag

import (
	"net/http"

	"github.com/akolanti/CyberRAG/internal/domain/jobModel"
)

// jobError keeps the message and retry flag set by the pipeline and fills in
// the external code.
func (s *service) jobError(job jobModel.Job, message string) jobModel.Job {
	s.logger.Error(message, "jobId", job.Id, "reason", job.Error.Message)

	if job.Error.Message == "" {
		job.Error.Message = "Internal Server Error"
	}
	job.Error.Code = http.StatusInternalServerError
	job.Status = jobModel.JobStatusError
	return job
}
