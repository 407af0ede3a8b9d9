package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"

	RetrieveStatusOK        = "ok"
	RetrieveStatusNoResults = "no results"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type IngestResult struct {
	FileName     string `json:"file_name" example:"owasp-top10.pdf"`
	SourceTag    string `json:"source_tag,omitempty" example:"textbook"`
	ContentCount int    `json:"content_count"`
	ChunkCount   int    `json:"chunk_count"`
}

type Result struct {
	Status      string        `json:"status"`
	CurrentStep string        `json:"current_step,omitempty"`
	Ingest      *IngestResult `json:"ingest,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type PassageResponse struct {
	ChunkId     string   `json:"chunk_id"`
	Content     string   `json:"content"`
	Kind        string   `json:"kind" example:"text"`
	SourceTag   string   `json:"source_tag,omitempty" example:"slide"`
	DocId       string   `json:"doc_id,omitempty"`
	DocName     string   `json:"doc_name,omitempty"`
	PageNum     int      `json:"page_num"`
	SlideNumber int      `json:"slide_number,omitempty"`
	TableMarkup string   `json:"table_markup,omitempty"`
	Score       *float64 `json:"score,omitempty" example:"0.21"`
}

type RetrieveResponse struct {
	Query    string            `json:"query"`
	Status   string            `json:"status" example:"ok"`
	Count    int               `json:"count"`
	Passages []PassageResponse `json:"passages"`
}

type ErrorResponse struct {
	Status  string `json:"status" example:"Error"`
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"query must not be empty"`
}

// requests---------------------

// RetrieveOptions fields are pointers so an omitted field keeps its default.
type RetrieveOptions struct {
	AdaptiveK    *bool `json:"adaptive_k,omitempty"`
	FilterNoise  *bool `json:"filter_noise,omitempty"`
	Multilingual *bool `json:"multilingual,omitempty"`
}

type RetrieveRequest struct {
	Query   string           `json:"query" validate:"required" example:"What does OWASP say about broken access control?"`
	K       int              `json:"k,omitempty" example:"5"`
	Options *RetrieveOptions `json:"options,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type IngestDocumentRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
	SourceTag    string `json:"source_tag,omitempty"`
}
