package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/CyberRAG/internal/adapter"
	"github.com/akolanti/CyberRAG/internal/adapter/utils"
	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

// kept apart from jobModel.Job so the handler never builds half a job
type newJobData struct {
	id             string
	traceId        string
	documentName   string
	documentSource string
	sourceTag      commonModels.SourceTag
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// GetStatusHandler godoc
// @Summary      Get ingestion job status
// @Description  Retrieves the current status of an ingestion job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, traceIdFrom(r.Context()))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// PostIngestHandler handles the uploading of documents for ingestion.
// @Summary      Upload a document for ingestion
// @Description  Receives a file via multipart/form-data, saves it to a temporary directory, and queues an ingestion job. source_tag picks the chunking strategy.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        document_name  formData  string  true   "The display name of the document"
// @Param        source_tag     formData  string  false  "textbook, slide, thai-ocr or other"
// @Param        document       formData  file    true   "The PDF, DOCX or TXT file to upload"
// @Success      202  {object}  api.InitJobResponse "Accepted - returns job id"
// @Failure      400  {object}  api.JobResponse "Bad Request - Missing fields or file too large"
// @Failure      500  {object}  api.JobResponse "Internal Server Error - Storage or Write Error"
// @Router       /ingest [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	//process request
	docName := r.FormValue("document_name")
	if docName == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "document_name is required")
		return
	}

	rawTag := r.FormValue("source_tag")
	tag := commonModels.ParseSourceTag(rawTag)
	if rawTag != "" && tag == commonModels.SourceUnknown {
		WriteErrorResponse(w, http.StatusBadRequest, docName, "source_tag must be one of textbook, slide, thai-ocr, other")
		return
	}

	//get the document the user uploads
	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, docName, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileMetadata.Filename))
	tempFilePath := filepath.Join(targetDir, filename)
	if errString := saveUpload(fileReader, tempFilePath); errString != "" {
		WriteErrorResponse(w, http.StatusInternalServerError, docName, errString)
		return
	}

	newJob := newJobData{
		id:             utils.GetNewUUID(),
		traceId:        traceIdFrom(r.Context()),
		documentName:   docName,
		documentSource: tempFilePath,
		sourceTag:      tag,
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// the file is closed before the job is queued so the worker sees all of it
func saveUpload(src io.Reader, path string) string {
	dst, err := os.Create(path)
	if err != nil {
		return "Storage error"
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "Write error"
	}
	if err := dst.Close(); err != nil {
		return "Write error"
	}
	return ""
}
