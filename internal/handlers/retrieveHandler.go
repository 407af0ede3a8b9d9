package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/akolanti/CyberRAG/internal/adapter"
	"github.com/akolanti/CyberRAG/internal/api"
	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/rag"
	"github.com/akolanti/CyberRAG/internal/rag/retrieval"
)

var ragService rag.Service

func InitRetrieveHandler(service rag.Service) {
	ragService = service
}

// RetrieveHandler godoc
// @Summary      Retrieve ranked passages
// @Description  Expands the query across English and Thai, searches every variant and returns the top k passages, most relevant first.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.RetrieveRequest   true  "Query, k and optional pipeline switches"
// @Success      200      {object}  api.RetrieveResponse  "Ranked passages; status is \"no results\" when nothing matched"
// @Failure      400      {object}  api.ErrorResponse     "Blank query or k out of range"
// @Failure      504      {object}  api.ErrorResponse     "Retrieval timed out"
// @Router       /retrieve [post]
func RetrieveHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}
	req, ok := decodeRetrieveRequest(w, r)
	if !ok {
		return
	}

	chunks, err := ragService.Retrieve(r.Context(), req.Query, req.K, toRetrieveOptions(req.Options))
	if err != nil {
		writeRetrieveError(w, r.Context(), err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToRetrieveResponse(req.Query, chunks))
}

// RetrieveScoresHandler godoc
// @Summary      Retrieve ranked passages with scores
// @Description  Same pipeline as /retrieve with default options; every passage carries its distance score (lower is more relevant).
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.RetrieveRequest   true  "Query and k"
// @Success      200      {object}  api.RetrieveResponse  "Ranked passages with scores"
// @Failure      400      {object}  api.ErrorResponse     "Blank query or k out of range"
// @Failure      504      {object}  api.ErrorResponse     "Retrieval timed out"
// @Router       /retrieve/scores [post]
func RetrieveScoresHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}
	req, ok := decodeRetrieveRequest(w, r)
	if !ok {
		return
	}

	scored, err := ragService.RetrieveWithScores(r.Context(), req.Query, req.K)
	if err != nil {
		writeRetrieveError(w, r.Context(), err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToScoredRetrieveResponse(req.Query, scored))
}

func decodeRetrieveRequest(w http.ResponseWriter, r *http.Request) (api.RetrieveRequest, bool) {
	var req api.RetrieveRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the retrieve request reader", "err", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRH.WithTrace(r.Context()).Warn("Bad retrieve request", "error", err)
		writeJsonResponse(w, http.StatusBadRequest, adapter.ToErrorResponse(http.StatusBadRequest, "Bad Request"))
		return req, false
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJsonResponse(w, http.StatusBadRequest, adapter.ToErrorResponse(http.StatusBadRequest, retrieval.ErrEmptyQuery.Error()))
		return req, false
	}
	if req.K == 0 {
		req.K = config.DefaultRetrieveK
	}
	return req, true
}

func toRetrieveOptions(in *api.RetrieveOptions) rag.RetrieveOptions {
	opts := rag.DefaultRetrieveOptions()
	if in == nil {
		return opts
	}
	if in.AdaptiveK != nil {
		opts.AdaptiveK = *in.AdaptiveK
	}
	if in.FilterNoise != nil {
		opts.FilterNoise = *in.FilterNoise
	}
	if in.Multilingual != nil {
		opts.Multilingual = *in.Multilingual
	}
	return opts
}

func writeRetrieveError(w http.ResponseWriter, ctx context.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, retrieval.ErrEmptyQuery), errors.Is(err, retrieval.ErrInvalidK):
		code = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	}
	logRH.WithTrace(ctx).Warn("Retrieve failed", "code", code, "error", err)

	message := http.StatusText(code)
	if code == http.StatusBadRequest {
		message = err.Error()
	}
	writeJsonResponse(w, code, adapter.ToErrorResponse(code, message))
}
