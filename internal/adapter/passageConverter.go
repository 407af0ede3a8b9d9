package adapter

import (
	"github.com/akolanti/CyberRAG/internal/api"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

func ToPassageResponse(c commonModels.Chunk) api.PassageResponse {
	return api.PassageResponse{
		ChunkId:     c.ChunkId,
		Content:     c.Chunk,
		Kind:        string(c.Kind),
		SourceTag:   string(c.SourceTag),
		DocId:       c.Doc.Id,
		DocName:     c.Doc.Name,
		PageNum:     c.PageNum,
		SlideNumber: c.SlideNumber,
		TableMarkup: c.TableMarkup,
	}
}

func ToRetrieveResponse(query string, chunks []commonModels.Chunk) api.RetrieveResponse {
	passages := make([]api.PassageResponse, 0, len(chunks))
	for _, c := range chunks {
		passages = append(passages, ToPassageResponse(c))
	}
	return retrieveResponse(query, passages)
}

func ToScoredRetrieveResponse(query string, scored []commonModels.ScoredPassage) api.RetrieveResponse {
	passages := make([]api.PassageResponse, 0, len(scored))
	for _, s := range scored {
		p := ToPassageResponse(s.Chunk)
		score := s.Score
		p.Score = &score
		passages = append(passages, p)
	}
	return retrieveResponse(query, passages)
}

func retrieveResponse(query string, passages []api.PassageResponse) api.RetrieveResponse {
	status := api.RetrieveStatusOK
	if len(passages) == 0 {
		status = api.RetrieveStatusNoResults
	}
	return api.RetrieveResponse{
		Query:    query,
		Status:   status,
		Count:    len(passages),
		Passages: passages,
	}
}

func ToErrorResponse(code int, message string) api.ErrorResponse {
	return api.ErrorResponse{
		Status:  string(api.JobStatusError),
		Code:    code,
		Message: message,
	}
}
