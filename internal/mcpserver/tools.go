package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/CyberRAG/internal/config"
)

type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the question, in English or Thai"`
	K     int    `json:"k,omitempty" jsonschema:"number of passages to return (default 5)"`
}

type RetrieveOutput struct {
	Passages []PassageOutput `json:"passages"`
	Count    int             `json:"count"`
}

type PassageOutput struct {
	ChunkId     string  `json:"chunk_id"`
	Content     string  `json:"content"`
	Kind        string  `json:"kind"`
	SourceTag   string  `json:"source_tag,omitempty"`
	DocName     string  `json:"doc_name,omitempty"`
	PageNum     int     `json:"page_num"`
	SlideNumber int     `json:"slide_number,omitempty"`
	Score       float64 `json:"score"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve the most relevant security-standard passages for a question. Lower score is more relevant.",
	}, s.handleRetrieve)
}

func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	k := input.K
	if k <= 0 {
		k = config.DefaultRetrieveK
	}

	scored, err := s.rag.RetrieveWithScores(ctx, input.Query, k)
	if err != nil {
		s.logger.WithTrace(ctx).Warn("retrieve tool failed", "error", err)
		return nil, RetrieveOutput{}, fmt.Errorf("retrieve: %w", err)
	}

	output := RetrieveOutput{
		Passages: make([]PassageOutput, len(scored)),
		Count:    len(scored),
	}
	for i, p := range scored {
		output.Passages[i] = PassageOutput{
			ChunkId:     p.Chunk.ChunkId,
			Content:     p.Chunk.Chunk,
			Kind:        string(p.Chunk.Kind),
			SourceTag:   string(p.Chunk.SourceTag),
			DocName:     p.Chunk.Doc.Name,
			PageNum:     p.Chunk.PageNum,
			SlideNumber: p.Chunk.SlideNumber,
			Score:       p.Score,
		}
	}
	return nil, output, nil
}
