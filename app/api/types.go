package api

import (
	"io"

	"github.com/crawlsight/crawlsight/app/analysis"
	"github.com/crawlsight/crawlsight/app/crawl"
	"github.com/crawlsight/crawlsight/app/database"
	"github.com/crawlsight/crawlsight/app/llm"
)

type ReaderInterface interface {
	Run(input io.Reader) ([]crawl.Row, error)
}

var _ ReaderInterface = (*crawl.Reader)(nil)

type Handler struct {
	reader       ReaderInterface
	pipeline     *analysis.Pipeline
	sessionRepo  database.SessionRepository
	resultRepo   database.ResultRepository
	complete     llm.CompletionFunc
	providerName string
}

type UploadResponse struct {
	Success    bool             `json:"success"`
	SessionID  string           `json:"sessionId"`
	TotalPages int              `json:"totalPages"`
	Analysis   *analysis.Result `json:"analysis"`
}

type ChatRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"sessionId"`
}

type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Answer    string `json:"answer"`
}
