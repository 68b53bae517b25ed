package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crawlsight/crawlsight/app/analysis"
	"github.com/crawlsight/crawlsight/app/cfg"
	"github.com/crawlsight/crawlsight/app/database"
	"github.com/crawlsight/crawlsight/app/llm"
)

func NewHandler(reader ReaderInterface, pipeline *analysis.Pipeline,
	sessionRepo database.SessionRepository, resultRepo database.ResultRepository,
	complete llm.CompletionFunc, providerName string) *Handler {
	return &Handler{
		reader:       reader,
		pipeline:     pipeline,
		sessionRepo:  sessionRepo,
		resultRepo:   resultRepo,
		complete:     complete,
		providerName: providerName,
	}
}

// Upload ingests a crawl export and runs the full analysis pipeline.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("Failed to open uploaded file", "filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload", "details": "could not open uploaded file"})
		return
	}
	defer file.Close()

	rows, err := h.reader.Run(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV upload", "details": err.Error()})
		return
	}

	result, err := h.pipeline.Run(c.Request.Context(), rows)
	if err != nil {
		if analysis.IsInputError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Analysis pipeline failed", "filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed", "details": "unexpected internal error"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success:    true,
		SessionID:  result.SessionID,
		TotalPages: result.Quantitative.TotalPages,
		Analysis:   result,
	})
}

// Analyze returns a previously computed analysis result by session id.
func (h *Handler) Analyze(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing sessionId parameter"})
		return
	}

	resultJSON, err := h.resultRepo.GetResult(sessionID)
	if err != nil {
		slog.Error("Database error", "operation", "get_result", "session", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "details": "could not load analysis result"})
		return
	}
	if resultJSON == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", resultJSON)
}

// Chat answers a free-form question about a stored analysis result using the
// configured completion provider.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing question"})
		return
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing sessionId"})
		return
	}

	if h.complete == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No LLM provider configured"})
		return
	}

	resultJSON, err := h.resultRepo.GetResult(req.SessionID)
	if err != nil {
		slog.Error("Database error", "operation", "get_result", "session", req.SessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "details": "could not load analysis result"})
		return
	}
	if resultJSON == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var result analysis.Result
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		slog.Error("Stored result is unreadable", "session", req.SessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored result is unreadable", "details": "could not decode analysis result"})
		return
	}

	answer, err := h.complete(c.Request.Context(), buildChatPrompt(&result, req.Question))
	if err != nil {
		slog.Warn("Chat completion failed", "session", req.SessionID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Provider request failed"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		SessionID: req.SessionID,
		Answer:    strings.TrimSpace(answer),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.Get().Version,
	}

	if sessionCount, err := h.sessionRepo.GetSessionCount(); err == nil {
		health["sessions"] = sessionCount
	}

	if h.providerName != "" {
		health["provider"] = h.providerName
	} else {
		health["provider"] = "none"
	}

	c.JSON(http.StatusOK, health)
}

// buildChatPrompt grounds the question in the stored reports so the provider
// answers from the analyzed data instead of inventing site facts.
func buildChatPrompt(result *analysis.Result, question string) string {
	var b strings.Builder

	b.WriteString("You are an SEO assistant. Answer the question using only the site analysis below.\n\n")

	if quant := result.Quantitative; quant != nil {
		fmt.Fprintf(&b, "Site statistics: %d pages, average %d words per page, "+
			"%d pages missing titles, %d pages missing meta descriptions.\n",
			quant.TotalPages, quant.AvgWordCount,
			quant.PagesWithMissingTitles, quant.PagesWithMissingDescriptions)
		fmt.Fprintf(&b, "Content length distribution: %d short, %d medium, %d long, %d very long.\n",
			quant.ContentLengthDistribution.Short,
			quant.ContentLengthDistribution.Medium,
			quant.ContentLengthDistribution.Long,
			quant.ContentLengthDistribution.VeryLong)
	}

	if qual := result.Qualitative; qual != nil && !qual.Degraded() {
		if len(qual.Topics) > 0 {
			b.WriteString("Topics: ")
			for i, topic := range qual.Topics {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s (%d)", topic.Label, topic.Count)
			}
			b.WriteString("\n")
		}
		for _, insight := range qual.Insights {
			fmt.Fprintf(&b, "Observation: %s\n", insight)
		}
	}

	for _, insight := range result.Insights {
		fmt.Fprintf(&b, "Recommendation (%s): %s %s\n", insight.Priority, insight.Insight, insight.Recommendation)
	}

	fmt.Fprintf(&b, "\nQuestion: %s\n", question)

	return b.String()
}
