package crawl

import (
	"fmt"
	"log/slog"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

type ContentExtractor struct{}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Run extracts readable text from an HTML content cell so word counts reflect
// prose rather than markup. Plain-text cells should not be passed here.
func (e *ContentExtractor) Run(data string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(strings.NewReader(data), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	slog.Debug("Content extracted successfully",
		"title", article.Title,
		"content_length", len(text))

	return text, nil
}

// LooksLikeHTML is a cheap heuristic for content cells carrying markup instead
// of prose. It only has to catch whole documents and fragments that would skew
// word counts, not every stray angle bracket.
func LooksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "<") {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range []string{"<!doctype", "<html", "<body", "<div", "<p>", "<p ", "<article", "<section"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
