package analysis

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/crawlsight/crawlsight/app/llm"
)

const (
	noProviderMessage   = "No LLM provider configured; qualitative analysis skipped"
	parseFailureInsight = "The provider response could not be parsed as structured analysis"
)

// Analyzer turns a prompt into a QualitativeReport via an injected completion
// capability. All failure modes degrade to an empty report; none are fatal to
// the pipeline.
type Analyzer struct {
	complete llm.CompletionFunc
}

func NewAnalyzer(complete llm.CompletionFunc) *Analyzer {
	return &Analyzer{complete: complete}
}

func (a *Analyzer) Run(ctx context.Context, prompt string) *QualitativeReport {
	if a.complete == nil {
		return &QualitativeReport{Message: noProviderMessage}
	}

	raw, err := a.complete(ctx, prompt)
	if err != nil {
		providerErr := &ProviderError{Err: err}
		slog.Warn("Qualitative analysis degraded", "error", providerErr)
		return &QualitativeReport{Error: providerErr.Error()}
	}

	return a.parse(raw)
}

// parse extracts the first balanced {...} substring from the raw response and
// decodes it. Provider responses are not guaranteed to contain only JSON.
func (a *Analyzer) parse(raw string) *QualitativeReport {
	payload, ok := extractJSONObject(raw)
	if !ok {
		slog.Warn("Provider response contained no JSON object", "length", len(raw))
		return &QualitativeReport{
			Insights:    []string{parseFailureInsight},
			RawResponse: raw,
		}
	}

	var parsed struct {
		Topics       CategoryCounts `json:"topics"`
		Tones        CategoryCounts `json:"tones"`
		ContentTypes CategoryCounts `json:"contentTypes"`
		Insights     []string       `json:"insights"`
	}

	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		slog.Warn("Failed to parse provider response", "error", err)
		return &QualitativeReport{
			Insights:    []string{parseFailureInsight},
			RawResponse: raw,
		}
	}

	report := &QualitativeReport{
		Topics:       parsed.Topics,
		Tones:        parsed.Tones,
		ContentTypes: parsed.ContentTypes,
		Insights:     parsed.Insights,
	}
	if report.Insights == nil {
		report.Insights = []string{}
	}

	return report
}

// extractJSONObject returns the first balanced top-level {...} substring.
// Braces inside JSON strings are skipped.
func extractJSONObject(raw string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		ch := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return raw[start : i+1], true
				}
			}
		}
	}

	return "", false
}
