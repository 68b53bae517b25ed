package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Analysis report types

type QuantitativeReport struct {
	TotalPages                   int                       `json:"totalPages"`
	AvgWordCount                 int                       `json:"avgWordCount"`
	AvgTitleLength               int                       `json:"avgTitleLength"`
	AvgDescriptionLength         int                       `json:"avgDescriptionLength"`
	PagesWithMissingTitles       int                       `json:"pagesWithMissingTitles"`
	PagesWithMissingDescriptions int                       `json:"pagesWithMissingDescriptions"`
	StatusCodeDistribution       map[int]int               `json:"statusCodeDistribution"`
	ContentLengthDistribution    ContentLengthDistribution `json:"contentLengthDistribution"`
}

// ContentLengthDistribution buckets pages by word count. The four buckets are
// mutually exclusive and always sum to TotalPages.
type ContentLengthDistribution struct {
	Short    int `json:"short"`    // < 300 words
	Medium   int `json:"medium"`   // 300-999
	Long     int `json:"long"`     // 1000-2499
	VeryLong int `json:"veryLong"` // >= 2500
}

// CategoryCount is one label/count pair from the provider's categorization.
type CategoryCount struct {
	Label string
	Count int
}

// CategoryCounts preserves the order in which the provider emitted categories.
// It marshals as a JSON object and unmarshals from one without losing key
// order, which a plain map would.
type CategoryCounts []CategoryCount

func (c CategoryCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(entry.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", entry.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *CategoryCounts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object for category counts, got %v", tok)
	}

	var counts CategoryCounts
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key in category counts, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}

		count := 0
		if num, ok := valTok.(json.Number); ok {
			if n, err := num.Int64(); err == nil {
				count = int(n)
			} else if f, err := num.Float64(); err == nil {
				count = int(f)
			}
		}

		counts = append(counts, CategoryCount{Label: label, Count: count})
	}

	*c = counts
	return nil
}

// Sum returns the total count across all categories.
func (c CategoryCounts) Sum() int {
	total := 0
	for _, entry := range c {
		total += entry.Count
	}
	return total
}

// QualitativeReport carries the provider's categorical judgments. In a degraded
// state (no provider, provider failure, unparsable response) the three category
// listings are empty and Message or Error explains why; empty listings in that
// state mean "no data", not "zero occurrences".
type QualitativeReport struct {
	Topics       CategoryCounts `json:"topics"`
	Tones        CategoryCounts `json:"tones"`
	ContentTypes CategoryCounts `json:"contentTypes"`
	Insights     []string       `json:"insights"`
	Message      string         `json:"message,omitempty"`
	Error        string         `json:"error,omitempty"`
	RawResponse  string         `json:"rawResponse,omitempty"`
}

// Degraded reports whether the report carries provider data at all.
func (r *QualitativeReport) Degraded() bool {
	return r.Message != "" || r.Error != ""
}

type InsightType string

const (
	InsightContentLength    InsightType = "content_length"
	InsightMetaOptimization InsightType = "meta_optimization"
	InsightContentStrategy  InsightType = "content_strategy"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Insight is one ranked, human-readable finding plus recommendation. Output
// order is generation order, not a priority sort.
type Insight struct {
	Type           InsightType `json:"type"`
	Priority       Priority    `json:"priority"`
	Insight        string      `json:"insight"`
	Recommendation string      `json:"recommendation"`
}

// Result is the assembled outcome of one pipeline run, immutable once built.
type Result struct {
	SessionID    string              `json:"sessionId"`
	Quantitative *QuantitativeReport `json:"quantitative"`
	Qualitative  *QualitativeReport  `json:"qualitative"`
	Insights     []Insight           `json:"insights"`
}
