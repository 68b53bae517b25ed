package analysis

import (
	"fmt"
	"strings"

	"github.com/crawlsight/crawlsight/app/crawl"
)

// Two-tier input caps: the corpus cap bounds downstream logic cost, the prompt
// cap bounds per-request provider cost independently.
const (
	DefaultSampleSize  = 50
	DefaultPromptPages = 10
	maxContentChars    = 500
)

const promptPreamble = `You are an SEO content analyst. Review the crawled pages below and characterize the site's content qualitatively.`

const promptSchema = `Respond with a single JSON object and nothing else, using exactly this shape:
{
  "topics": {"<topic>": <page count>},
  "tones": {"<tone>": <page count>},
  "contentTypes": {"<type>": <page count>},
  "insights": ["<short free-text insight>"]
}
Use up to six topic categories, four tone categories, and five content-type categories. Keep the insights list short.`

type Sampler struct {
	sampleSize  int
	promptPages int
}

func NewSampler(sampleSize, promptPages int) *Sampler {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if promptPages <= 0 {
		promptPages = DefaultPromptPages
	}
	return &Sampler{
		sampleSize:  sampleSize,
		promptPages: promptPages,
	}
}

// Run selects the analyzable corpus: first-N by input order, skipping pages
// with neither title nor content (nothing useful to analyze).
func (s *Sampler) Run(pages []crawl.Page) []crawl.Page {
	sample := make([]crawl.Page, 0, s.sampleSize)
	for _, page := range pages {
		if crawl.IsMissing(page.Title) && crawl.IsMissing(page.Content) {
			continue
		}
		sample = append(sample, page)
		if len(sample) >= s.sampleSize {
			break
		}
	}
	return sample
}

// BuildPrompt serializes at most promptPages pages from the sample into the
// provider prompt, truncating each page's content to a fixed character budget.
func (s *Sampler) BuildPrompt(sample []crawl.Page) string {
	limit := s.promptPages
	if len(sample) < limit {
		limit = len(sample)
	}

	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\n")

	for i, page := range sample[:limit] {
		fmt.Fprintf(&b, "Page %d\n", i+1)
		fmt.Fprintf(&b, "URL: %s\n", page.URL)
		fmt.Fprintf(&b, "Title: %s\n", page.Title)
		fmt.Fprintf(&b, "Description: %s\n", page.MetaDescription)
		fmt.Fprintf(&b, "Content: %s\n\n", truncate(page.Content, maxContentChars))
	}

	b.WriteString(promptSchema)

	return b.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
