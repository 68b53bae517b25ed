package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/crawlsight/crawlsight/app/crawl"
)

func TestSampler_CapsCorpusSize(t *testing.T) {
	sampler := NewSampler(50, 10)

	pages := make([]crawl.Page, 1000)
	for i := range pages {
		pages[i] = crawl.Page{
			URL:     fmt.Sprintf("https://example.com/%d", i),
			Title:   fmt.Sprintf("Page %d", i),
			Content: "some content",
		}
	}

	sample := sampler.Run(pages)

	if len(sample) != 50 {
		t.Errorf("Expected corpus capped at 50 pages, got %d", len(sample))
	}
	// First-N by input order, no shuffling
	if sample[0].URL != "https://example.com/0" || sample[49].URL != "https://example.com/49" {
		t.Errorf("Expected input order preserved, got first=%q last=%q", sample[0].URL, sample[49].URL)
	}
}

func TestSampler_ExcludesEmptyPages(t *testing.T) {
	sampler := NewSampler(50, 10)

	pages := []crawl.Page{
		{URL: "https://example.com/a", Title: "", Content: ""},
		{URL: "https://example.com/b", Title: "  ", Content: "\t"},
		{URL: "https://example.com/c", Title: "Has Title", Content: ""},
		{URL: "https://example.com/d", Title: "", Content: "has content"},
	}

	sample := sampler.Run(pages)

	if len(sample) != 2 {
		t.Fatalf("Expected 2 analyzable pages, got %d", len(sample))
	}
	if sample[0].URL != "https://example.com/c" || sample[1].URL != "https://example.com/d" {
		t.Errorf("Unexpected sample selection: %+v", sample)
	}
}

func TestSampler_PromptSerializesAtMostTenPages(t *testing.T) {
	sampler := NewSampler(50, 10)

	pages := make([]crawl.Page, 40)
	for i := range pages {
		pages[i] = crawl.Page{
			URL:     fmt.Sprintf("https://example.com/%d", i),
			Title:   fmt.Sprintf("Page %d", i),
			Content: "content",
		}
	}

	prompt := sampler.BuildPrompt(sampler.Run(pages))

	if !strings.Contains(prompt, "Page 10\n") {
		t.Errorf("Expected tenth page serialized")
	}
	if strings.Contains(prompt, "Page 11\n") {
		t.Errorf("Expected no more than 10 pages serialized")
	}
}

func TestSampler_PromptTruncatesContent(t *testing.T) {
	sampler := NewSampler(50, 10)

	long := strings.Repeat("x", 2000)
	pages := []crawl.Page{{URL: "https://example.com", Title: "Long Page", Content: long}}

	prompt := sampler.BuildPrompt(pages)

	if strings.Contains(prompt, strings.Repeat("x", 501)) {
		t.Errorf("Expected content truncated to 500 characters")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 500)) {
		t.Errorf("Expected 500 characters of content retained")
	}
}

func TestSampler_PromptContainsSchema(t *testing.T) {
	sampler := NewSampler(50, 10)

	prompt := sampler.BuildPrompt([]crawl.Page{{Title: "A", Content: "b"}})

	for _, key := range []string{"topics", "tones", "contentTypes", "insights"} {
		if !strings.Contains(prompt, key) {
			t.Errorf("Expected output schema to mention %q", key)
		}
	}
	if !strings.Contains(prompt, "single JSON object") {
		t.Errorf("Expected prompt to demand a single JSON object")
	}
}

func TestSampler_FewerPagesThanPromptCap(t *testing.T) {
	sampler := NewSampler(50, 10)

	pages := []crawl.Page{
		{URL: "https://example.com/1", Title: "One", Content: "a"},
		{URL: "https://example.com/2", Title: "Two", Content: "b"},
	}

	prompt := sampler.BuildPrompt(pages)

	if !strings.Contains(prompt, "Page 2\n") || strings.Contains(prompt, "Page 3\n") {
		t.Errorf("Expected exactly 2 pages serialized")
	}
}
