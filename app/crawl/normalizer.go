package crawl

import (
	"strconv"
	"strings"
)

// Alias resolution tables, first present wins. Crawl exports disagree on column
// naming (Screaming Frog uses "Address", others "URL"), so every canonical field
// lists its candidate source columns in priority order.
var (
	urlAliases         = []string{"address", "url"}
	titleAliases       = []string{"title", "page_title", "title_1"}
	descriptionAliases = []string{"meta_description", "description", "meta_description_1"}
	statusAliases      = []string{"status_code", "status"}
	wordCountAliases   = []string{"word_count"}
	contentAliases     = []string{"content"}
)

const defaultStatusCode = 200

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run maps a raw export row onto a canonical Page. It is total: any row,
// including an empty one, yields a fully defaulted Page.
func (n *Normalizer) Run(row Row) Page {
	page := Page{
		URL:             n.resolve(row, urlAliases),
		Title:           n.resolve(row, titleAliases),
		MetaDescription: n.resolve(row, descriptionAliases),
		Content:         n.resolve(row, contentAliases),
		StatusCode:      defaultStatusCode,
	}

	if raw := n.resolve(row, statusAliases); raw != "" {
		if code, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			// Out-of-range codes pass through verbatim into the histogram
			page.StatusCode = code
		}
	}

	page.WordCount = n.resolveWordCount(row, page.Content)

	return page
}

func (n *Normalizer) resolve(row Row, aliases []string) string {
	for _, key := range aliases {
		if value, ok := row[key]; ok && value != "" {
			return value
		}
	}
	return ""
}

// resolveWordCount takes an explicit word_count column when it holds a positive
// integer, otherwise derives the count from content whitespace tokens.
func (n *Normalizer) resolveWordCount(row Row, content string) int {
	if raw := n.resolve(row, wordCountAliases); raw != "" {
		if count, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && count > 0 {
			return count
		}
	}
	return CountWords(content)
}

// CountWords counts non-empty whitespace-separated tokens.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// IsMissing reports whether a title or description value counts as absent for
// aggregation purposes. Whitespace-only values are missing; the canonical Page
// still keeps the original string.
func IsMissing(value string) bool {
	return strings.TrimSpace(value) == ""
}
