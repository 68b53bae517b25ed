package crawl

// Crawl export types

// Row is one line of a crawl export after header normalization: field names are
// lower-cased with whitespace and dashes collapsed to underscores. Values keep
// whatever text the export carried.
type Row map[string]string

// Page is the canonical, schema-stable representation of one crawled page.
// Every field has a defined default, so a Page built from an empty Row is still
// fully populated (empty strings, zero word count, status 200).
type Page struct {
	URL             string `json:"url"`
	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	WordCount       int    `json:"wordCount"`
	StatusCode      int    `json:"statusCode"`
	Content         string `json:"content"`
}
