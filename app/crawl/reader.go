package crawl

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Reader tokenizes a crawl export into Rows. Header cells are normalized so the
// alias tables in the normalizer see a stable vocabulary regardless of which
// crawler produced the export.
type Reader struct {
	extractor *ContentExtractor
}

func NewReader() *Reader {
	return &Reader{
		extractor: NewContentExtractor(),
	}
}

// Run reads the full export and returns one Row per data line. Short or ragged
// lines are tolerated; missing cells simply stay absent from the Row.
func (r *Reader) Run(input io.Reader) ([]Row, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("export is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read export header: %w", err)
	}

	fields := make([]string, len(header))
	for i, cell := range header {
		fields[i] = NormalizeFieldName(cell)
	}

	var rows []Row
	extracted := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read export row %d: %w", len(rows)+2, err)
		}

		row := make(Row, len(fields))
		for i, cell := range record {
			if i >= len(fields) || fields[i] == "" {
				continue
			}
			row[fields[i]] = cell
		}

		if content, ok := row["content"]; ok && LooksLikeHTML(content) {
			if text, err := r.extractor.Run(content); err == nil {
				row["content"] = text
				extracted++
			}
		}

		rows = append(rows, row)
	}

	if extracted > 0 {
		slog.Debug("Extracted readable text from HTML content cells", "rows", extracted)
	}

	return rows, nil
}

// NormalizeFieldName lower-cases a header cell and collapses whitespace and
// dashes to underscores ("Meta Description 1" -> "meta_description_1").
func NormalizeFieldName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", " ")
	return strings.Join(strings.Fields(name), "_")
}
