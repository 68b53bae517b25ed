package analysis

import (
	"math"

	"github.com/crawlsight/crawlsight/app/crawl"
)

// Word-count bucket boundaries.
const (
	shortMax  = 300
	mediumMax = 1000
	longMax   = 2500
)

type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Run computes corpus-wide statistics in a single pass. The zero-page case is
// not special-cased here: callers decide how to surface ErrNoPages.
func (a *Aggregator) Run(pages []crawl.Page) (*QuantitativeReport, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	report := &QuantitativeReport{
		TotalPages:             len(pages),
		StatusCodeDistribution: make(map[int]int),
	}

	wordSum := 0
	titleSum, titleCount := 0, 0
	descSum, descCount := 0, 0

	for _, page := range pages {
		wordSum += page.WordCount

		switch {
		case page.WordCount < shortMax:
			report.ContentLengthDistribution.Short++
		case page.WordCount < mediumMax:
			report.ContentLengthDistribution.Medium++
		case page.WordCount < longMax:
			report.ContentLengthDistribution.Long++
		default:
			report.ContentLengthDistribution.VeryLong++
		}

		if crawl.IsMissing(page.Title) {
			report.PagesWithMissingTitles++
		} else {
			titleSum += len(page.Title)
			titleCount++
		}

		if crawl.IsMissing(page.MetaDescription) {
			report.PagesWithMissingDescriptions++
		} else {
			descSum += len(page.MetaDescription)
			descCount++
		}

		report.StatusCodeDistribution[page.StatusCode]++
	}

	report.AvgWordCount = roundedAverage(wordSum, report.TotalPages)
	report.AvgTitleLength = roundedAverage(titleSum, titleCount)
	report.AvgDescriptionLength = roundedAverage(descSum, descCount)

	return report, nil
}

// roundedAverage divides sum by count rounded to the nearest integer; a zero
// count yields 0 rather than an error.
func roundedAverage(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}
