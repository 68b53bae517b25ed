package analysis

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/crawlsight/crawlsight/app/rules"
)

// Engine turns combined quantitative and qualitative results into ranked
// recommendations. Rules run in a fixed order; each appends zero or one
// insight, except the topic rule which may append several.
type Engine struct {
	rules      *rules.Rules
	titleCaser cases.Caser
}

func NewEngine(r *rules.Rules) *Engine {
	if r == nil {
		r = rules.Defaults()
	}
	return &Engine{
		rules:      r,
		titleCaser: cases.Title(language.English),
	}
}

func (e *Engine) Run(quant *QuantitativeReport, qual *QualitativeReport) []Insight {
	insights := []Insight{}

	if quant == nil {
		return insights
	}

	if insight, ok := e.contentLengthRule(quant); ok {
		insights = append(insights, insight)
	}

	if insight, ok := e.metaOptimizationRule(quant); ok {
		insights = append(insights, insight)
	}

	if qual != nil {
		insights = append(insights, e.contentStrategyRules(qual)...)
	}

	return insights
}

func (e *Engine) contentLengthRule(quant *QuantitativeReport) (Insight, bool) {
	if quant.TotalPages == 0 {
		return Insight{}, false
	}

	ratio := float64(quant.ContentLengthDistribution.Short) / float64(quant.TotalPages)
	if ratio <= e.rules.ShortPageRatio {
		return Insight{}, false
	}

	percentage := int(math.Round(ratio * 100))
	return Insight{
		Type:     InsightContentLength,
		Priority: PriorityMedium,
		Insight:  fmt.Sprintf("%d%% of pages have thin content (under %d words)", percentage, shortMax),
		Recommendation: "Expand short pages with substantive content or consolidate " +
			"them into fewer, more comprehensive pages",
	}, true
}

func (e *Engine) metaOptimizationRule(quant *QuantitativeReport) (Insight, bool) {
	if quant.PagesWithMissingDescriptions == 0 {
		return Insight{}, false
	}

	return Insight{
		Type:     InsightMetaOptimization,
		Priority: PriorityHigh,
		Insight:  fmt.Sprintf("%d pages are missing meta descriptions", quant.PagesWithMissingDescriptions),
		Recommendation: "Write unique meta descriptions for these pages to improve " +
			"click-through rates from search results",
	}, true
}

// contentStrategyRules emits one insight per over-represented topic, iterating
// topics in the order the provider produced them.
func (e *Engine) contentStrategyRules(qual *QualitativeReport) []Insight {
	total := qual.Topics.Sum()
	if total == 0 {
		return nil
	}

	var insights []Insight
	for _, topic := range qual.Topics {
		percentage := int(math.Round(float64(topic.Count) / float64(total) * 100))
		if percentage <= e.rules.TopicSharePercent {
			continue
		}

		label := e.titleCaser.String(topic.Label)
		insights = append(insights, Insight{
			Type:     InsightContentStrategy,
			Priority: PriorityMedium,
			Insight:  fmt.Sprintf("%s accounts for %d%% of analyzed content", label, percentage),
			Recommendation: fmt.Sprintf("Content is heavily concentrated on %s; "+
				"consider diversifying topics to reach a broader audience", label),
		})
	}

	return insights
}
