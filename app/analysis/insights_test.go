package analysis

import (
	"strings"
	"testing"
)

func TestEngine_ContentLengthRule(t *testing.T) {
	engine := NewEngine(nil)

	quant := &QuantitativeReport{
		TotalPages:                10,
		ContentLengthDistribution: ContentLengthDistribution{Short: 4, Medium: 6},
	}

	insights := engine.Run(quant, &QualitativeReport{})

	if len(insights) != 1 {
		t.Fatalf("Expected 1 insight, got %d", len(insights))
	}
	if insights[0].Type != InsightContentLength {
		t.Errorf("Expected content_length insight, got %s", insights[0].Type)
	}
	if insights[0].Priority != PriorityMedium {
		t.Errorf("Expected medium priority, got %s", insights[0].Priority)
	}
	if !strings.Contains(insights[0].Insight, "40%") {
		t.Errorf("Expected rounded percentage in message, got %q", insights[0].Insight)
	}
}

func TestEngine_ContentLengthRuleAtThreshold(t *testing.T) {
	engine := NewEngine(nil)

	// Exactly 30% does not fire; the comparison is strict
	quant := &QuantitativeReport{
		TotalPages:                10,
		ContentLengthDistribution: ContentLengthDistribution{Short: 3, Medium: 7},
	}

	insights := engine.Run(quant, &QualitativeReport{})

	if len(insights) != 0 {
		t.Errorf("Expected no insights at exactly 30%%, got %+v", insights)
	}
}

func TestEngine_MetaOptimizationRule(t *testing.T) {
	engine := NewEngine(nil)

	quant := &QuantitativeReport{
		TotalPages:                   10,
		PagesWithMissingDescriptions: 3,
	}

	insights := engine.Run(quant, &QualitativeReport{})

	if len(insights) != 1 {
		t.Fatalf("Expected 1 insight, got %d", len(insights))
	}
	if insights[0].Type != InsightMetaOptimization {
		t.Errorf("Expected meta_optimization insight, got %s", insights[0].Type)
	}
	if insights[0].Priority != PriorityHigh {
		t.Errorf("Expected high priority, got %s", insights[0].Priority)
	}
	if !strings.Contains(insights[0].Insight, "3 pages") {
		t.Errorf("Expected exact count in message, got %q", insights[0].Insight)
	}
}

func TestEngine_ContentStrategyRule(t *testing.T) {
	engine := NewEngine(nil)

	quant := &QuantitativeReport{TotalPages: 10}
	qual := &QualitativeReport{
		Topics: CategoryCounts{
			{Label: "A", Count: 30},
			{Label: "B", Count: 10},
		},
	}

	insights := engine.Run(quant, qual)

	// A is 75% (> 25, fires); B is exactly 25% (strict inequality, does not)
	if len(insights) != 1 {
		t.Fatalf("Expected 1 insight, got %d: %+v", len(insights), insights)
	}
	if insights[0].Type != InsightContentStrategy {
		t.Errorf("Expected content_strategy insight, got %s", insights[0].Type)
	}
	if !strings.Contains(insights[0].Insight, "A ") {
		t.Errorf("Expected topic A named in message, got %q", insights[0].Insight)
	}
	if !strings.Contains(insights[0].Insight, "75%") {
		t.Errorf("Expected topic share in message, got %q", insights[0].Insight)
	}
}

func TestEngine_TopicRuleSkippedOnZeroSum(t *testing.T) {
	engine := NewEngine(nil)

	quant := &QuantitativeReport{TotalPages: 10}
	qual := &QualitativeReport{
		Topics: CategoryCounts{{Label: "ghost", Count: 0}},
	}

	insights := engine.Run(quant, qual)

	if len(insights) != 0 {
		t.Errorf("Expected no insights when topic counts sum to zero, got %+v", insights)
	}
}

func TestEngine_GenerationOrder(t *testing.T) {
	engine := NewEngine(nil)

	quant := &QuantitativeReport{
		TotalPages:                   10,
		PagesWithMissingDescriptions: 2,
		ContentLengthDistribution:    ContentLengthDistribution{Short: 5, Medium: 5},
	}
	qual := &QualitativeReport{
		Topics: CategoryCounts{
			{Label: "guides", Count: 6},
			{Label: "reviews", Count: 4},
		},
	}

	insights := engine.Run(quant, qual)

	// Fixed rule order, then topics in arrival order; high priority does not
	// jump the queue
	want := []InsightType{InsightContentLength, InsightMetaOptimization, InsightContentStrategy, InsightContentStrategy}
	if len(insights) != len(want) {
		t.Fatalf("Expected %d insights, got %d: %+v", len(want), len(insights), insights)
	}
	for i, wantType := range want {
		if insights[i].Type != wantType {
			t.Errorf("Insight %d: expected %s, got %s", i, wantType, insights[i].Type)
		}
	}
	if !strings.Contains(insights[2].Insight, "Guides") {
		t.Errorf("Expected guides topic first, got %q", insights[2].Insight)
	}
	if !strings.Contains(insights[3].Insight, "Reviews") {
		t.Errorf("Expected reviews topic second, got %q", insights[3].Insight)
	}
}

func TestEngine_DegradedQualitativeReport(t *testing.T) {
	engine := NewEngine(nil)

	quant := &QuantitativeReport{TotalPages: 10}
	qual := &QualitativeReport{Message: "No LLM provider configured"}

	insights := engine.Run(quant, qual)

	if len(insights) != 0 {
		t.Errorf("Expected no topic insights from a degraded report, got %+v", insights)
	}
}
