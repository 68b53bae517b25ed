package rules

// Rules holds the insight engine thresholds. Zero values mean "use default";
// the loader fills them in.
type Rules struct {
	// ShortPageRatio is the fraction of short pages above which a
	// content-length insight fires.
	ShortPageRatio float64 `yaml:"short_page_ratio"`
	// TopicSharePercent is the topic share (strictly) above which a
	// content-strategy insight fires, in whole percent.
	TopicSharePercent int `yaml:"topic_share_percent"`
}

// Defaults returns the built-in thresholds.
func Defaults() *Rules {
	return &Rules{
		ShortPageRatio:    0.30,
		TopicSharePercent: 25,
	}
}
