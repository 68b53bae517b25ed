package rules

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads rule thresholds from a YAML file. An empty path or a missing
// file yields the defaults; a present-but-invalid file is an error.
func Load(path string) (*Rules, error) {
	rules := Defaults()

	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("Rules file not found, using defaults", "path", path)
		return rules, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if loaded.ShortPageRatio > 0 {
		rules.ShortPageRatio = loaded.ShortPageRatio
	}
	if loaded.TopicSharePercent > 0 {
		rules.TopicSharePercent = loaded.TopicSharePercent
	}

	slog.Debug("Loaded insight rules", "path", path,
		"short_page_ratio", rules.ShortPageRatio,
		"topic_share_percent", rules.TopicSharePercent)

	return rules, nil
}
