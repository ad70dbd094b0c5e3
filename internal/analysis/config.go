// Package analysis runs the independent passes over a built snapshot graph:
// path resolution, structure, duplicates, age and relevance scoring,
// categorization, statistics and the reorganization plan.
package analysis

import (
	"fmt"
	"os"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config carries every threshold and pattern table of an analysis run.
type Config struct {
	OldFileDays      int `yaml:"old_file_days"`
	OldBandDays      int `yaml:"old_band_days"`
	VeryOldBandDays  int `yaml:"very_old_band_days"`
	DeepNestingDepth int `yaml:"deep_nesting_depth"`
	UnusedMinScore   int `yaml:"unused_min_score"`

	CrowdedTopN      int `yaml:"crowded_top_n"`
	CrowdedThreshold int `yaml:"crowded_threshold"`
	CrowdedPlanTopN  int `yaml:"crowded_plan_top_n"`
	LargestTopN      int `yaml:"largest_top_n"`
	RootFolderLimit  int `yaml:"root_folder_limit"`

	PrefixMinCount  int      `yaml:"prefix_min_count"`
	PrefixPlanTopN  int      `yaml:"prefix_plan_top_n"`
	PrefixStopWords []string `yaml:"prefix_stop_words"`

	TempPatterns []string       `yaml:"temp_patterns"`
	Categories   []CategoryRule `yaml:"categories"`

	// PathCacheSize enables memoized path resolution when positive.
	PathCacheSize int `yaml:"path_cache_size"`

	Now func() time.Time `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		OldFileDays:      365,
		OldBandDays:      730,
		VeryOldBandDays:  1095,
		DeepNestingDepth: 7,
		UnusedMinScore:   3,
		CrowdedTopN:      20,
		CrowdedThreshold: 100,
		CrowdedPlanTopN:  5,
		LargestTopN:      20,
		RootFolderLimit:  10,
		PrefixMinCount:   3,
		PrefixPlanTopN:   5,
		PrefixStopWords:  []string{"the", "a", "de", "het", "een"},
		TempPatterns: []string{
			`temp`,
			`tmp`,
			`cache`,
			`backup`,
			`bak`,
			`old`,
			`copy of`,
			`\(\d+\)`,
			`\d{8}`,
			`\d{4}-\d{2}-\d{2}`,
		},
		Categories: DefaultCategories(),
		Now:        time.Now,
	}
}

// LoadConfigFile overlays a YAML file on DefaultConfig. Lists in the file
// replace the defaults wholesale.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read analysis config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse analysis config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid analysis config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OldFileDays, validation.Min(0)),
		validation.Field(&c.OldBandDays, validation.Min(0)),
		validation.Field(&c.VeryOldBandDays, validation.Min(c.OldBandDays)),
		validation.Field(&c.DeepNestingDepth, validation.Min(0)),
		validation.Field(&c.UnusedMinScore, validation.Min(0)),
		validation.Field(&c.CrowdedTopN, validation.Min(0)),
		validation.Field(&c.CrowdedThreshold, validation.Min(0)),
		validation.Field(&c.CrowdedPlanTopN, validation.Min(0)),
		validation.Field(&c.LargestTopN, validation.Min(0)),
		validation.Field(&c.RootFolderLimit, validation.Min(0)),
		validation.Field(&c.PrefixMinCount, validation.Min(0)),
		validation.Field(&c.PrefixPlanTopN, validation.Min(0)),
		validation.Field(&c.PathCacheSize, validation.Min(0)),
		validation.Field(&c.TempPatterns, validation.Each(validation.By(compiles))),
		validation.Field(&c.Categories, validation.Each(validation.By(validRule))),
	)
}

func compiles(value interface{}) error {
	pattern, _ := value.(string)
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	return nil
}

func validRule(value interface{}) error {
	rule, _ := value.(CategoryRule)
	if rule.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if rule.Name == OtherCategory {
		return fmt.Errorf("category %q is reserved", OtherCategory)
	}
	for _, p := range rule.Patterns {
		if err := compiles(p); err != nil {
			return fmt.Errorf("category %s: %w", rule.Name, err)
		}
	}
	return nil
}

func (c Config) now() time.Time {
	if c.Now == nil {
		return naive(time.Now())
	}
	return naive(c.Now())
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}
