// Package analysis runs the independent passes over a built snapshot graph:
// path resolution, structure, duplicates, age and relevance scoring,
// categorization, statistics and the reorganization plan.
package analysis

import (
	"regexp"
	"strings"

	"github.com/drivescope/core/internal/models"
)

const OtherCategory = "Other"

type CategoryRule struct {
	Name     string   `yaml:"name" json:"name"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// DefaultCategories is evaluated top to bottom; the first rule with a
// matching pattern wins.
func DefaultCategories() []CategoryRule {
	return []CategoryRule{
		{Name: "Documents", Patterns: []string{
			`\.(docx?|odt|rtf|txt|md|pdf|pages)$`,
			`^application/pdf$`,
			`^application/vnd\.google-apps\.document$`,
			`wordprocessingml`,
			`^application/msword$`,
			`^text/plain$`,
			`^text/markdown$`,
		}},
		{Name: "Spreadsheets", Patterns: []string{
			`\.(xlsx?|ods|csv|tsv|numbers)$`,
			`^application/vnd\.google-apps\.spreadsheet$`,
			`spreadsheetml`,
			`^application/vnd\.ms-excel$`,
			`^text/csv$`,
		}},
		{Name: "Presentations", Patterns: []string{
			`\.(pptx?|odp|key)$`,
			`^application/vnd\.google-apps\.presentation$`,
			`presentationml`,
			`^application/vnd\.ms-powerpoint$`,
		}},
		{Name: "Images", Patterns: []string{
			`\.(jpe?g|png|gif|bmp|tiff?|webp|heic|svg|raw)$`,
			`^image/`,
			`^application/vnd\.google-apps\.photo$`,
		}},
		{Name: "Videos", Patterns: []string{
			`\.(mp4|mov|avi|mkv|wmv|webm|m4v|mpe?g)$`,
			`^video/`,
		}},
		{Name: "Audio", Patterns: []string{
			`\.(mp3|wav|flac|aac|ogg|m4a|wma)$`,
			`^audio/`,
		}},
		{Name: "Archives", Patterns: []string{
			`\.(zip|rar|7z|tar|gz|tgz|bz2|xz)$`,
			`^application/(zip|x-zip-compressed|x-rar-compressed|vnd\.rar|x-7z-compressed|x-tar|gzip|x-gzip)$`,
		}},
		{Name: "Code", Patterns: []string{
			`\.(go|py|js|ts|java|c|cpp|h|rb|rs|php|sh|json|ya?ml|xml|html?|css|sql|ipynb)$`,
			`^application/vnd\.google-apps\.script`,
			`^application/(json|javascript|x-python|x-sh|xml)$`,
			`^text/(html|css|javascript|x-python|x-go)$`,
		}},
	}
}

type compiledCategory struct {
	name     string
	patterns []*regexp.Regexp
}

// Categorizer classifies files into semantic buckets.
type Categorizer struct {
	categories []compiledCategory
}

func NewCategorizer(rules []CategoryRule) (*Categorizer, error) {
	c := &Categorizer{categories: make([]compiledCategory, 0, len(rules))}
	for _, rule := range rules {
		patterns, err := compilePatterns(rule.Patterns)
		if err != nil {
			return nil, err
		}
		c.categories = append(c.categories, compiledCategory{name: rule.Name, patterns: patterns})
	}
	return c, nil
}

// Names returns the category names in evaluation order, Other last.
func (c *Categorizer) Names() []string {
	names := make([]string, 0, len(c.categories)+1)
	for _, cat := range c.categories {
		names = append(names, cat.name)
	}
	return append(names, OtherCategory)
}

// Match returns the first category with a pattern found in the lowercased
// name or MIME type.
func (c *Categorizer) Match(name, mimeType string) string {
	name = strings.ToLower(name)
	mimeType = strings.ToLower(mimeType)

	for _, cat := range c.categories {
		for _, re := range cat.patterns {
			if re.MatchString(name) || re.MatchString(mimeType) {
				return cat.name
			}
		}
	}
	return OtherCategory
}

// Categorize places every file in exactly one category. Every category is
// present in the result, in evaluation order, even when empty.
func (c *Categorizer) Categorize(g *models.Graph) models.Categories {
	members := models.NewOrderedMap[string, []models.CategoryMember]()
	for _, name := range c.Names() {
		members.Set(name, []models.CategoryMember{})
	}

	for _, e := range g.NonFolders {
		category := c.Match(e.Name, e.MimeType)
		members.Update(category, func(list []models.CategoryMember) []models.CategoryMember {
			return append(list, models.CategoryMember{ID: e.ID, Name: e.Name, MimeType: e.MimeType})
		})
	}

	return models.Categories{Members: members, Summary: Summarize(members)}
}

// Summarize derives the category to count view.
func Summarize(members *models.OrderedMap[string, []models.CategoryMember]) *models.Counter {
	summary := models.NewCounter()
	members.Each(func(name string, list []models.CategoryMember) {
		summary.Set(name, len(list))
	})
	return summary
}
