// Package moderation flags customer reviews that contain blocked keywords.
package moderation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultKeywords is used when no keyword file is configured.
var DefaultKeywords = []string{
	"scam",
	"fake",
	"fraud",
	"counterfeit",
	"refund",
	"broken",
	"worst",
	"idiot",
	"stupid",
	"http://",
	"https://",
}

// Flagger matches review text against a static keyword list.
type Flagger struct {
	keywords []string
}

// NewFlagger returns a Flagger for the given keywords. Matching is
// case-insensitive; empty and duplicate keywords are dropped.
func NewFlagger(keywords []string) *Flagger {
	seen := make(map[string]bool, len(keywords))
	f := &Flagger{}
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		f.keywords = append(f.keywords, k)
	}
	return f
}

// Keywords returns the normalized keyword list.
func (f *Flagger) Keywords() []string {
	out := make([]string, len(f.keywords))
	copy(out, f.keywords)
	return out
}

// Check returns the keywords contained in text, in list order. The text is
// flagged when the result is non-empty.
func (f *Flagger) Check(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, k := range f.keywords {
		if strings.Contains(lower, k) {
			matched = append(matched, k)
		}
	}
	return matched
}

// Flagged reports whether text contains any keyword.
func (f *Flagger) Flagged(text string) bool {
	return len(f.Check(text)) > 0
}

type keywordFile struct {
	Keywords []string `yaml:"keywords"`
}

// Load builds a Flagger from a YAML file with a top-level "keywords" list.
// An empty path yields the default list.
func Load(path string) (*Flagger, error) {
	if path == "" {
		return NewFlagger(DefaultKeywords), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword file: %w", err)
	}
	var kf keywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse keyword file: %w", err)
	}
	if len(kf.Keywords) == 0 {
		return nil, fmt.Errorf("keyword file %s has no keywords", path)
	}
	return NewFlagger(kf.Keywords), nil
}
