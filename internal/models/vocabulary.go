package models

import (
	"sort"
	"strings"
)

// Vocabulary is the set of category and tag names known to the ledger,
// keyed by ledger id.
type Vocabulary struct {
	Categories map[string]string `json:"categories"`
	Tags       map[string]string `json:"tags"`
}

func (v *Vocabulary) HasCategory(name string) bool {
	return containsValue(v.Categories, name)
}

func (v *Vocabulary) HasTag(name string) bool {
	return containsValue(v.Tags, name)
}

// CategoryNames returns the category names sorted.
func (v *Vocabulary) CategoryNames() []string {
	return sortedValues(v.Categories)
}

// TagNames returns the tag names sorted.
func (v *Vocabulary) TagNames() []string {
	return sortedValues(v.Tags)
}

// FamilyTags returns the known tags whose name starts with category.
func (v *Vocabulary) FamilyTags(category string) []string {
	var family []string
	for _, tag := range v.TagNames() {
		if strings.HasPrefix(tag, category) {
			family = append(family, tag)
		}
	}
	return family
}

func containsValue(m map[string]string, value string) bool {
	for _, v := range m {
		if v == value {
			return true
		}
	}
	return false
}

func sortedValues(m map[string]string) []string {
	values := make([]string, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
