// Package infer suggests a category for a place from the words in its
// name and description.
package infer

import (
	"strings"

	"go.uber.org/zap"
)

// keywords maps an exact category name to the substrings that select it.
var keywords = map[string][]string{
	"Eat/Drink":         {"restaurant", "cafe", "coffee", "bar", "food", "burrito", "pizza", "brewery", "bistro", "diner"},
	"Hike":              {"trail", "hike", "hiking", "mountain", "summit", "trek"},
	"City":              {"city", "town", "downtown", "urban"},
	"Landmark":          {"monument", "historic", "building", "tower", "statue", "memorial"},
	"Point of Interest": {"park", "museum", "attraction", "viewpoint", "scenic"},
}

// Infer returns the first category, in caller order, whose keyword table
// entry has a keyword contained in the lowercased name and description.
// Categories without a table entry never match.
func Infer(name, description string, categories []string) (string, bool) {
	text := strings.ToLower(name + " " + description)
	for _, category := range categories {
		for _, kw := range keywords[category] {
			if strings.Contains(text, kw) {
				return category, true
			}
		}
	}
	return "", false
}

// Unmapped returns the categories that have no keyword entry and can
// therefore never be inferred. Each one is logged once per call.
func Unmapped(categories []string) []string {
	var out []string
	for _, category := range categories {
		if _, ok := keywords[category]; !ok {
			out = append(out, category)
			zap.L().Warn("infer: category has no keywords", zap.String("category", category))
		}
	}
	return out
}
