package reminders

import "strings"

// ProductFilter reports whether a product name denotes a consumable good that
// should get reorder reminders.
type ProductFilter func(name string) bool

// DefaultConsumableKeywords marks the honey product line and its
// local-language equivalents.
var DefaultConsumableKeywords = []string{
	"عسل",
	"honey",
	"سدر",
	"sidr",
	"حبة البركة",
	"black seed",
}

// KeywordFilter builds a case-insensitive substring filter over the keyword
// set.
func KeywordFilter(keywords []string) ProductFilter {
	lowered := make([]string, len(keywords))
	for i, keyword := range keywords {
		lowered[i] = strings.ToLower(keyword)
	}
	return func(name string) bool {
		name = strings.ToLower(name)
		for _, keyword := range lowered {
			if strings.Contains(name, keyword) {
				return true
			}
		}
		return false
	}
}
