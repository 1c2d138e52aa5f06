package sqlkit

import (
	"strings"

	"github.com/samber/lo"
)

// SplitAndTrimSpace splits s by sep and trims every item. With removeEmpty, blank items are dropped.
func SplitAndTrimSpace(s, sep string, removeEmpty ...bool) []string {
	items := lo.Map(strings.Split(s, sep), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	if len(removeEmpty) == 0 || !removeEmpty[0] {
		return items
	}
	return lo.Filter(items, func(item string, _ int) bool { return item != "" })
}
