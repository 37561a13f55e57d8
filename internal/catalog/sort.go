package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aminah/showtrack/internal/model"
)

// SortKey selects the comparator applied before filtering.
// The zero value means "no sort" — source order is preserved.
type SortKey string

const (
	SortNone            SortKey = ""
	SortPersonalRating  SortKey = "personalRating"     // highest first
	SortRottenTomato    SortKey = "rottenTomatoRating" // highest first
	SortAlphabetical    SortKey = "alphabetical"       // title A→Z, locale-aware
	SortDateReleased    SortKey = "dateReleased"       // newest first
	SortRecommendations SortKey = "recommendations"    // most recommended first
)

// Evaluate derives the display list: a stable sort of the FULL candidate
// list by key, then the filter applied to the sorted result.
//
// ORDER OF APPLICATION:
// Sorting happens before filtering on purpose. With ties under the
// comparator the two orders are observably different — sorting the full
// list first means equal-key shows keep their relative source positions
// even as filters are toggled on and off, which is the ordering users have
// always seen. The sort is stable for the same reason: the comparators
// alone leave ties undefined.
//
// Evaluate never mutates shows; it copies, sorts the copy, and filters
// into a fresh slice. An unknown key sorts like SortNone.
func Evaluate(shows []model.Show, f Filter, key SortKey) []model.Show {
	sorted := make([]model.Show, len(shows))
	copy(sorted, shows)

	if less := comparator(key); less != nil {
		sort.SliceStable(sorted, func(i, j int) bool {
			return less(sorted[i], sorted[j])
		})
	}

	out := make([]model.Show, 0, len(sorted))
	for _, s := range sorted {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}

// comparator returns the "less" function for a key, or nil for no sort.
func comparator(key SortKey) func(a, b model.Show) bool {
	switch key {
	case SortPersonalRating:
		return func(a, b model.Show) bool { return a.PersonalRating > b.PersonalRating }
	case SortRottenTomato:
		return func(a, b model.Show) bool { return a.RottenTomatoRating > b.RottenTomatoRating }
	case SortAlphabetical:
		// collate gives proper locale-aware ordering — "École" sorts with
		// "Ecole", case differences are ignored. strings.Compare would put
		// all capitals before all lowercase, which reads as a bug.
		c := collate.New(language.English, collate.IgnoreCase)
		return func(a, b model.Show) bool { return c.CompareString(a.Title, b.Title) < 0 }
	case SortDateReleased:
		return func(a, b model.Show) bool { return a.DateReleased.After(b.DateReleased.Time) }
	case SortRecommendations:
		return func(a, b model.Show) bool { return a.Recommendations > b.Recommendations }
	default:
		return nil
	}
}
