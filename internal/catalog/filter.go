// Package catalog implements the filter/sort engine that derives a display
// list from the full set of shows.
//
// The engine is pure: Evaluate never mutates its input and returns a fresh
// slice every call. It lives behind the GET /api/shows query parameters but
// has no HTTP knowledge of its own — it is plain data in, plain data out.
package catalog

import (
	"strconv"
	"strings"

	"github.com/aminah/showtrack/internal/model"
)

// Filter is a conjunction of independent predicates. Zero-value fields mean
// "predicate not applied": a Show is included iff every SUPPLIED predicate
// matches.
//
// The two rating fields are band strings of the form "lo-hi" (inclusive),
// e.g. "4-7" or "71-100". A band that does not parse is treated as not
// applied rather than rejected — filter state arrives from URL parameters
// and may be missing or half-typed, and failing open matches how the
// filters have always behaved.
type Filter struct {
	Type               string           // "" or a ShowType value, matched by equality
	PersonalRating     string           // "lo-hi" band over 1–10
	RottenTomatoRating string           // "lo-hi" band over 0–100
	Platforms          []model.Platform // non-empty intersection; vacuous if empty or contains NONE
	TitleQuery         string           // case-insensitive substring of the title
}

// Matches reports whether a single show passes every supplied predicate.
func (f Filter) Matches(s model.Show) bool {
	if f.Type != "" && string(s.Type) != f.Type {
		return false
	}
	if !inBand(s.PersonalRating, f.PersonalRating) {
		return false
	}
	if !inBand(s.RottenTomatoRating, f.RottenTomatoRating) {
		return false
	}
	if !matchesPlatforms(s.WhereToWatch, f.Platforms) {
		return false
	}
	if q := strings.TrimSpace(f.TitleQuery); q != "" &&
		!strings.Contains(strings.ToLower(s.Title), strings.ToLower(q)) {
		return false
	}
	return true
}

// inBand checks inclusive membership in a "lo-hi" band.
// An empty or malformed band fails open (always true).
func inBand(v int, band string) bool {
	lo, hi, ok := parseBand(band)
	if !ok {
		return true
	}
	return v >= lo && v <= hi
}

// parseBand splits "lo-hi" into its integer bounds.
// ok is false for anything that is not two integers joined by a dash.
func parseBand(band string) (lo, hi int, ok bool) {
	if band == "" {
		return 0, 0, false
	}
	loStr, hiStr, found := strings.Cut(band, "-")
	if !found {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(strings.TrimSpace(loStr))
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.Atoi(strings.TrimSpace(hiStr))
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// matchesPlatforms implements the platform predicate: true when the filter
// set is vacuous, otherwise true iff the show is available on at least one
// selected platform.
//
// The filter set is vacuous when it is empty or contains the NONE sentinel.
// The platform picker keeps NONE from co-occurring with real platforms, so
// "contains NONE" and "is exactly {NONE}" are the same set in practice;
// treating any NONE as vacuous also tolerates hand-edited URLs.
func matchesPlatforms(available, selected []model.Platform) bool {
	if len(selected) == 0 {
		return true
	}
	for _, p := range selected {
		if p == model.PlatformNone {
			return true
		}
	}
	for _, want := range selected {
		for _, have := range available {
			if want == have {
				return true
			}
		}
	}
	return false
}
