// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "fmt"

// ShowType distinguishes films from series.
//
// CLOSED ENUMS IN GO:
// Go has no enum keyword. The idiom is a named string type plus typed constants.
// The type gives compile-time safety in OUR code; values arriving over the wire
// (JSON bodies, CSV cells) are still arbitrary strings, so every boundary must
// call the matching Parse function. Untrusted values are rejected, never stored.
type ShowType string

const (
	TypeMovie ShowType = "MOVIE"
	TypeTV    ShowType = "TV"
)

// ParseShowType validates a raw string from an untrusted source.
func ParseShowType(s string) (ShowType, error) {
	switch ShowType(s) {
	case TypeMovie, TypeTV:
		return ShowType(s), nil
	}
	return "", fmt.Errorf("model: unknown show type %q", s)
}

// Genre is a closed set of show genres. Display names double as wire values.
type Genre string

const (
	GenreRomance     Genre = "Romance"
	GenreAction      Genre = "Action"
	GenreHorror      Genre = "Horror"
	GenreSciFi       Genre = "Sci-Fi"
	GenreDrama       Genre = "Drama"
	GenreComedy      Genre = "Comedy"
	GenreThriller    Genre = "Thriller"
	GenreFantasy     Genre = "Fantasy"
	GenreDocumentary Genre = "Documentary"
	GenreAdventure   Genre = "Adventure"
	GenreCrime       Genre = "Crime"
)

// Genres lists every valid genre, in display order.
var Genres = []Genre{
	GenreRomance, GenreAction, GenreHorror, GenreSciFi, GenreDrama,
	GenreComedy, GenreThriller, GenreFantasy, GenreDocumentary,
	GenreAdventure, GenreCrime,
}

// ParseGenre validates a raw string from an untrusted source.
func ParseGenre(s string) (Genre, error) {
	for _, g := range Genres {
		if Genre(s) == g {
			return g, nil
		}
	}
	return "", fmt.Errorf("model: unknown genre %q", s)
}

// Platform is a streaming platform a show is available on.
//
// PlatformNone is a sentinel meaning "no known platform". A well-formed
// availability set is either exactly {NONE} or a non-empty set of real
// platforms — NONE never co-occurs with a real platform.
type Platform string

const (
	PlatformNetflix       Platform = "NETFLIX"
	PlatformAmazonPrime   Platform = "AMAZON_PRIME"
	PlatformDisneyPlus    Platform = "DISNEY_PLUS"
	PlatformPeacock       Platform = "PEACOCK"
	PlatformHulu          Platform = "HULU"
	PlatformHBOMax        Platform = "HBO_MAX"
	PlatformAppleTVPlus   Platform = "APPLE_TV_PLUS"
	PlatformParamountPlus Platform = "PARAMOUNT_PLUS"
	PlatformCrunchyroll   Platform = "CRUNCHYROLL"
	PlatformYouTube       Platform = "YOUTUBE"
	PlatformShowtime      Platform = "SHOWTIME"
	PlatformNone          Platform = "NONE"
)

// Platforms lists every valid platform, sentinel included.
var Platforms = []Platform{
	PlatformNetflix, PlatformAmazonPrime, PlatformDisneyPlus,
	PlatformPeacock, PlatformHulu, PlatformHBOMax, PlatformAppleTVPlus,
	PlatformParamountPlus, PlatformCrunchyroll, PlatformYouTube,
	PlatformShowtime, PlatformNone,
}

// ParsePlatform validates a raw string from an untrusted source.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if Platform(s) == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("model: unknown platform %q", s)
}

// NormalizePlatforms canonicalises an availability set:
//   - empty            → {NONE}
//   - {NONE}           → {NONE}
//   - NONE + real ones → the real ones, NONE dropped
//
// This mirrors how the platform picker behaves: selecting a real platform
// deselects "None", and clearing everything falls back to "None".
func NormalizePlatforms(in []Platform) []Platform {
	out := make([]Platform, 0, len(in))
	for _, p := range in {
		if p != PlatformNone {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []Platform{PlatformNone}
	}
	return out
}
