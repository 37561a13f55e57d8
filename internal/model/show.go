package model

// Rating bounds enforced at the service boundary.
const (
	MinPersonalRating = 1
	MaxPersonalRating = 10
	MinCriticRating   = 0
	MaxCriticRating   = 100
)

// Show represents a trackable media item — a movie or a TV series.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize this
// struct. The wire names (personalRating, rottenTomatoRating, whereToWatch)
// are part of the API contract consumed by clients, so they stay camelCase
// even though Go field names are CamelCase.
//
// WHY RottenTomatoRating int (not float)?
// Critic scores are published as whole percentages (0–100). PersonalRating
// is a 1–10 whole-number scale. Integers make the band filters exact.
type Show struct {
	ID                 string     `json:"id"`
	Type               ShowType   `json:"type"`
	Title              string     `json:"title"`
	Genres             []Genre    `json:"genres"`
	DateReleased       Date       `json:"dateReleased"`
	PersonalRating     int        `json:"personalRating"`     // 1–10
	RottenTomatoRating int        `json:"rottenTomatoRating"` // 0–100
	Recommendations    int        `json:"recommendations"`    // times recommended, >= 0
	WhereToWatch       []Platform `json:"whereToWatch"`
}
