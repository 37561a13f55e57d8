// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the catalog store
//
// Services accept primitives and model structs, never *http.Request, and
// return domain errors (apperror), never status codes. They receive
// repository INTERFACES, so tests swap in in-memory fakes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aminah/showtrack/internal/apperror"
	"github.com/aminah/showtrack/internal/model"
	"github.com/aminah/showtrack/internal/repository"
)

const MaxTitleLength = 200

// ShowService handles validation and orchestration for the show catalog.
type ShowService struct {
	shows  repository.ShowRepository
	logger *slog.Logger
}

// NewShowService creates a ShowService.
func NewShowService(shows repository.ShowRepository, logger *slog.Logger) *ShowService {
	return &ShowService{shows: shows, logger: logger}
}

// ShowInput carries the client-supplied fields of a show. IDs are always
// server-assigned; clients never pick them.
type ShowInput struct {
	Type               string       `json:"type"`
	Title              string       `json:"title"`
	Genres             []string     `json:"genres"`
	DateReleased       model.Date   `json:"dateReleased"`
	PersonalRating     int          `json:"personalRating"`
	RottenTomatoRating int          `json:"rottenTomatoRating"`
	Recommendations    int          `json:"recommendations"`
	WhereToWatch       []string     `json:"whereToWatch"`
}

// validate checks every field and assembles a well-formed Show.
// Enum values are parsed strictly — an unknown genre or platform from a
// JSON body or CSV row is rejected here, never stored.
func (in ShowInput) validate() (*model.Show, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.Invalid("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.Invalid("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}

	showType, err := model.ParseShowType(strings.TrimSpace(in.Type))
	if err != nil {
		return nil, apperror.Invalid("type", fmt.Sprintf("type must be %s or %s", model.TypeMovie, model.TypeTV))
	}

	if len(in.Genres) == 0 {
		return nil, apperror.Invalid("genres", "at least one genre is required")
	}
	genres := make([]model.Genre, 0, len(in.Genres))
	for _, raw := range in.Genres {
		g, err := model.ParseGenre(strings.TrimSpace(raw))
		if err != nil {
			return nil, apperror.Invalid("genres", fmt.Sprintf("unknown genre %q", raw))
		}
		genres = append(genres, g)
	}

	if in.DateReleased.IsZero() {
		return nil, apperror.Invalid("dateReleased", "release date is required")
	}

	if in.PersonalRating < model.MinPersonalRating || in.PersonalRating > model.MaxPersonalRating {
		return nil, apperror.Invalid("personalRating",
			fmt.Sprintf("personal rating must be between %d and %d",
				model.MinPersonalRating, model.MaxPersonalRating))
	}
	if in.RottenTomatoRating < model.MinCriticRating || in.RottenTomatoRating > model.MaxCriticRating {
		return nil, apperror.Invalid("rottenTomatoRating",
			fmt.Sprintf("rotten tomato rating must be between %d and %d",
				model.MinCriticRating, model.MaxCriticRating))
	}
	if in.Recommendations < 0 {
		return nil, apperror.Invalid("recommendations", "recommendations cannot be negative")
	}

	platforms := make([]model.Platform, 0, len(in.WhereToWatch))
	for _, raw := range in.WhereToWatch {
		p, err := model.ParsePlatform(strings.TrimSpace(raw))
		if err != nil {
			return nil, apperror.Invalid("whereToWatch", fmt.Sprintf("unknown platform %q", raw))
		}
		platforms = append(platforms, p)
	}

	return &model.Show{
		Type:               showType,
		Title:              title,
		Genres:             genres,
		DateReleased:       in.DateReleased,
		PersonalRating:     in.PersonalRating,
		RottenTomatoRating: in.RottenTomatoRating,
		Recommendations:    in.Recommendations,
		// NONE and real platforms never co-exist; an empty set means NONE.
		WhereToWatch: model.NormalizePlatforms(platforms),
	}, nil
}

// Create validates and persists a new show. The returned record carries the
// server-assigned id.
func (s *ShowService) Create(ctx context.Context, in ShowInput) (*model.Show, error) {
	show, err := in.validate()
	if err != nil {
		return nil, err
	}

	if err := s.shows.Create(ctx, show); err != nil {
		s.logger.Error("failed to create show",
			slog.String("title", show.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating show: %w", err)
	}

	s.logger.Info("show created",
		slog.String("id", show.ID),
		slog.String("title", show.Title),
	)
	return show, nil
}

// GetByID retrieves a single show.
func (s *ShowService) GetByID(ctx context.Context, id string) (*model.Show, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.MissingID("showId")
	}
	return s.shows.GetByID(ctx, id)
}

// GetByTitle retrieves all shows with the exact title.
// An empty result is a NotFound at this level — the endpoint's contract.
func (s *ShowService) GetByTitle(ctx context.Context, title string) ([]model.Show, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.MissingID("title")
	}

	shows, err := s.shows.GetByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("getting shows titled %q: %w", title, err)
	}
	if len(shows) == 0 {
		return nil, apperror.NotFound("show", title)
	}
	return shows, nil
}

// List returns the full catalog. Display filtering/sorting is the catalog
// engine's job, applied by the handler on top of this.
func (s *ShowService) List(ctx context.Context) ([]model.Show, error) {
	shows, err := s.shows.List(ctx)
	if err != nil {
		s.logger.Error("failed to list shows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	return shows, nil
}

// Update replaces every client-editable field of an existing show.
// This is a full-field replace, matching the edit form's behavior.
func (s *ShowService) Update(ctx context.Context, id string, in ShowInput) (*model.Show, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.MissingID("showId")
	}

	show, err := in.validate()
	if err != nil {
		return nil, err
	}
	show.ID = id

	if err := s.shows.Update(ctx, show); err != nil {
		return nil, err
	}

	s.logger.Info("show updated",
		slog.String("id", show.ID),
		slog.String("title", show.Title),
	)
	return show, nil
}

// Delete removes a show. User lists are NOT touched — an orphaned id in a
// watchlist is accepted and skipped on resolution.
func (s *ShowService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.MissingID("showId")
	}

	if err := s.shows.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("show deleted", slog.String("id", id))
	return nil
}
