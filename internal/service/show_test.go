package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/aminah/showtrack/internal/apperror"
	"github.com/aminah/showtrack/internal/model"
)

// =========================================================================
// MOCK REPOSITORY
// =========================================================================
//
// mockShowRepo implements repository.ShowRepository in memory. The service
// only sees the interface, so it can't tell a mock from SQLite — that's the
// point: these tests exercise validation and orchestration, nothing else.

type mockShowRepo struct {
	shows  map[string]*model.Show
	nextID int
}

func newMockShowRepo() *mockShowRepo {
	return &mockShowRepo{shows: make(map[string]*model.Show)}
}

func (m *mockShowRepo) Create(_ context.Context, show *model.Show) error {
	m.nextID++
	show.ID = fmt.Sprintf("show-%d", m.nextID)
	stored := *show
	m.shows[show.ID] = &stored
	return nil
}

func (m *mockShowRepo) GetByID(_ context.Context, id string) (*model.Show, error) {
	show, ok := m.shows[id]
	if !ok {
		return nil, apperror.NotFound("show", id)
	}
	result := *show
	return &result, nil
}

func (m *mockShowRepo) GetByTitle(_ context.Context, title string) ([]model.Show, error) {
	result := []model.Show{}
	for _, s := range m.shows {
		if s.Title == title {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockShowRepo) List(_ context.Context) ([]model.Show, error) {
	result := make([]model.Show, 0, len(m.shows))
	for _, s := range m.shows {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockShowRepo) Update(_ context.Context, show *model.Show) error {
	if _, ok := m.shows[show.ID]; !ok {
		return apperror.NotFound("show", show.ID)
	}
	stored := *show
	m.shows[show.ID] = &stored
	return nil
}

func (m *mockShowRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.shows[id]; !ok {
		return apperror.NotFound("show", id)
	}
	delete(m.shows, id)
	return nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestShowService(t *testing.T) (*ShowService, *mockShowRepo) {
	t.Helper()
	repo := newMockShowRepo()
	return NewShowService(repo, testLogger()), repo
}

// validInput returns a ShowInput that passes every validation rule.
// Tests tweak one field at a time from this baseline.
func validInput() ShowInput {
	return ShowInput{
		Type:               "MOVIE",
		Title:              "Dune",
		Genres:             []string{"Sci-Fi", "Adventure"},
		DateReleased:       model.DateOf(time.Date(2021, 10, 22, 0, 0, 0, 0, time.UTC)),
		PersonalRating:     8,
		RottenTomatoRating: 83,
		Recommendations:    3,
		WhereToWatch:       []string{"HBO_MAX"},
	}
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestShowCreate_Success(t *testing.T) {
	svc, _ := newTestShowService(t)

	show, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if show.ID == "" {
		t.Error("expected show to have a server-assigned ID")
	}
	if show.Title != "Dune" {
		t.Errorf("Title = %q, want %q", show.Title, "Dune")
	}
	if show.Type != model.TypeMovie {
		t.Errorf("Type = %q, want %q", show.Type, model.TypeMovie)
	}
}

func TestShowCreate_TrimsTitle(t *testing.T) {
	svc, _ := newTestShowService(t)

	in := validInput()
	in.Title = "  Dune  "
	show, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if show.Title != "Dune" {
		t.Errorf("Title = %q, want trimmed %q", show.Title, "Dune")
	}
}

func TestShowCreate_EmptyPlatformsBecomeNone(t *testing.T) {
	svc, _ := newTestShowService(t)

	in := validInput()
	in.WhereToWatch = nil
	show, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(show.WhereToWatch) != 1 || show.WhereToWatch[0] != model.PlatformNone {
		t.Errorf("WhereToWatch = %v, want [NONE]", show.WhereToWatch)
	}
}

func TestShowCreate_ValidationFailures(t *testing.T) {
	svc, repo := newTestShowService(t)

	tests := []struct {
		name   string
		mutate func(*ShowInput)
	}{
		{"empty title", func(in *ShowInput) { in.Title = "   " }},
		{"overlong title", func(in *ShowInput) { in.Title = strings.Repeat("a", MaxTitleLength+1) }},
		{"unknown type", func(in *ShowInput) { in.Type = "PODCAST" }},
		{"no genres", func(in *ShowInput) { in.Genres = nil }},
		{"unknown genre", func(in *ShowInput) { in.Genres = []string{"POLKA"} }},
		{"zero date", func(in *ShowInput) { in.DateReleased = model.Date{} }},
		{"personal rating too low", func(in *ShowInput) { in.PersonalRating = 0 }},
		{"personal rating too high", func(in *ShowInput) { in.PersonalRating = 11 }},
		{"critic rating too low", func(in *ShowInput) { in.RottenTomatoRating = -1 }},
		{"critic rating too high", func(in *ShowInput) { in.RottenTomatoRating = 101 }},
		{"negative recommendations", func(in *ShowInput) { in.Recommendations = -1 }},
		{"unknown platform", func(in *ShowInput) { in.WhereToWatch = []string{"BLOCKBUSTER"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			if err == nil {
				t.Fatal("Create() should have failed validation")
			}
			if !errors.Is(err, apperror.ErrInvalid) {
				t.Errorf("error = %v, want ErrInvalid", err)
			}
		})
	}

	if len(repo.shows) != 0 {
		t.Errorf("invalid inputs persisted %d shows, want 0", len(repo.shows))
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestShowGetByID_NotFound(t *testing.T) {
	svc, _ := newTestShowService(t)

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestShowGetByID_EmptyID(t *testing.T) {
	svc, _ := newTestShowService(t)

	_, err := svc.GetByID(context.Background(), "  ")
	if !errors.Is(err, apperror.ErrInvalid) {
		t.Errorf("error = %v, want ErrInvalid", err)
	}
}

func TestShowGetByTitle_ReturnsAllMatches(t *testing.T) {
	svc, _ := newTestShowService(t)

	// Two records share a title (original and remake).
	in := validInput()
	in.Title = "The Office"
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("setup: %v", err)
	}
	in.Type = "TV"
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("setup: %v", err)
	}

	shows, err := svc.GetByTitle(context.Background(), "The Office")
	if err != nil {
		t.Fatalf("GetByTitle() error = %v", err)
	}
	if len(shows) != 2 {
		t.Errorf("GetByTitle() returned %d shows, want 2", len(shows))
	}
}

func TestShowGetByTitle_NoMatchIsNotFound(t *testing.T) {
	svc, _ := newTestShowService(t)

	_, err := svc.GetByTitle(context.Background(), "Unknown Title")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// UPDATE / DELETE TESTS
// =========================================================================

func TestShowUpdate_ReplacesAllFields(t *testing.T) {
	svc, _ := newTestShowService(t)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	in := validInput()
	in.Title = "Dune: Part Two"
	in.PersonalRating = 9
	updated, err := svc.Update(context.Background(), created.ID, in)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("ID changed on update: %q → %q", created.ID, updated.ID)
	}
	if updated.Title != "Dune: Part Two" || updated.PersonalRating != 9 {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestShowUpdate_NotFound(t *testing.T) {
	svc, _ := newTestShowService(t)

	_, err := svc.Update(context.Background(), "nonexistent", validInput())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestShowUpdate_InvalidInputDoesNotPersist(t *testing.T) {
	svc, _ := newTestShowService(t)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	in := validInput()
	in.PersonalRating = 99
	if _, err := svc.Update(context.Background(), created.ID, in); !errors.Is(err, apperror.ErrInvalid) {
		t.Fatalf("error = %v, want ErrInvalid", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PersonalRating != created.PersonalRating {
		t.Errorf("failed update mutated the record: rating %d", got.PersonalRating)
	}
}

func TestShowDelete(t *testing.T) {
	svc, _ := newTestShowService(t)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after delete: error = %v, want ErrNotFound", err)
	}

	if err := svc.Delete(context.Background(), "nonexistent"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), ""); !errors.Is(err, apperror.ErrInvalid) {
		t.Errorf("error = %v, want ErrInvalid", err)
	}
}

// =========================================================================
// CSV IMPORT TESTS
// =========================================================================

const importHeader = "title,type,genres,dateReleased,personalRating,rottenTomatoRating,recommendations,whereToWatch\n"

func TestImportCSV_AllRowsSucceed(t *testing.T) {
	svc, _ := newTestShowService(t)

	csvData := importHeader +
		"Dune,MOVIE,Sci-Fi Adventure,2021-10-22,8,83,3,HBO_MAX\n" +
		"Severance,TV,Sci-Fi Thriller,2022-02-18,9,97,5,APPLE_TV_PLUS\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if len(result.Failed) != 0 {
		t.Errorf("Failed = %v, want none", result.Failed)
	}
}

func TestImportCSV_DefaultsForOptionalColumns(t *testing.T) {
	svc, repo := newTestShowService(t)

	// No personalRating or recommendations columns at all.
	csvData := "title,type,genres,dateReleased,rottenTomatoRating,whereToWatch\n" +
		"Dune,MOVIE,Sci-Fi,2021-10-22,83,HBO_MAX\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("Created = %d, want 1", result.Created)
	}

	shows, _ := repo.List(context.Background())
	if shows[0].PersonalRating != importDefaultPersonalRating {
		t.Errorf("PersonalRating = %d, want default %d", shows[0].PersonalRating, importDefaultPersonalRating)
	}
	if shows[0].Recommendations != importDefaultRecommendations {
		t.Errorf("Recommendations = %d, want default %d", shows[0].Recommendations, importDefaultRecommendations)
	}
}

// A bad row is skipped; rows before AND after it still import. No rollback.
func TestImportCSV_PartialFailure(t *testing.T) {
	svc, repo := newTestShowService(t)

	csvData := importHeader +
		"Dune,MOVIE,Sci-Fi,2021-10-22,8,83,3,HBO_MAX\n" +
		"Broken,MOVIE,NOT_A_GENRE,2020-01-01,5,50,0,NETFLIX\n" +
		"Severance,TV,Sci-Fi,2022-02-18,9,97,5,APPLE_TV_PLUS\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}

	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("Failed = %v, want exactly one failure", result.Failed)
	}
	if result.Failed[0].Row != 2 || result.Failed[0].Title != "Broken" {
		t.Errorf("failure = %+v, want row 2 / title Broken", result.Failed[0])
	}
	if len(repo.shows) != 2 {
		t.Errorf("store holds %d shows, want 2", len(repo.shows))
	}
}

func TestImportCSV_MissingRequiredColumn(t *testing.T) {
	svc, _ := newTestShowService(t)

	csvData := "title,type,genres\nDune,MOVIE,SCIFI\n"
	if _, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData)); err == nil {
		t.Error("ImportCSV() should reject a CSV missing required columns")
	}
}

func TestImportCSV_BadDateIsPerRowFailure(t *testing.T) {
	svc, _ := newTestShowService(t)

	csvData := importHeader +
		"Dune,MOVIE,Sci-Fi,22/10/2021,8,83,3,HBO_MAX\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if result.Created != 0 || len(result.Failed) != 1 {
		t.Errorf("result = %+v, want 0 created and 1 failed", result)
	}
}
