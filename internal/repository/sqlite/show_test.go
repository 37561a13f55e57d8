package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aminah/showtrack/internal/apperror"
	"github.com/aminah/showtrack/internal/model"
)

// newTestDB opens an in-memory database that lives for one test.
// t.Cleanup closes it even if the test fails partway.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestShow(t *testing.T, db *DB, title string) *model.Show {
	t.Helper()
	show := &model.Show{
		Type:               model.TypeMovie,
		Title:              title,
		Genres:             []model.Genre{model.GenreSciFi},
		DateReleased:       model.DateOf(time.Date(2021, 10, 22, 0, 0, 0, 0, time.UTC)),
		PersonalRating:     9,
		RottenTomatoRating: 83,
		Recommendations:    4,
		WhereToWatch:       []model.Platform{model.PlatformNetflix},
	}
	if err := db.Create(context.Background(), show); err != nil {
		t.Fatalf("failed to create test show: %v", err)
	}
	return show
}

func TestShowCreate(t *testing.T) {
	db := newTestDB(t)

	show := createTestShow(t, db, "Dune")
	if show.ID == "" {
		t.Error("Create() did not assign an ID")
	}
}

func TestShowCreate_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	original := &model.Show{
		Type:               model.TypeTV,
		Title:              "Severance",
		Genres:             []model.Genre{model.GenreSciFi, model.GenreThriller},
		DateReleased:       model.DateOf(time.Date(2022, 2, 18, 0, 0, 0, 0, time.UTC)),
		PersonalRating:     9,
		RottenTomatoRating: 97,
		Recommendations:    5,
		WhereToWatch:       []model.Platform{model.PlatformAppleTVPlus},
	}
	if err := db.Create(ctx, original); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := db.GetByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Title != "Severance" || got.Type != model.TypeTV {
		t.Errorf("round trip lost scalar fields: %+v", got)
	}
	if len(got.Genres) != 2 || got.Genres[0] != model.GenreSciFi || got.Genres[1] != model.GenreThriller {
		t.Errorf("round trip lost genres: %v", got.Genres)
	}
	if len(got.WhereToWatch) != 1 || got.WhereToWatch[0] != model.PlatformAppleTVPlus {
		t.Errorf("round trip lost platforms: %v", got.WhereToWatch)
	}
	if got.DateReleased.String() != "2022-02-18" {
		t.Errorf("round trip changed the release date: %s", got.DateReleased)
	}
}

func TestShowGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), "no-such-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestShowGetByTitle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestShow(t, db, "Dune")
	createTestShow(t, db, "Dune") // remake, same title
	createTestShow(t, db, "Airplane!")

	got, err := db.GetByTitle(ctx, "Dune")
	if err != nil {
		t.Fatalf("GetByTitle() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("GetByTitle() returned %d shows, want 2", len(got))
	}

	// No match is an empty list at this layer, not an error.
	got, err = db.GetByTitle(ctx, "Alien")
	if err != nil {
		t.Fatalf("GetByTitle() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("GetByTitle() returned %d shows for unknown title, want 0", len(got))
	}
}

func TestShowList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestShow(t, db, "the wire")
	createTestShow(t, db, "Airplane!")
	createTestShow(t, db, "Dune")

	got, err := db.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List() returned %d shows, want 3", len(got))
	}
	// Ordered by title, case-insensitive.
	if got[0].Title != "Airplane!" || got[1].Title != "Dune" || got[2].Title != "the wire" {
		t.Errorf("List() order = %q, %q, %q", got[0].Title, got[1].Title, got[2].Title)
	}
}

func TestShowUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	show := createTestShow(t, db, "Dune")
	show.Title = "Dune: Part One"
	show.PersonalRating = 10
	show.WhereToWatch = []model.Platform{model.PlatformHBOMax, model.PlatformNetflix}

	if err := db.Update(ctx, show); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := db.GetByID(ctx, show.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Dune: Part One" || got.PersonalRating != 10 {
		t.Errorf("Update() did not persist: %+v", got)
	}
	if len(got.WhereToWatch) != 2 {
		t.Errorf("Update() did not persist platforms: %v", got.WhereToWatch)
	}
}

func TestShowUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Update(context.Background(), &model.Show{
		ID:    "no-such-id",
		Type:  model.TypeMovie,
		Title: "Ghost",
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestShowDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	show := createTestShow(t, db, "Dune")
	if err := db.Delete(ctx, show.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := db.GetByID(ctx, show.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("show still present after Delete()")
	}

	if err := db.Delete(ctx, show.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
