package film

import (
	"context"
	"errors"
	"testing"

	"littlelibrary/internal/manga"
	"littlelibrary/internal/testutil"
	"littlelibrary/pkg/models"
)

func mustFilm(t *testing.T, title, slug, director string) *models.Film {
	t.Helper()
	f, err := models.NewFilm(title, slug, director, "", models.FormatBluRay, false, nil, "")
	if err != nil {
		t.Fatalf("NewFilm(%q): %v", title, err)
	}
	return f
}

func TestFilmCRUD(t *testing.T) {
	db := testutil.StartMongo(t)
	ctx := context.Background()
	repo := NewRepo(db)

	f := mustFilm(t, "Seven Samurai", "seven-samurai", "Akira Kurosawa")
	created, err := repo.Create(ctx, f)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create did not assign an id")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for existing film")
	}
	if got.Director != "Akira Kurosawa" || got.Format != models.FormatBluRay {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	updated := mustFilm(t, "Seven Samurai", "seven-samurai", "Akira Kurosawa")
	updated.IsWatched = true
	updated.Format = models.FormatBluRay4k
	changed, err := repo.Update(ctx, created.ID, updated)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !changed {
		t.Error("Update reported no change after field edits")
	}

	got, err = repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if !got.IsWatched || got.Format != models.FormatBluRay4k {
		t.Errorf("update not applied: %+v", got)
	}

	ok, err := repo.Delete(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if got, _ := repo.GetByID(ctx, created.ID); got != nil {
		t.Error("GetByID returned a deleted film")
	}
}

func TestFilmDiscriminatorScoping(t *testing.T) {
	db := testutil.StartMongo(t)
	ctx := context.Background()
	filmRepo := NewRepo(db)
	mangaRepo := manga.NewRepo(db)

	if _, err := filmRepo.Create(ctx, mustFilm(t, "Naruto", "naruto-film", "Hayato Date")); err != nil {
		t.Fatalf("Create film: %v", err)
	}
	m, err := models.NewManga("Naruto", "naruto", "Masashi Kishimoto", "", 1, "", false, false, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mangaRepo.Create(ctx, m); err != nil {
		t.Fatalf("Create manga: %v", err)
	}

	gotFilm, err := filmRepo.GetByTitle(ctx, "Naruto")
	if err != nil {
		t.Fatalf("film GetByTitle: %v", err)
	}
	if gotFilm == nil || gotFilm.CollectionType != models.CollectionFilm {
		t.Errorf("film GetByTitle = %+v, want a Film", gotFilm)
	}

	gotManga, err := mangaRepo.GetByTitle(ctx, "Naruto")
	if err != nil {
		t.Fatalf("manga GetByTitle: %v", err)
	}
	if gotManga == nil || gotManga.CollectionType != models.CollectionManga {
		t.Errorf("manga GetByTitle = %+v, want a Manga", gotManga)
	}

	films, err := filmRepo.GetAllByTitle(ctx, "Naruto")
	if err != nil {
		t.Fatalf("film GetAllByTitle: %v", err)
	}
	if len(films) != 1 {
		t.Errorf("film GetAllByTitle returned %d items, want 1", len(films))
	}
}

func TestFilmsShareTitlesFreely(t *testing.T) {
	db := testutil.StartMongo(t)
	ctx := context.Background()
	repo := NewRepo(db)

	// No volume field, so the title+volume constraint never applies:
	// several cuts of the same film can coexist.
	if _, err := repo.Create(ctx, mustFilm(t, "Blade Runner", "blade-runner", "Ridley Scott")); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := repo.Create(ctx, mustFilm(t, "Blade Runner", "blade-runner-final-cut", "Ridley Scott")); err != nil {
		t.Errorf("second Create with shared title: %v", err)
	}
}

func TestFilmDuplicateID(t *testing.T) {
	db := testutil.StartMongo(t)
	ctx := context.Background()
	repo := NewRepo(db)

	first, err := repo.Create(ctx, mustFilm(t, "Stalker", "stalker", "Andrei Tarkovsky"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	clash := mustFilm(t, "Solaris", "solaris", "Andrei Tarkovsky")
	clash.ID = first.ID
	if _, err := repo.Create(ctx, clash); !errors.Is(err, models.ErrDuplicate) {
		t.Errorf("Create with reused id: err = %v, want ErrDuplicate", err)
	}
}

func TestFilmDirectorQueries(t *testing.T) {
	db := testutil.StartMongo(t)
	ctx := context.Background()
	repo := NewRepo(db)

	for _, f := range []*models.Film{
		mustFilm(t, "Seven Samurai", "seven-samurai", "Akira Kurosawa"),
		mustFilm(t, "Ran", "ran", "Akira Kurosawa"),
		mustFilm(t, "Spirited Away", "spirited-away", "Hayao Miyazaki"),
	} {
		if _, err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create %q: %v", f.Title, err)
		}
	}

	exact, err := repo.GetByDirector(ctx, "Akira Kurosawa")
	if err != nil {
		t.Fatalf("GetByDirector: %v", err)
	}
	if len(exact) != 2 {
		t.Errorf("GetByDirector returned %d films, want 2", len(exact))
	}

	// Substring, any case, anywhere in the name.
	sub, err := repo.SearchByDirector(ctx, "kurosawa")
	if err != nil {
		t.Fatalf("SearchByDirector: %v", err)
	}
	if len(sub) != 2 {
		t.Errorf("SearchByDirector(\"kurosawa\") returned %d films, want 2", len(sub))
	}
}

func TestFilmWatchedAndFormatQueries(t *testing.T) {
	db := testutil.StartMongo(t)
	ctx := context.Background()
	repo := NewRepo(db)

	watched := mustFilm(t, "Ikiru", "ikiru", "Akira Kurosawa")
	watched.IsWatched = true
	watched.Format = models.FormatDvd
	unwatched := mustFilm(t, "High and Low", "high-and-low", "Akira Kurosawa")

	for _, f := range []*models.Film{watched, unwatched} {
		if _, err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create %q: %v", f.Title, err)
		}
	}

	got, err := repo.GetWatched(ctx)
	if err != nil {
		t.Fatalf("GetWatched: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Ikiru" {
		t.Errorf("GetWatched = %+v", got)
	}

	got, err = repo.GetUnwatched(ctx)
	if err != nil {
		t.Fatalf("GetUnwatched: %v", err)
	}
	if len(got) != 1 || got[0].Title != "High and Low" {
		t.Errorf("GetUnwatched = %+v", got)
	}

	got, err = repo.GetByFormat(ctx, models.FormatDvd)
	if err != nil {
		t.Fatalf("GetByFormat: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Ikiru" {
		t.Errorf("GetByFormat(Dvd) = %+v", got)
	}
}
