package lightnovel

import (
	"context"
	"errors"
	"testing"

	"littlelibrary/internal/testutil"
	"littlelibrary/pkg/models"
)

func mustNovel(t *testing.T, title, slug, volume string) *models.LightNovel {
	t.Helper()
	n, err := models.NewLightNovel(title, slug, "Some Author", "", volume, "", false, false, nil, "")
	if err != nil {
		t.Fatalf("NewLightNovel(%q): %v", title, err)
	}
	return n
}

func TestLightNovelVolumeLabels(t *testing.T) {
	db := testutil.StartMongo(t)
	ctx := context.Background()
	repo := NewRepo(db)

	// Non-numeric labels are first-class volumes.
	for _, vol := range []string{"1", "7.5", "Side Story 1"} {
		if _, err := repo.Create(ctx, mustNovel(t, "Overlord", "overlord", vol)); err != nil {
			t.Fatalf("Create vol %q: %v", vol, err)
		}
	}

	got, err := repo.GetAllByTitle(ctx, "Overlord")
	if err != nil {
		t.Fatalf("GetAllByTitle: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("GetAllByTitle returned %d volumes, want 3", len(got))
	}

	if _, err := repo.Create(ctx, mustNovel(t, "Overlord", "overlord", "7.5")); !errors.Is(err, models.ErrDuplicate) {
		t.Errorf("duplicate label Create: err = %v, want ErrDuplicate", err)
	}
}

func TestLightNovelUpdateAndDelete(t *testing.T) {
	db := testutil.StartMongo(t)
	ctx := context.Background()
	repo := NewRepo(db)

	created, err := repo.Create(ctx, mustNovel(t, "Spice and Wolf", "spice-and-wolf", "1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated := mustNovel(t, "Spice and Wolf", "spice-and-wolf", "1")
	updated.Illustrator = "Jyuu Ayakura"
	updated.IsRead = true
	changed, err := repo.Update(ctx, created.ID, updated)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !changed {
		t.Error("Update reported no change after field edits")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Illustrator != "Jyuu Ayakura" || !got.IsRead {
		t.Errorf("update not applied: %+v", got)
	}

	ok, err := repo.Delete(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
}
