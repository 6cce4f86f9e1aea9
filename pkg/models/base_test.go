package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewBaseObjectValidSlugs(t *testing.T) {
	valid := []string{
		"naruto",
		"one-piece",
		"A1-b2-C3",
		"X",
		"86",
		"my-hero-academia",
	}

	for _, slug := range valid {
		if _, err := NewBaseObject("Some Title", slug, "", CollectionManga, time.Time{}, "", time.Time{}); err != nil {
			t.Errorf("slug %q: unexpected error %v", slug, err)
		}
	}
}

func TestNewBaseObjectInvalidSlugs(t *testing.T) {
	cases := []struct {
		slug   string
		reason string
	}{
		{"", "empty slug"},
		{"   ", "empty slug"},
		{"-naruto", "invalid slug format"},
		{"naruto-", "invalid slug format"},
		{"one--piece", "invalid slug format"},
		{"one_piece", "invalid slug format"},
		{"one piece", "invalid slug format"},
		{"héllo", "invalid slug format"},
		{"one.piece", "invalid slug format"},
	}

	for _, tc := range cases {
		_, err := NewBaseObject("Some Title", tc.slug, "", CollectionManga, time.Time{}, "", time.Time{})
		if err == nil {
			t.Errorf("slug %q: expected error, got none", tc.slug)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("slug %q: expected *ValidationError, got %T", tc.slug, err)
			continue
		}
		if verr.Reason != tc.reason {
			t.Errorf("slug %q: reason = %q, want %q", tc.slug, verr.Reason, tc.reason)
		}
	}
}

func TestNewBaseObjectEmptyTitle(t *testing.T) {
	for _, title := range []string{"", "  ", "\t"} {
		_, err := NewBaseObject(title, "valid-slug", "", CollectionFilm, time.Time{}, "", time.Time{})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("title %q: expected *ValidationError, got %v", title, err)
		}
		if verr.Reason != "empty title" {
			t.Errorf("title %q: reason = %q, want %q", title, verr.Reason, "empty title")
		}
	}
}

func TestNewBaseObjectNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	local := time.Date(2024, 3, 1, 9, 0, 0, 0, loc)

	obj, err := NewBaseObject("Title", "title", "", CollectionBook, local, "", time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	if obj.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", obj.CreatedAt.Location())
	}
	if !obj.CreatedAt.Equal(local) {
		t.Errorf("CreatedAt = %v, should be the same instant as %v", obj.CreatedAt, local)
	}
	if got := obj.CreatedAt.Hour(); got != 0 {
		t.Errorf("CreatedAt hour = %d, want 0 (09:00 at UTC+9)", got)
	}
}

func TestNewBaseObjectDefaultsTimestamps(t *testing.T) {
	before := time.Now().UTC()
	obj, err := NewBaseObject("Title", "title", "", CollectionFilm, time.Time{}, "", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	after := time.Now().UTC()

	if obj.CreatedAt.Before(before) || obj.CreatedAt.After(after) {
		t.Errorf("CreatedAt = %v, want between %v and %v", obj.CreatedAt, before, after)
	}
	if obj.UpdatedAt.Before(before) || obj.UpdatedAt.After(after) {
		t.Errorf("UpdatedAt = %v, want between %v and %v", obj.UpdatedAt, before, after)
	}
}

func TestNewBaseObjectKeepsExplicitValues(t *testing.T) {
	created := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	obj, err := NewBaseObject("Title", "title", "covers/title.jpg", CollectionManga, created, "some-id", updated)
	if err != nil {
		t.Fatal(err)
	}

	if obj.ID != "some-id" {
		t.Errorf("ID = %q, want %q", obj.ID, "some-id")
	}
	if !obj.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", obj.CreatedAt, created)
	}
	if !obj.UpdatedAt.Equal(updated) {
		t.Errorf("UpdatedAt = %v, want %v", obj.UpdatedAt, updated)
	}
	if obj.ImagePath != "covers/title.jpg" {
		t.Errorf("ImagePath = %q", obj.ImagePath)
	}
}

func TestParseCollection(t *testing.T) {
	for _, s := range []string{"Film", "Manga", "LightNovel", "Book"} {
		ct, err := ParseCollection(s)
		if err != nil {
			t.Errorf("ParseCollection(%q): %v", s, err)
		}
		if string(ct) != s {
			t.Errorf("ParseCollection(%q) = %q", s, ct)
		}
	}
	if _, err := ParseCollection("Magazine"); err == nil {
		t.Error("ParseCollection(\"Magazine\"): expected error")
	}
}
