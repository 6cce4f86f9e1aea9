package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Collection tags which concrete shape a stored document represents.
// Every document in the shared collection carries exactly one of these.
type Collection string

const (
	CollectionFilm       Collection = "Film"
	CollectionManga      Collection = "Manga"
	CollectionLightNovel Collection = "LightNovel"
	CollectionBook       Collection = "Book"
)

func ParseCollection(s string) (Collection, error) {
	switch Collection(s) {
	case CollectionFilm, CollectionManga, CollectionLightNovel, CollectionBook:
		return Collection(s), nil
	}
	return "", fmt.Errorf("unknown collection type %q", s)
}

// titleSlug: letters/digits with single hyphens between segments.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`)

// BaseObject is the envelope shared by every catalogued item, whatever
// its concrete shape. Variants embed it inline so the envelope fields
// flatten into the same document as the variant fields.
type BaseObject struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	Title          string     `bson:"title" json:"title"`
	TitleSlug      string     `bson:"titleSlug" json:"titleSlug"`
	ImagePath      string     `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	CollectionType Collection `bson:"collectionType" json:"collectionType"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// NewBaseObject validates and builds the shared envelope.
//
// createdAt is normalized to UTC; a zero createdAt or updatedAt means "now".
// An empty id is left empty so the repository assigns one on create.
func NewBaseObject(title, titleSlug, imagePath string, collectionType Collection, createdAt time.Time, id string, updatedAt time.Time) (BaseObject, error) {
	if strings.TrimSpace(title) == "" {
		return BaseObject{}, &ValidationError{Field: "title", Reason: "empty title"}
	}
	if strings.TrimSpace(titleSlug) == "" {
		return BaseObject{}, &ValidationError{Field: "titleSlug", Reason: "empty slug"}
	}
	if !slugPattern.MatchString(titleSlug) {
		return BaseObject{}, &ValidationError{Field: "titleSlug", Reason: "invalid slug format"}
	}

	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	return BaseObject{
		ID:             id,
		Title:          title,
		TitleSlug:      titleSlug,
		ImagePath:      imagePath,
		CollectionType: collectionType,
		CreatedAt:      createdAt.UTC(),
		UpdatedAt:      updatedAt.UTC(),
	}, nil
}
