package models

import (
	"fmt"
	"time"
)

// VideoFormat is the physical (or digital) release format of a film.
type VideoFormat string

const (
	FormatDigital  VideoFormat = "Digital"
	FormatDvd      VideoFormat = "Dvd"
	FormatBluRay   VideoFormat = "BluRay"
	FormatBluRay4k VideoFormat = "BluRay4k"
	FormatVhs      VideoFormat = "Vhs"
)

func ParseVideoFormat(s string) (VideoFormat, error) {
	switch VideoFormat(s) {
	case FormatDigital, FormatDvd, FormatBluRay, FormatBluRay4k, FormatVhs:
		return VideoFormat(s), nil
	}
	return "", fmt.Errorf("unknown video format %q", s)
}

type Film struct {
	BaseObject  `bson:",inline"`
	Director    string      `bson:"director" json:"director"`
	Format      VideoFormat `bson:"format" json:"format"`
	IsWatched   bool        `bson:"isWatched" json:"isWatched"`
	ReleaseDate *time.Time  `bson:"releaseDate,omitempty" json:"releaseDate,omitempty"`
}

// NewFilm builds a film entry. The discriminator is fixed here; callers
// cannot file a film under another collection type.
func NewFilm(title, titleSlug, director, imagePath string, format VideoFormat, isWatched bool, releaseDate *time.Time, id string) (*Film, error) {
	base, err := NewBaseObject(title, titleSlug, imagePath, CollectionFilm, time.Time{}, id, time.Time{})
	if err != nil {
		return nil, err
	}
	return &Film{
		BaseObject:  base,
		Director:    director,
		Format:      format,
		IsWatched:   isWatched,
		ReleaseDate: releaseDate,
	}, nil
}
