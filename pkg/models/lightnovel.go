package models

import "time"

// LightNovel mirrors Manga except the volume is a free-form label:
// light novel runs use numbering like "7.5" or "Side Story 1".
type LightNovel struct {
	BaseObject  `bson:",inline"`
	Author      string     `bson:"author" json:"author"`
	Illustrator string     `bson:"illustrator,omitempty" json:"illustrator,omitempty"`
	Volume      string     `bson:"volume" json:"volume"`
	IsDigital   bool       `bson:"isDigital" json:"isDigital"`
	IsRead      bool       `bson:"isRead" json:"isRead"`
	PublishDate *time.Time `bson:"publishDate,omitempty" json:"publishDate,omitempty"`
}

func NewLightNovel(title, titleSlug, author, illustrator, volume, imagePath string, isDigital, isRead bool, publishDate *time.Time, id string) (*LightNovel, error) {
	base, err := NewBaseObject(title, titleSlug, imagePath, CollectionLightNovel, time.Time{}, id, time.Time{})
	if err != nil {
		return nil, err
	}
	return &LightNovel{
		BaseObject:  base,
		Author:      author,
		Illustrator: illustrator,
		Volume:      volume,
		IsDigital:   isDigital,
		IsRead:      isRead,
		PublishDate: publishDate,
	}, nil
}
