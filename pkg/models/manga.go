package models

import "time"

// Manga is a single owned manga volume. All volumes sharing a title form
// an implicit series; there is no separate series document.
type Manga struct {
	BaseObject  `bson:",inline"`
	Author      string     `bson:"author" json:"author"`
	Illustrator string     `bson:"illustrator,omitempty" json:"illustrator,omitempty"`
	Volume      int        `bson:"volume" json:"volume"`
	IsDigital   bool       `bson:"isDigital" json:"isDigital"`
	IsRead      bool       `bson:"isRead" json:"isRead"`
	PublishDate *time.Time `bson:"publishDate,omitempty" json:"publishDate,omitempty"`
}

func NewManga(title, titleSlug, author, illustrator string, volume int, imagePath string, isDigital, isRead bool, publishDate *time.Time, id string) (*Manga, error) {
	base, err := NewBaseObject(title, titleSlug, imagePath, CollectionManga, time.Time{}, id, time.Time{})
	if err != nil {
		return nil, err
	}
	return &Manga{
		BaseObject:  base,
		Author:      author,
		Illustrator: illustrator,
		Volume:      volume,
		IsDigital:   isDigital,
		IsRead:      isRead,
		PublishDate: publishDate,
	}, nil
}
