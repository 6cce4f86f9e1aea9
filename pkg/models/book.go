package models

import "time"

// Book is a standalone (non-serialized) book. It has no volume field,
// so like Film it sits outside the title+volume uniqueness constraint.
type Book struct {
	BaseObject  `bson:",inline"`
	Author      string     `bson:"author" json:"author"`
	IsDigital   bool       `bson:"isDigital" json:"isDigital"`
	IsRead      bool       `bson:"isRead" json:"isRead"`
	PublishDate *time.Time `bson:"publishDate,omitempty" json:"publishDate,omitempty"`
}

func NewBook(title, titleSlug, author, imagePath string, isDigital, isRead bool, publishDate *time.Time, id string) (*Book, error) {
	base, err := NewBaseObject(title, titleSlug, imagePath, CollectionBook, time.Time{}, id, time.Time{})
	if err != nil {
		return nil, err
	}
	return &Book{
		BaseObject:  base,
		Author:      author,
		IsDigital:   isDigital,
		IsRead:      isRead,
		PublishDate: publishDate,
	}, nil
}
