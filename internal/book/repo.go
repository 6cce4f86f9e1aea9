package book

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"littlelibrary/pkg/database"
	"littlelibrary/pkg/models"
)

// Repo stores and queries standalone books in the shared collection,
// scoped to the Book discriminator. Books carry no volume field, so
// the title+volume uniqueness constraint never applies to them.
type Repo struct {
	col *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(database.CollectionName)}
}

func scoped(extra ...bson.E) bson.D {
	filter := bson.D{{Key: "collectionType", Value: models.CollectionBook}}
	return append(filter, extra...)
}

func (r *Repo) Create(ctx context.Context, b *models.Book) (*models.Book, error) {
	if b.ID == "" {
		b.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

func (r *Repo) GetAll(ctx context.Context) ([]models.Book, error) {
	return r.find(ctx, "get all books", scoped(), nil)
}

func (r *Repo) GetAllByTitle(ctx context.Context, title string) ([]models.Book, error) {
	opts := options.Find().SetCollation(database.CaseInsensitive())
	return r.find(ctx, "get books by title", scoped(bson.E{Key: "title", Value: title}), opts)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Book, error) {
	return r.findOne(ctx, "get book by id", scoped(bson.E{Key: "_id", Value: id}), nil)
}

func (r *Repo) GetByTitle(ctx context.Context, title string) (*models.Book, error) {
	opts := options.FindOne().SetCollation(database.CaseInsensitive())
	return r.findOne(ctx, "get book by title", scoped(bson.E{Key: "title", Value: title}), opts)
}

func (r *Repo) GetRead(ctx context.Context) ([]models.Book, error) {
	return r.find(ctx, "get read books", scoped(bson.E{Key: "isRead", Value: true}), nil)
}

func (r *Repo) GetUnread(ctx context.Context) ([]models.Book, error) {
	return r.find(ctx, "get unread books", scoped(bson.E{Key: "isRead", Value: false}), nil)
}

// SearchByTitle does a case-insensitive prefix match on title; an
// empty query lists everything.
func (r *Repo) SearchByTitle(ctx context.Context, query string) ([]models.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.GetAll(ctx)
	}
	filter := append(database.TitlePrefixFilter(query),
		bson.E{Key: "collectionType", Value: models.CollectionBook})
	opts := options.Find().SetCollation(database.CaseInsensitive())
	return r.find(ctx, "search books by title", filter, opts)
}

// Update overwrites every mutable field of the matched document.
// ErrNotFound when no book has the id; the bool reports whether any
// stored value actually changed.
func (r *Repo) Update(ctx context.Context, id string, b *models.Book) (bool, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: b.Title},
		{Key: "titleSlug", Value: b.TitleSlug},
		{Key: "author", Value: b.Author},
		{Key: "imagePath", Value: b.ImagePath},
		{Key: "isDigital", Value: b.IsDigital},
		{Key: "isRead", Value: b.IsRead},
		{Key: "publishDate", Value: b.PublishDate},
		{Key: "updatedAt", Value: b.UpdatedAt},
	}}}

	res, err := r.col.UpdateOne(ctx, scoped(bson.E{Key: "_id", Value: id}), update)
	if err != nil {
		return false, fmt.Errorf("update book %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return false, fmt.Errorf("update book %s: %w", id, models.ErrNotFound)
	}
	return res.ModifiedCount > 0, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, scoped(bson.E{Key: "_id", Value: id}))
	if err != nil {
		return false, fmt.Errorf("delete book %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *Repo) find(ctx context.Context, op string, filter bson.D, opts *options.FindOptions) ([]models.Book, error) {
	var (
		cur *mongo.Cursor
		err error
	)
	if opts != nil {
		cur, err = r.col.Find(ctx, filter, opts)
	} else {
		cur, err = r.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]models.Book, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (r *Repo) findOne(ctx context.Context, op string, filter bson.D, opts *options.FindOneOptions) (*models.Book, error) {
	var res *mongo.SingleResult
	if opts != nil {
		res = r.col.FindOne(ctx, filter, opts)
	} else {
		res = r.col.FindOne(ctx, filter)
	}

	var b models.Book
	if err := res.Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}
