package manga

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

// Repo stores and queries manga volumes in the shared collection.
// Every filter carries the Manga discriminator; callers cannot reach
// documents of another shape through it.
type Repo struct {
	col *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(database.CollectionName)}
}

func scoped(extra ...bson.E) bson.D {
	filter := bson.D{{Key: "collectionType", Value: models.CollectionManga}}
	return append(filter, extra...)
}

func (r *Repo) Create(ctx context.Context, m *models.Manga) (*models.Manga, error) {
	if m.ID == "" {
		m.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("insert manga %q vol %d: %w", m.Title, m.Volume, models.ErrDuplicate)
		}
		return nil, fmt.Errorf("insert manga: %w", err)
	}
	return m, nil
}

func (r *Repo) GetAll(ctx context.Context) ([]models.Manga, error) {
	return r.find(ctx, "get all manga", scoped(), nil)
}

func (r *Repo) GetAllByTitle(ctx context.Context, title string) ([]models.Manga, error) {
	opts := options.Find().
		SetCollation(database.CaseInsensitive()).
		SetSort(bson.D{{Key: "volume", Value: 1}})
	return r.find(ctx, "get manga by title", scoped(bson.E{Key: "title", Value: title}), opts)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Manga, error) {
	return r.findOne(ctx, "get manga by id", scoped(bson.E{Key: "_id", Value: id}), nil)
}

func (r *Repo) GetByTitle(ctx context.Context, title string) (*models.Manga, error) {
	opts := options.FindOne().SetCollation(database.CaseInsensitive())
	return r.findOne(ctx, "get manga by title", scoped(bson.E{Key: "title", Value: title}), opts)
}

func (r *Repo) GetRead(ctx context.Context) ([]models.Manga, error) {
	return r.find(ctx, "get read manga", scoped(bson.E{Key: "isRead", Value: true}), nil)
}

func (r *Repo) GetUnread(ctx context.Context) ([]models.Manga, error) {
	return r.find(ctx, "get unread manga", scoped(bson.E{Key: "isRead", Value: false}), nil)
}

// SearchByTitle does a case-insensitive prefix match on title: the
// half-open range plus the collation rides idx_title_ci. "lin" finds
// "Linked" but not "Skyline". An empty query lists everything.
func (r *Repo) SearchByTitle(ctx context.Context, query string) ([]models.Manga, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.GetAll(ctx)
	}
	filter := append(database.TitlePrefixFilter(query),
		bson.E{Key: "collectionType", Value: models.CollectionManga})
	opts := options.Find().SetCollation(database.CaseInsensitive())
	return r.find(ctx, "search manga by title", filter, opts)
}

// Update overwrites every mutable field of the matched document.
// It returns ErrNotFound when no manga has the id, and reports whether
// any stored value actually changed.
func (r *Repo) Update(ctx context.Context, id string, m *models.Manga) (bool, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: m.Title},
		{Key: "titleSlug", Value: m.TitleSlug},
		{Key: "author", Value: m.Author},
		{Key: "illustrator", Value: m.Illustrator},
		{Key: "volume", Value: m.Volume},
		{Key: "imagePath", Value: m.ImagePath},
		{Key: "isDigital", Value: m.IsDigital},
		{Key: "isRead", Value: m.IsRead},
		{Key: "publishDate", Value: m.PublishDate},
		{Key: "updatedAt", Value: m.UpdatedAt},
	}}}

	res, err := r.col.UpdateOne(ctx, scoped(bson.E{Key: "_id", Value: id}), update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, fmt.Errorf("update manga %s: %w", id, models.ErrDuplicate)
		}
		return false, fmt.Errorf("update manga %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return false, fmt.Errorf("update manga %s: %w", id, models.ErrNotFound)
	}
	return res.ModifiedCount > 0, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, scoped(bson.E{Key: "_id", Value: id}))
	if err != nil {
		return false, fmt.Errorf("delete manga %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *Repo) find(ctx context.Context, op string, filter bson.D, opts *options.FindOptions) ([]models.Manga, error) {
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
	out := make([]models.Manga, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (r *Repo) findOne(ctx context.Context, op string, filter bson.D, opts *options.FindOneOptions) (*models.Manga, error) {
	var res *mongo.SingleResult
	if opts != nil {
		res = r.col.FindOne(ctx, filter, opts)
	} else {
		res = r.col.FindOne(ctx, filter)
	}

	var m models.Manga
	if err := res.Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}
