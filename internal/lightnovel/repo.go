package lightnovel

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

// Repo stores and queries light-novel volumes in the shared
// collection, scoped to the LightNovel discriminator. The string
// volume label shares the "volume" field (and the title+volume
// uniqueness constraint) with manga's integer volumes.
type Repo struct {
	col *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(database.CollectionName)}
}

func scoped(extra ...bson.E) bson.D {
	filter := bson.D{{Key: "collectionType", Value: models.CollectionLightNovel}}
	return append(filter, extra...)
}

func (r *Repo) Create(ctx context.Context, n *models.LightNovel) (*models.LightNovel, error) {
	if n.ID == "" {
		n.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, n); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("insert light novel %q vol %q: %w", n.Title, n.Volume, models.ErrDuplicate)
		}
		return nil, fmt.Errorf("insert light novel: %w", err)
	}
	return n, nil
}

func (r *Repo) GetAll(ctx context.Context) ([]models.LightNovel, error) {
	return r.find(ctx, "get all light novels", scoped(), nil)
}

func (r *Repo) GetAllByTitle(ctx context.Context, title string) ([]models.LightNovel, error) {
	opts := options.Find().
		SetCollation(database.CaseInsensitive()).
		SetSort(bson.D{{Key: "volume", Value: 1}})
	return r.find(ctx, "get light novels by title", scoped(bson.E{Key: "title", Value: title}), opts)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.LightNovel, error) {
	return r.findOne(ctx, "get light novel by id", scoped(bson.E{Key: "_id", Value: id}), nil)
}

func (r *Repo) GetByTitle(ctx context.Context, title string) (*models.LightNovel, error) {
	opts := options.FindOne().SetCollation(database.CaseInsensitive())
	return r.findOne(ctx, "get light novel by title", scoped(bson.E{Key: "title", Value: title}), opts)
}

func (r *Repo) GetRead(ctx context.Context) ([]models.LightNovel, error) {
	return r.find(ctx, "get read light novels", scoped(bson.E{Key: "isRead", Value: true}), nil)
}

func (r *Repo) GetUnread(ctx context.Context) ([]models.LightNovel, error) {
	return r.find(ctx, "get unread light novels", scoped(bson.E{Key: "isRead", Value: false}), nil)
}

// SearchByTitle does a case-insensitive prefix match on title; an
// empty query lists everything.
func (r *Repo) SearchByTitle(ctx context.Context, query string) ([]models.LightNovel, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.GetAll(ctx)
	}
	filter := append(database.TitlePrefixFilter(query),
		bson.E{Key: "collectionType", Value: models.CollectionLightNovel})
	opts := options.Find().SetCollation(database.CaseInsensitive())
	return r.find(ctx, "search light novels by title", filter, opts)
}

// Update overwrites every mutable field of the matched document.
// ErrNotFound when no light novel has the id; the bool reports whether
// any stored value actually changed.
func (r *Repo) Update(ctx context.Context, id string, n *models.LightNovel) (bool, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: n.Title},
		{Key: "titleSlug", Value: n.TitleSlug},
		{Key: "author", Value: n.Author},
		{Key: "illustrator", Value: n.Illustrator},
		{Key: "volume", Value: n.Volume},
		{Key: "imagePath", Value: n.ImagePath},
		{Key: "isDigital", Value: n.IsDigital},
		{Key: "isRead", Value: n.IsRead},
		{Key: "publishDate", Value: n.PublishDate},
		{Key: "updatedAt", Value: n.UpdatedAt},
	}}}

	res, err := r.col.UpdateOne(ctx, scoped(bson.E{Key: "_id", Value: id}), update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, fmt.Errorf("update light novel %s: %w", id, models.ErrDuplicate)
		}
		return false, fmt.Errorf("update light novel %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return false, fmt.Errorf("update light novel %s: %w", id, models.ErrNotFound)
	}
	return res.ModifiedCount > 0, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, scoped(bson.E{Key: "_id", Value: id}))
	if err != nil {
		return false, fmt.Errorf("delete light novel %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *Repo) find(ctx context.Context, op string, filter bson.D, opts *options.FindOptions) ([]models.LightNovel, error) {
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
	out := make([]models.LightNovel, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (r *Repo) findOne(ctx context.Context, op string, filter bson.D, opts *options.FindOneOptions) (*models.LightNovel, error) {
	var res *mongo.SingleResult
	if opts != nil {
		res = r.col.FindOne(ctx, filter, opts)
	} else {
		res = r.col.FindOne(ctx, filter)
	}

	var n models.LightNovel
	if err := res.Decode(&n); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &n, nil
}
