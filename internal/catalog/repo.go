package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"littlelibrary/pkg/database"
	"littlelibrary/pkg/models"
)

// DefaultRecentCount is the page size of "recently added" views.
const DefaultRecentCount = 8

// Repo is the cross-type read path. It hydrates only the envelope
// fields through an explicit projection: a single result set mixes
// films, manga, light novels and books, so decoding any variant shape
// here would fail on the others. Absent optional fields come back as
// zero values.
type Repo struct {
	col *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(database.CollectionName)}
}

func envelopeProjection() bson.D {
	return bson.D{
		{Key: "_id", Value: 1},
		{Key: "title", Value: 1},
		{Key: "titleSlug", Value: 1},
		{Key: "imagePath", Value: 1},
		{Key: "collectionType", Value: 1},
		{Key: "createdAt", Value: 1},
		{Key: "updatedAt", Value: 1},
	}
}

// GetMostRecent returns the count most recently added items of any
// type, newest first. count <= 0 means DefaultRecentCount.
func (r *Repo) GetMostRecent(ctx context.Context, count int) ([]models.BaseObject, error) {
	return r.recent(ctx, bson.D{}, count)
}

// GetMostRecentByType is GetMostRecent restricted to one discriminator.
func (r *Repo) GetMostRecentByType(ctx context.Context, collectionType models.Collection, count int) ([]models.BaseObject, error) {
	return r.recent(ctx, bson.D{{Key: "collectionType", Value: collectionType}}, count)
}

func (r *Repo) recent(ctx context.Context, filter bson.D, count int) ([]models.BaseObject, error) {
	if count <= 0 {
		count = DefaultRecentCount
	}
	opts := options.Find().
		SetProjection(envelopeProjection()).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(count))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("get most recent: %w", err)
	}
	out := make([]models.BaseObject, 0, count)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("get most recent: %w", err)
	}
	return out, nil
}

func (r *Repo) GetAll(ctx context.Context) ([]models.BaseObject, error) {
	opts := options.Find().SetProjection(envelopeProjection())
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("get all catalog entries: %w", err)
	}
	out := make([]models.BaseObject, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("get all catalog entries: %w", err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.BaseObject, error) {
	opts := options.FindOne().SetProjection(envelopeProjection())
	res := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}, opts)

	var obj models.BaseObject
	if err := res.Decode(&obj); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog entry by id: %w", err)
	}
	return &obj, nil
}
