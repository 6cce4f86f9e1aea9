package film

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"littlelibrary/pkg/database"
	"littlelibrary/pkg/models"
)

// Repo stores and queries films in the shared collection, scoped to
// the Film discriminator.
type Repo struct {
	col *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(database.CollectionName)}
}

func scoped(extra ...bson.E) bson.D {
	filter := bson.D{{Key: "collectionType", Value: models.CollectionFilm}}
	return append(filter, extra...)
}

func (r *Repo) Create(ctx context.Context, f *models.Film) (*models.Film, error) {
	if f.ID == "" {
		f.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, f); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("insert film %q: %w", f.Title, models.ErrDuplicate)
		}
		return nil, fmt.Errorf("insert film: %w", err)
	}
	return f, nil
}

func (r *Repo) GetAll(ctx context.Context) ([]models.Film, error) {
	return r.find(ctx, "get all films", scoped(), nil)
}

func (r *Repo) GetAllByTitle(ctx context.Context, title string) ([]models.Film, error) {
	opts := options.Find().SetCollation(database.CaseInsensitive())
	return r.find(ctx, "get films by title", scoped(bson.E{Key: "title", Value: title}), opts)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Film, error) {
	return r.findOne(ctx, "get film by id", scoped(bson.E{Key: "_id", Value: id}), nil)
}

func (r *Repo) GetByTitle(ctx context.Context, title string) (*models.Film, error) {
	opts := options.FindOne().SetCollation(database.CaseInsensitive())
	return r.findOne(ctx, "get film by title", scoped(bson.E{Key: "title", Value: title}), opts)
}

func (r *Repo) GetByDirector(ctx context.Context, director string) ([]models.Film, error) {
	return r.find(ctx, "get films by director", scoped(bson.E{Key: "director", Value: director}), nil)
}

// SearchByDirector is a case-insensitive substring match. Unlike title
// search this deliberately does not use prefix semantics: directors are
// looked up by partial surname ("kurosawa" in "Akira Kurosawa"), the
// film subset is small, and director carries no index to ride anyway.
func (r *Repo) SearchByDirector(ctx context.Context, query string) ([]models.Film, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(query)), Options: "i"}
	return r.find(ctx, "search films by director", scoped(bson.E{Key: "director", Value: pattern}), nil)
}

func (r *Repo) GetWatched(ctx context.Context) ([]models.Film, error) {
	return r.find(ctx, "get watched films", scoped(bson.E{Key: "isWatched", Value: true}), nil)
}

func (r *Repo) GetUnwatched(ctx context.Context) ([]models.Film, error) {
	return r.find(ctx, "get unwatched films", scoped(bson.E{Key: "isWatched", Value: false}), nil)
}

func (r *Repo) GetByFormat(ctx context.Context, format models.VideoFormat) ([]models.Film, error) {
	return r.find(ctx, "get films by format", scoped(bson.E{Key: "format", Value: format}), nil)
}

// SearchByTitle does a case-insensitive prefix match on title; an
// empty query lists everything.
func (r *Repo) SearchByTitle(ctx context.Context, query string) ([]models.Film, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.GetAll(ctx)
	}
	filter := append(database.TitlePrefixFilter(query),
		bson.E{Key: "collectionType", Value: models.CollectionFilm})
	opts := options.Find().SetCollation(database.CaseInsensitive())
	return r.find(ctx, "search films by title", filter, opts)
}

// Update overwrites every mutable field of the matched document.
// ErrNotFound when no film has the id; the bool reports whether any
// stored value actually changed.
func (r *Repo) Update(ctx context.Context, id string, f *models.Film) (bool, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: f.Title},
		{Key: "titleSlug", Value: f.TitleSlug},
		{Key: "director", Value: f.Director},
		{Key: "format", Value: f.Format},
		{Key: "isWatched", Value: f.IsWatched},
		{Key: "releaseDate", Value: f.ReleaseDate},
		{Key: "imagePath", Value: f.ImagePath},
		{Key: "updatedAt", Value: f.UpdatedAt},
	}}}

	res, err := r.col.UpdateOne(ctx, scoped(bson.E{Key: "_id", Value: id}), update)
	if err != nil {
		return false, fmt.Errorf("update film %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return false, fmt.Errorf("update film %s: %w", id, models.ErrNotFound)
	}
	return res.ModifiedCount > 0, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, scoped(bson.E{Key: "_id", Value: id}))
	if err != nil {
		return false, fmt.Errorf("delete film %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *Repo) find(ctx context.Context, op string, filter bson.D, opts *options.FindOptions) ([]models.Film, error) {
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
	out := make([]models.Film, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (r *Repo) findOne(ctx context.Context, op string, filter bson.D, opts *options.FindOneOptions) (*models.Film, error) {
	var res *mongo.SingleResult
	if opts != nil {
		res = r.col.FindOne(ctx, filter, opts)
	} else {
		res = r.col.FindOne(ctx, filter)
	}

	var f models.Film
	if err := res.Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &f, nil
}
