package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CaseInsensitive is the collation every title comparison runs under:
// strength 2 ignores case but keeps accents significant. The locale
// must be a real ICU locale; "simple" means binary comparison and the
// server rejects it alongside any other collation field.
func CaseInsensitive() *options.Collation {
	return &options.Collation{Locale: "en", Strength: 2}
}

// TitlePrefixFilter matches titles starting with prefix as a half-open
// range scan, so with CaseInsensitive it rides the title index instead
// of a collection scan. Callers AND in their own discriminator.
func TitlePrefixFilter(prefix string) bson.D {
	return bson.D{{Key: "title", Value: bson.D{
		{Key: "$gte", Value: prefix},
		{Key: "$lt", Value: prefix + "\U0010FFFF"},
	}}}
}

// EnsureIndexes declares the durable index set the repositories assume
// exists. It is idempotent and must run before traffic: a failure here
// (say, existing data violating ux_title_volume) is a data-integrity
// problem that would otherwise resurface as confusing duplicate-key
// errors on ordinary creates.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(CollectionName)

	specs := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "title", Value: 1}},
			Options: options.Index().
				SetName("idx_title_ci").
				SetCollation(CaseInsensitive()),
		},
		{
			Keys:    bson.D{{Key: "titleSlug", Value: 1}},
			Options: options.Index().SetName("idx_title_slug"),
		},
		{
			Keys:    bson.D{{Key: "collectionType", Value: 1}},
			Options: options.Index().SetName("idx_collection_type"),
		},
		{
			// One owned copy per (title, volume). The partial filter keeps
			// volume-less shapes (films, books) out of the constraint; a
			// sparse compound index would still admit them through title.
			Keys: bson.D{{Key: "title", Value: 1}, {Key: "volume", Value: 1}},
			Options: options.Index().
				SetName("ux_title_volume").
				SetUnique(true).
				SetCollation(CaseInsensitive()).
				SetPartialFilterExpression(bson.D{
					{Key: "volume", Value: bson.D{{Key: "$exists", Value: true}}},
				}),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, specs); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}
