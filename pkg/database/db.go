package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// CollectionName is the single physical collection shared by every
// entity shape; documents are told apart by their collectionType tag.
const CollectionName = "library"

type Config struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// DefaultConfig reads mongo settings from config.yaml and the
// LITTLELIBRARY_MONGO_* environment, falling back to a local instance.
func DefaultConfig() Config {
	v := viper.New()
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "littlelibrary")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("LITTLELIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.ReadInConfig() // optional file, env/defaults cover the rest

	return Config{
		URI:      v.GetString("mongo.uri"),
		Database: v.GetString("mongo.database"),
	}
}

func Open(ctx context.Context, cfg Config) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(cfg.Database), nil
}

func MustOpen(ctx context.Context, cfg Config) *mongo.Database {
	db, err := Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	return db
}
