package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mealprep/globals"
)

// DB is the MongoDB handle shared by the repositories.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect opens and pings a MongoDB connection.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	clientOptions := options.Client().ApplyURI(uri).SetConnectTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	return &DB{Client: client, Database: client.Database(database)}, nil
}

func (d *DB) Collection(name string) *mongo.Collection {
	return d.Database.Collection(name)
}

func (d *DB) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// Indexes lists the secondary indexes each collection needs.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		globals.WeeklyMenusCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isDeleted", Value: 1}, {Key: "generatedAt", Value: -1}, {Key: "_id", Value: -1}}},
		},
		globals.RecipesCollection: {
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "requiredIngredients.ingredientId", Value: 1}}},
		},
		globals.AccountsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		globals.IngredientCategoriesCollection: {
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "order", Value: 1}}},
		},
		globals.IngredientsCollection: {
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "categoryId", Value: 1}}},
		},
	}
}

// EnsureIndexes creates the indexes from Indexes. Existing indexes are left alone.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	for coll, models := range Indexes() {
		if _, err := d.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("db: create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// FindAndDecode runs a find and decodes every document into T.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
