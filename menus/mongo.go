package menus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mealprep/db"
	"mealprep/globals"
	"mealprep/models"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(d *db.DB) *MongoRepository {
	return &MongoRepository{coll: d.Collection(globals.WeeklyMenusCollection)}
}

func (m *MongoRepository) Insert(ctx context.Context, menu models.WeeklyMenu) error {
	if _, err := m.coll.InsertOne(ctx, menu); err != nil {
		return fmt.Errorf("menus: insert menu: %w", err)
	}
	return nil
}

func (m *MongoRepository) Get(ctx context.Context, id string) (*models.WeeklyMenu, error) {
	var menu models.WeeklyMenu
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&menu)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("menus: get menu %s: %w", id, err)
	}
	return &menu, nil
}

// listFilter selects the active menus of userID matching f and listed after
// the cursor.
func listFilter(userID string, f ListFilter, after *Cursor) bson.M {
	filter := bson.M{"userId": userID, "isDeleted": false}
	if f.FavoritesOnly {
		filter["userActions.isFavorite"] = true
	}
	if f.Ingredient != "" {
		filter["usedIngredients"] = f.Ingredient
	}
	if !f.Since.IsZero() {
		filter["generatedAt"] = bson.M{"$gte": f.Since}
	}
	if after != nil {
		// under $and so the since range on generatedAt is kept
		filter["$and"] = bson.A{bson.M{"$or": bson.A{
			bson.M{"generatedAt": bson.M{"$lt": after.GeneratedAt}},
			bson.M{"generatedAt": after.GeneratedAt, "_id": bson.M{"$lt": after.ID}},
		}}}
	}
	return filter
}

func (m *MongoRepository) ListActive(ctx context.Context, userID string, filter ListFilter, after *Cursor, limit int) ([]models.WeeklyMenu, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "generatedAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	menus, err := db.FindAndDecode[models.WeeklyMenu](ctx, m.coll, listFilter(userID, filter, after), opts)
	if err != nil {
		return nil, fmt.Errorf("menus: list menus: %w", err)
	}
	return menus, nil
}

func (m *MongoRepository) MarkDeleted(ctx context.Context, id string, at time.Time) error {
	res, err := m.coll.UpdateOne(ctx,
		bson.M{"_id": id, "isDeleted": false},
		bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("menus: delete menu %s: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	// Either already deleted or missing.
	n, err := m.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("menus: delete menu %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepository) MarkAllDeleted(ctx context.Context, userID string, at time.Time) (int, error) {
	res, err := m.coll.UpdateMany(ctx,
		bson.M{"userId": userID, "isDeleted": false},
		bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": at}},
	)
	if err != nil {
		return 0, fmt.Errorf("menus: delete menus of %s: %w", userID, err)
	}
	return int(res.ModifiedCount), nil
}

func (m *MongoRepository) update(ctx context.Context, filter, update bson.M, op string) error {
	res, err := m.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("menus: %s %v: %w", op, filter["_id"], err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	return m.update(ctx, bson.M{"_id": id, "isDeleted": false},
		bson.M{"$set": bson.M{"userActions.isFavorite": favorite}}, "set favorite")
}

func (m *MongoRepository) IncrementRegeneration(ctx context.Context, id string) error {
	return m.update(ctx, bson.M{"_id": id, "isDeleted": false},
		bson.M{"$inc": bson.M{"userActions.regenerationCount": 1}}, "increment regeneration")
}

func (m *MongoRepository) Touch(ctx context.Context, id string, at time.Time) error {
	return m.update(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"userActions.lastAccessedAt": at}}, "touch")
}
