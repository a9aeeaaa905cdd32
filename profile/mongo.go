package profile

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
	users *mongo.Collection
}

func NewMongoRepository(d *db.DB) *MongoRepository {
	return &MongoRepository{users: d.Collection(globals.UsersCollection)}
}

func (m *MongoRepository) Create(ctx context.Context, user models.User) error {
	if _, err := m.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("profile: insert user %s: %w", user.UID, err)
	}
	return nil
}

func (m *MongoRepository) Get(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("profile: get user %s: %w", uid, err)
	}
	return &user, nil
}

// setFields maps the set fields of u to document paths.
func setFields(u models.ProfileUpdate, at time.Time) bson.M {
	set := bson.M{"updatedAt": at}
	if v, ok := u.DisplayName.Get(); ok {
		set["displayName"] = v
	}
	if v, ok := u.ProfileImageURL.Get(); ok {
		set["profileImageUrl"] = v
	}
	if v, ok := u.Allergies.Get(); ok {
		set["profile.allergies"] = nonNil(v)
	}
	if v, ok := u.DislikedIngredients.Get(); ok {
		set["profile.dislikedIngredients"] = nonNil(v)
	}
	if v, ok := u.LikedIngredients.Get(); ok {
		set["profile.likedIngredients"] = nonNil(v)
	}
	if v, ok := u.CookingTimePreference.Get(); ok {
		set["profile.cookingTimePreference"] = v
	}
	if v, ok := u.SpiceLevel.Get(); ok {
		set["profile.spiceLevel"] = v
	}
	if v, ok := u.CalorieTarget.Get(); ok {
		set["profile.calorieTarget"] = v
	}
	if v, ok := u.StorageDay.Get(); ok {
		set["profile.storageDay"] = v
	}
	if v, ok := u.Notifications.Get(); ok {
		set["notifications"] = v
	}
	return set
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (m *MongoRepository) Update(ctx context.Context, uid string, update models.ProfileUpdate, at time.Time) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := m.users.FindOneAndUpdate(ctx, bson.M{"_id": uid}, bson.M{"$set": setFields(update, at)}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("profile: update user %s: %w", uid, err)
	}
	return &user, nil
}
