package repository

import (
	"context"
	"errors"
	"time"

	"github.com/PrashantBimalJha/studentlearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CourseRepository struct {
	Col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{Col: db.Collection("courses")}
}

// SetRating upserts the derived rating keyed by course name. The course
// catalog lives elsewhere; the engine only maintains this one field.
func (r *CourseRepository) SetRating(ctx context.Context, course string, rating float64) error {
	filter := bson.M{"name": course}
	update := bson.M{
		"$set":         bson.M{"rating": rating},
		"$setOnInsert": bson.M{"name": course, "created_at": time.Now().UTC()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.Col.UpdateOne(ctx, filter, update, opts)
	return err
}

// UserRepository reads profile documents for leaderboard display names.
type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

func (r *UserRepository) DisplayName(ctx context.Context, email string) (string, error) {
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", models.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return user.Name, nil
}
