package repository

import (
	"context"
	"errors"

	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
	"github.com/PrashantBimalJha/studentlearning-app/internal/service"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssignmentRepository struct {
	Col *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{Col: db.Collection("assignments")}
}

func (r *AssignmentRepository) Insert(ctx context.Context, a *models.Assignment) (string, error) {
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.Col.InsertOne(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	var a models.Assignment
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) Find(ctx context.Context, f service.AssignmentFilter) ([]models.Assignment, error) {
	filter := bson.M{}
	if f.Course != "" {
		filter["course"] = f.Course
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["assignment_type"] = f.Type
	}
	if f.Student != "" {
		// A student sees their own assignments plus unclaimed ones.
		filter["$or"] = bson.A{
			bson.M{"student_email": f.Student},
			bson.M{"student_email": ""},
		}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var assignments []models.Assignment
	for cur.Next(ctx) {
		var a models.Assignment
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, cur.Err()
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *AssignmentRepository) CountCompleted(ctx context.Context, student, course, assignmentType string) (int64, error) {
	filter := bson.M{
		"student_email": student,
		"status":        models.StatusCompleted,
	}
	if course != "" {
		filter["course"] = course
	}
	if assignmentType != "" {
		filter["assignment_type"] = assignmentType
	}
	return r.Col.CountDocuments(ctx, filter)
}

// Complete is the single conditional update behind the pending -> completed
// transition. The status guard makes concurrent submissions lose cleanly and
// the student guard binds unclaimed assignments to the first submitter.
func (r *AssignmentRepository) Complete(ctx context.Context, id, student string, c models.Completion) error {
	filter := bson.M{
		"_id":           id,
		"status":        models.StatusPending,
		"student_email": bson.M{"$in": bson.A{"", student}},
	}
	set := bson.M{
		"status":        models.StatusCompleted,
		"student_email": student,
		"score":         c.Score,
		"rating":        c.Rating,
		"feedback":      c.Feedback,
		"completed_at":  c.CompletedAt,
	}
	if c.NextDifficulty != 0 {
		set["next_difficulty_level"] = c.NextDifficulty
	}
	if c.StudentAnswer != "" {
		set["student_answer"] = c.StudentAnswer
	}
	if c.Results != nil {
		set["results"] = c.Results
	}
	res, err := r.Col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return r.completeConflict(ctx, id, student)
}

// completeConflict reloads the document to tell apart the three ways the
// guarded update can miss.
func (r *AssignmentRepository) completeConflict(ctx context.Context, id, student string) error {
	a, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Status == models.StatusCompleted {
		return models.ErrAlreadyCompleted
	}
	if a.StudentEmail != "" && a.StudentEmail != student {
		return models.ErrUnauthorized
	}
	return models.ErrNotFound
}

func (r *AssignmentRepository) ApplyOverride(ctx context.Context, id string, score, rating *float64) error {
	set := bson.M{}
	if score != nil {
		set["score"] = *score
	}
	if rating != nil {
		set["rating"] = *rating
	}
	if len(set) == 0 {
		return nil
	}
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *AssignmentRepository) ReplaceQuizResults(ctx context.Context, id string, results []models.QuestionResult, score, rating float64) error {
	update := bson.M{"$set": bson.M{
		"results": results,
		"score":   score,
		"rating":  rating,
	}}
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *AssignmentRepository) AverageRating(ctx context.Context, course string) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"course": course,
			"status": models.StatusCompleted,
			"rating": bson.M{"$ne": nil},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cur.Close(ctx)
	var row struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, 0, err
		}
	}
	return row.Avg, row.Count, cur.Err()
}
