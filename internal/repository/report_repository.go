package repository

import (
	"context"
	"errors"
	"time"

	"github.com/PrashantBimalJha/studentlearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReportRepository struct {
	Col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{Col: db.Collection("reports")}
}

func (r *ReportRepository) Insert(ctx context.Context, report *models.Report) (string, error) {
	if report.ID == "" {
		report.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.Col.InsertOne(ctx, report); err != nil {
		return "", err
	}
	return report.ID, nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) Find(ctx context.Context, status string) ([]models.Report, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var reports []models.Report
	for cur.Next(ctx) {
		var report models.Report
		if err := cur.Decode(&report); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, cur.Err()
}

// Resolve flips an open report to resolved. The status guard guarantees a
// report resolves exactly once even under concurrent resolvers.
func (r *ReportRepository) Resolve(ctx context.Context, id string, at time.Time) error {
	filter := bson.M{"_id": id, "status": models.ReportStatusOpen}
	update := bson.M{"$set": bson.M{
		"status":      models.ReportStatusResolved,
		"resolved_at": at,
	}}
	res, err := r.Col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return models.ErrReportResolved
}
