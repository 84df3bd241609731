package repository

import (
	"context"

	"github.com/PrashantBimalJha/studentlearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type GameScoreRepository struct {
	Col *mongo.Collection
}

func NewGameScoreRepository(db *mongo.Database) *GameScoreRepository {
	return &GameScoreRepository{Col: db.Collection("game_scores")}
}

func (r *GameScoreRepository) Insert(ctx context.Context, ev *models.GameScoreEvent) error {
	if ev.ID == "" {
		ev.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, ev)
	return err
}

// TopTotals sums scores per student for one game type. Ties break toward
// the student whose first round came earlier; ids are time-ordered so the
// minimum id stands in for first appearance.
func (r *GameScoreRepository) TopTotals(ctx context.Context, gameType string, n int) ([]models.LeaderboardRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"game_type": gameType}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$student_email",
			"total_score": bson.M{"$sum": "$score"},
			"rounds":      bson.M{"$sum": 1},
			"player_name": bson.M{"$last": "$player_name"},
			"first_seen":  bson.M{"$min": "$_id"},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "total_score", Value: -1},
			{Key: "first_seen", Value: 1},
		}}},
		{{Key: "$limit", Value: n}},
	}
	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var rows []models.LeaderboardRow
	for cur.Next(ctx) {
		var row models.LeaderboardRow
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, cur.Err()
}
