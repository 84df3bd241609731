package models

import "time"

const (
	GameTicTacToe  = "tictactoe"
	GameCrossword  = "crossword"
	GameWordSearch = "wordsearch"
)

// KnownGameType reports whether t is one of the supported mini-games.
func KnownGameType(t string) bool {
	switch t {
	case GameTicTacToe, GameCrossword, GameWordSearch:
		return true
	}
	return false
}

// GameScoreEvent is one completed game round. Events are append-only; the
// engine never updates or deletes them.
type GameScoreEvent struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	GameType       string    `bson:"game_type" json:"game_type"`
	StudentEmail   string    `bson:"student_email" json:"student_email"`
	PlayerName     string    `bson:"player_name" json:"player_name"`
	Score          float64   `bson:"score" json:"score"`
	Result         string    `bson:"result,omitempty" json:"result,omitempty"`
	CorrectCount   int       `bson:"correct_count" json:"correct_count"`
	ElapsedSeconds int       `bson:"elapsed_seconds" json:"elapsed_seconds"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// LeaderboardRow is a derived per-student summary for one game type.
// It is computed on demand and never persisted.
type LeaderboardRow struct {
	StudentEmail string  `bson:"_id" json:"student_email"`
	PlayerName   string  `bson:"player_name" json:"player_name"`
	TotalScore   float64 `bson:"total_score" json:"total_score"`
	Rounds       int     `bson:"rounds" json:"rounds"`
}
