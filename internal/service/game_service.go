package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PrashantBimalJha/studentlearning-app/internal/access"
	"github.com/PrashantBimalJha/studentlearning-app/internal/games"
	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
)

// DefaultLeaderboardSize is how many rows a leaderboard query returns when
// the caller does not specify a limit.
const DefaultLeaderboardSize = 5

// GameService records mini-game rounds and serves per-game leaderboards.
type GameService struct {
	store     GameScoreStore
	users     UserStore
	publisher Publisher
}

func NewGameService(store GameScoreStore, users UserStore, publisher Publisher) *GameService {
	return &GameService{store: store, users: users, publisher: publisher}
}

// RecordRoundInput describes one finished round. Result is only meaningful
// for tic-tac-toe; CorrectCount and ElapsedSeconds drive puzzle scoring.
type RecordRoundInput struct {
	GameType       string
	PlayerName     string
	Result         string
	CorrectCount   int
	ElapsedSeconds int
}

// RecordRound scores a round server-side and appends the event. Scores are
// never taken from the client.
func (s *GameService) RecordRound(ctx context.Context, actor access.Actor, in RecordRoundInput) (*models.GameScoreEvent, error) {
	gameType := strings.ToLower(strings.TrimSpace(in.GameType))
	if !models.KnownGameType(gameType) {
		return nil, fmt.Errorf("%w: unknown game type %q", models.ErrValidation, in.GameType)
	}

	// Score from the same normalized result that gets persisted.
	result := strings.ToLower(strings.TrimSpace(in.Result))
	var score float64
	if gameType == models.GameTicTacToe {
		score = games.TicTacToeScore(result)
	} else {
		score = games.PuzzleScore(in.CorrectCount, in.ElapsedSeconds)
	}

	name := strings.TrimSpace(in.PlayerName)
	if name == "" {
		name = actor.Name
	}
	ev := &models.GameScoreEvent{
		GameType:       gameType,
		StudentEmail:   actor.Email,
		PlayerName:     name,
		Score:          score,
		Result:         result,
		CorrectCount:   in.CorrectCount,
		ElapsedSeconds: in.ElapsedSeconds,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to record round: %w", err)
	}
	if s.publisher != nil {
		if err := s.publisher.Publish("game.round_recorded", ev); err != nil {
			log.Printf("Warning: failed to publish game.round_recorded event: %v", err)
		}
	}
	return ev, nil
}

// Leaderboard returns the top n students by total score for one game. Rows
// missing a player name fall back to the profile display name and then to
// the local part of the email.
func (s *GameService) Leaderboard(ctx context.Context, gameType string, n int) ([]models.LeaderboardRow, error) {
	gameType = strings.ToLower(strings.TrimSpace(gameType))
	if !models.KnownGameType(gameType) {
		return nil, fmt.Errorf("%w: unknown game type %q", models.ErrValidation, gameType)
	}
	if n <= 0 {
		n = DefaultLeaderboardSize
	}
	rows, err := s.store.TopTotals(ctx, gameType, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	for i := range rows {
		if rows[i].PlayerName != "" {
			continue
		}
		if s.users != nil {
			if name, err := s.users.DisplayName(ctx, rows[i].StudentEmail); err == nil && name != "" {
				rows[i].PlayerName = name
				continue
			}
		}
		rows[i].PlayerName = emailLocalPart(rows[i].StudentEmail)
	}
	return rows, nil
}

func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
