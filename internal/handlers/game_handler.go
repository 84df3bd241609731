package handlers

import (
	"strconv"

	"github.com/PrashantBimalJha/studentlearning-app/internal/service"
	"github.com/PrashantBimalJha/studentlearning-app/internal/utils"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	Service *service.GameService
}

func NewGameHandler(s *service.GameService) *GameHandler {
	return &GameHandler{Service: s}
}

type recordRoundRequest struct {
	GameType       string `json:"game_type"`
	PlayerName     string `json:"player_name"`
	Result         string `json:"result"`
	CorrectCount   int    `json:"correct_count"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

func (h *GameHandler) RecordRound(c *gin.Context) {
	var req recordRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	event, err := h.Service.RecordRound(c.Request.Context(), ActorFrom(c), service.RecordRoundInput{
		GameType:       req.GameType,
		PlayerName:     req.PlayerName,
		Result:         req.Result,
		CorrectCount:   req.CorrectCount,
		ElapsedSeconds: req.ElapsedSeconds,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, "Round recorded", event)
}

func (h *GameHandler) Leaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	rows, err := h.Service.Leaderboard(c.Request.Context(), c.Param("game"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Leaderboard", rows)
}
