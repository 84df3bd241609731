package handlers

import (
	"strconv"

	"github.com/PrashantBimalJha/studentlearning-app/internal/service"
	"github.com/PrashantBimalJha/studentlearning-app/internal/utils"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

type generateQuizRequest struct {
	Course string `json:"course"`
	Topic  string `json:"topic"`
	Title  string `json:"title"`
}

func (h *QuizHandler) Generate(c *gin.Context) {
	var req generateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	quiz, err := h.Service.Generate(c.Request.Context(), ActorFrom(c), service.GenerateQuizInput{
		Course: req.Course,
		Topic:  req.Topic,
		Title:  req.Title,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, "Quiz generated", quiz)
}

type submitQuizRequest struct {
	// Answers maps question index to chosen option index. Entries with a
	// non-numeric key are ignored and count as unanswered.
	Answers map[string]*int `json:"answers"`
}

func (h *QuizHandler) Submit(c *gin.Context) {
	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	answers := make(map[int]*int, len(req.Answers))
	for key, choice := range req.Answers {
		idx, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		answers[idx] = choice
	}
	result, err := h.Service.Submit(c.Request.Context(), ActorFrom(c), c.Param("id"), answers)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Quiz graded", result)
}
