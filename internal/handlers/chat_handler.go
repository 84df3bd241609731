package handlers

import (
	"github.com/PrashantBimalJha/studentlearning-app/internal/service"
	"github.com/PrashantBimalJha/studentlearning-app/internal/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	Service *service.TutorService
}

func NewChatHandler(s *service.TutorService) *ChatHandler {
	return &ChatHandler{Service: s}
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *ChatHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	reply, err := h.Service.Ask(c.Request.Context(), ActorFrom(c), req.Question)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Tutor reply", reply)
}

func (h *ChatHandler) Reset(c *gin.Context) {
	h.Service.Reset(ActorFrom(c))
	utils.SuccessResponse(c, "Conversation cleared", nil)
}
