package handlers

import (
	"github.com/PrashantBimalJha/studentlearning-app/internal/service"
	"github.com/PrashantBimalJha/studentlearning-app/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Service *service.ReportService
}

func NewReportHandler(s *service.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

type createReportRequest struct {
	AssignmentID  string `json:"assignment_id"`
	QuestionIndex *int   `json:"question_index"`
	Reason        string `json:"reason"`
}

func (h *ReportHandler) Create(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	report, err := h.Service.Create(c.Request.Context(), ActorFrom(c), service.CreateReportInput{
		AssignmentID:  req.AssignmentID,
		QuestionIndex: req.QuestionIndex,
		Reason:        req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, "Report created", report)
}

func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.Service.List(c.Request.Context(), ActorFrom(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Reports", reports)
}

type resolveReportRequest struct {
	Score  *float64 `json:"score"`
	Rating *float64 `json:"rating"`
}

func (h *ReportHandler) Resolve(c *gin.Context) {
	var req resolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	report, err := h.Service.Resolve(c.Request.Context(), ActorFrom(c), c.Param("id"), service.ResolveInput{
		Score:  req.Score,
		Rating: req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Report resolved", report)
}
