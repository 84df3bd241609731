package handlers

import (
	"time"

	"github.com/PrashantBimalJha/studentlearning-app/internal/access"
	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
	"github.com/PrashantBimalJha/studentlearning-app/internal/service"
	"github.com/PrashantBimalJha/studentlearning-app/internal/utils"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	Service *service.AssignmentService
}

func NewAssignmentHandler(s *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{Service: s}
}

type createAssignmentRequest struct {
	Title           string     `json:"title"`
	Course          string     `json:"course"`
	Question        string     `json:"question"`
	ExpectedAnswer  string     `json:"expected_answer"`
	StudentEmail    string     `json:"student_email"`
	Points          int        `json:"points"`
	DifficultyLevel int        `json:"difficulty_level"`
	DueDate         *time.Time `json:"due_date"`
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	a, err := h.Service.Create(c.Request.Context(), ActorFrom(c), service.CreateAssignmentInput{
		Title:           req.Title,
		Course:          req.Course,
		Question:        req.Question,
		ExpectedAnswer:  req.ExpectedAnswer,
		StudentEmail:    req.StudentEmail,
		Points:          req.Points,
		DifficultyLevel: req.DifficultyLevel,
		DueDate:         req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, "Assignment created", sanitizeAssignment(ActorFrom(c), a))
}

func (h *AssignmentHandler) List(c *gin.Context) {
	actor := ActorFrom(c)
	filter := service.AssignmentFilter{
		Course:  c.Query("course"),
		Status:  c.Query("status"),
		Student: c.Query("student"),
		Type:    c.Query("type"),
	}
	items, err := h.Service.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]interface{}, 0, len(items))
	for i := range items {
		views = append(views, sanitizeAssignment(actor, &items[i]))
	}
	utils.SuccessResponse(c, "Assignments", views)
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	a, err := h.Service.Get(c.Request.Context(), ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Assignment", sanitizeAssignment(ActorFrom(c), a))
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), ActorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Assignment deleted", nil)
}

type submitTextRequest struct {
	Answer string `json:"answer"`
}

func (h *AssignmentHandler) SubmitText(c *gin.Context) {
	var req submitTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	grade, a, err := h.Service.SubmitText(c.Request.Context(), ActorFrom(c), c.Param("id"), req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Assignment graded", gin.H{
		"assignment":      sanitizeAssignment(ActorFrom(c), a),
		"score":           grade.Score,
		"rating":          grade.Rating,
		"feedback":        grade.Feedback,
		"next_difficulty": grade.NextDifficulty,
		"fallback_used":   grade.FallbackUsed,
	})
}

// assignmentView shadows the question set so pending quizzes never leak
// their answer key over the API.
type assignmentView struct {
	*models.Assignment
	QuestionSet []service.QuizQuestionView `json:"question_set,omitempty"`
}

// sanitizeAssignment strips grading material from pending assignments: quiz
// correct indices always, and the expected answer of a text assignment unless
// the viewer manages it. The expected answer is the text counterpart of the
// quiz answer key.
func sanitizeAssignment(actor access.Actor, a *models.Assignment) interface{} {
	if a.Status != models.StatusPending {
		return a
	}
	if !a.IsQuiz() {
		if access.Allows(actor, access.ManageAssignment, a) {
			return a
		}
		redacted := *a
		redacted.ExpectedAnswer = ""
		return &redacted
	}
	questions := make([]service.QuizQuestionView, 0, len(a.QuestionSet))
	for _, q := range a.QuestionSet {
		questions = append(questions, service.QuizQuestionView{
			Question: q.Question,
			Options:  q.Options,
		})
	}
	return assignmentView{Assignment: a, QuestionSet: questions}
}
