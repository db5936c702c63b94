package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/OWAISARSHED/LearnPak/internal/application/usecase"
	"github.com/OWAISARSHED/LearnPak/internal/middleware"
)

type EnrollmentHandler struct {
	enrollments *usecase.EnrollmentUseCase
}

func NewEnrollmentHandler(enrollments *usecase.EnrollmentUseCase) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type enrollReq struct {
	CourseID string `json:"courseId" binding:"required,uuid"`
}

// POST /api/v1/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req enrollReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	e, err := h.enrollments.Enroll(c.Request.Context(), middleware.Principal(c), uuid.MustParse(req.CourseID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// GET /api/v1/enrollments
func (h *EnrollmentHandler) Mine(c *gin.Context) {
	list, err := h.enrollments.MyEnrollments(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type progressReq struct {
	LessonID string `json:"lessonId"`
}

// PUT /api/v1/enrollments/:id/progress
func (h *EnrollmentHandler) CompleteLesson(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	e, err := h.enrollments.MarkLessonComplete(c.Request.Context(), middleware.Principal(c), id, req.LessonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

type emotionReq struct {
	CourseID string `json:"courseId"`
	LessonID string `json:"lessonId"`
	Emotion  string `json:"emotion"`
	Note     string `json:"note"`
}

// POST /api/v1/enrollments/emotion
func (h *EnrollmentHandler) LogEmotion(c *gin.Context) {
	var req emotionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	entry, err := h.enrollments.LogEmotion(c.Request.Context(), middleware.Principal(c), usecase.EmotionInput{
		CourseID: req.CourseID,
		LessonID: req.LessonID,
		Emotion:  req.Emotion,
		Note:     req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
