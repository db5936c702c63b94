package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OWAISARSHED/LearnPak/internal/access"
	"github.com/OWAISARSHED/LearnPak/internal/application/usecase"
	"github.com/OWAISARSHED/LearnPak/internal/domain"
	"github.com/OWAISARSHED/LearnPak/internal/middleware"
)

type CourseHandler struct {
	courses *usecase.CourseUseCase
}

func NewCourseHandler(courses *usecase.CourseUseCase) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	list, err := h.courses.List(c.Request.Context(), middleware.Principal(c), access.CourseQuery{
		Keyword:    c.Query("keyword"),
		Language:   c.Query("language"),
		Instructor: c.Query("instructor"),
		Status:     c.Query("status"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/courses/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req usecase.CourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	course, err := h.courses.Create(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req usecase.CourseUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	course, err := h.courses.Update(c.Request.Context(), middleware.Principal(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/v1/courses/:id/status
func (h *CourseHandler) SetStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	course, err := h.courses.SetStatus(c.Request.Context(), middleware.Principal(c), id, domain.CourseStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// GET /api/v1/courses/instructor/stats
func (h *CourseHandler) InstructorStats(c *gin.Context) {
	stats, err := h.courses.InstructorStats(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
