package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OWAISARSHED/LearnPak/internal/application/usecase"
	"github.com/OWAISARSHED/LearnPak/internal/middleware"
)

// AdminHandler serves the admin console.
type AdminHandler struct {
	admin *usecase.AdminUseCase
}

func NewAdminHandler(admin *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) Instructors(c *gin.Context) {
	list, err := h.admin.Instructors(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) Users(c *gin.Context) {
	list, err := h.admin.Users(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) VerifyInstructor(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := h.admin.VerifyInstructor(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) ApproveInstructor(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := h.admin.ApproveInstructor(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.admin.DeleteUser(c.Request.Context(), middleware.Principal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User removed"})
}
