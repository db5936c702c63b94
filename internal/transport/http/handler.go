package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OWAISARSHED/LearnPak/internal/application/usecase"
	"github.com/OWAISARSHED/LearnPak/internal/middleware"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	auth         *usecase.AuthUseCase
	cookieSecure bool
}

func NewAuthHandler(auth *usecase.AuthUseCase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	s, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeSession(c, http.StatusCreated, s)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	s, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeSession(c, http.StatusOK, s)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
		return
	}

	s, err := h.auth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeSession(c, http.StatusOK, s)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil {
		c.Status(http.StatusOK)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, "", -1, "/", "", h.cookieSecure, true)
	if err := h.auth.Logout(c.Request.Context(), refreshToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.auth.Profile(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type profileReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	Password string `json:"password"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	s, err := h.auth.UpdateProfile(c.Request.Context(), middleware.Principal(c), usecase.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeSession(c, http.StatusOK, s)
}

type identityReq struct {
	IdentityDoc string `json:"identityDoc" binding:"required"`
}

func (h *AuthHandler) VerifyIdentity(c *gin.Context) {
	var req identityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.auth.UploadIdentity(c.Request.Context(), middleware.Principal(c), req.IdentityDoc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Identity document uploaded, verification pending",
		"user":    user,
	})
}

// writeSession puts the refresh token in an http-only, SameSite=Lax cookie and the
// rest in the body.
func (h *AuthHandler) writeSession(c *gin.Context, code int, s *usecase.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, s.RefreshToken, 7*24*3600, "/", "", h.cookieSecure, true)
	c.JSON(code, gin.H{
		"access_token": s.AccessToken,
		"user":         s.User,
	})
}
