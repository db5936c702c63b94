package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OWAISARSHED/LearnPak/internal/application/usecase"
	"github.com/OWAISARSHED/LearnPak/internal/domain"
	"github.com/OWAISARSHED/LearnPak/internal/middleware"
)

type PayoutHandler struct {
	payouts *usecase.PayoutUseCase
}

func NewPayoutHandler(payouts *usecase.PayoutUseCase) *PayoutHandler {
	return &PayoutHandler{payouts: payouts}
}

type payoutReq struct {
	Amount float64 `json:"amount" binding:"required"`
}

// POST /api/v1/payouts
func (h *PayoutHandler) Request(c *gin.Context) {
	var req payoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.payouts.Request(c.Request.Context(), middleware.Principal(c), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/v1/payouts/my
func (h *PayoutHandler) Mine(c *gin.Context) {
	list, err := h.payouts.Mine(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/payouts
func (h *PayoutHandler) All(c *gin.Context) {
	list, err := h.payouts.All(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /api/v1/payouts/:id
func (h *PayoutHandler) Resolve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.payouts.Resolve(c.Request.Context(), middleware.Principal(c), id, domain.PayoutStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
