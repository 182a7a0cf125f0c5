package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/community"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

type shareStrategyRequest struct {
	Asset           string `json:"crypto" binding:"required"`
	Strategy        string `json:"strategy" binding:"required"`
	MarketCondition string `json:"market_condition"`
}

// ListCommunityStrategies godoc
// @Summary      List user-shared strategies
// @Tags         community
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/community [get]
func (h *Handler) ListCommunityStrategies(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.list-community")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"strategies": h.community.List()})
}

// ShareCommunityStrategy godoc
// @Summary      Share a strategy with the community
// @Tags         community
// @Accept       json
// @Produce      json
// @Param        strategy  body  shareStrategyRequest  true  "Strategy to share"
// @Success      201  {object}  domain.CommunityStrategy
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/community [post]
func (h *Handler) ShareCommunityStrategy(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.share-community")
	defer span.End()

	var req shareStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.community.Share(req.Asset, req.Strategy, domain.MarketCondition(req.MarketCondition))
	if err != nil {
		switch {
		case errors.Is(err, community.ErrInvalidStrategy):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, community.ErrDuplicateStrategy):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, record)
}
