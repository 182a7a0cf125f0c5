package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

// GetAssessment godoc
// @Summary      Assess market sentiment for an asset
// @Description  Aggregates fear/greed, volatility, on-chain activity, and social sentiment into one weighted score
// @Tags         market
// @Produce      json
// @Param        asset  path  string  true  "Asset symbol or name (e.g., BTC, ethereum)"
// @Success      200  {object}  domain.MarketAssessment
// @Failure      503  {object}  map[string]string
// @Router       /api/market/{asset} [get]
func (h *Handler) GetAssessment(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-assessment")
	defer span.End()

	asset := domain.CanonicalAsset(c.Param("asset"))
	span.SetAttributes(attribute.String("asset", asset))

	assessment, err := h.market.Assess(ctx, asset)
	if err != nil {
		if errors.Is(err, domain.ErrAllSourcesUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// GetAssessmentHistory godoc
// @Summary      List past assessments for an asset
// @Tags         market
// @Produce      json
// @Param        asset  path   string  true   "Asset symbol (e.g., BTC, ETH)"
// @Param        limit  query  int     false  "Max rows (default 20, max 200)"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/market/{asset}/history [get]
func (h *Handler) GetAssessmentHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-assessment-history")
	defer span.End()

	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assessment history requires a database"})
		return
	}

	asset := domain.CanonicalAsset(c.Param("asset"))
	span.SetAttributes(attribute.String("asset", asset))

	limit := 20
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	rows, err := h.history.History(ctx, asset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset, "assessments": rows})
}

// GetRecommendation godoc
// @Summary      Generate a DeFi/yield-farming strategy for an asset
// @Description  Assesses current market sentiment, then asks the LLM for a strategy matching the detected condition
// @Tags         market
// @Produce      json
// @Param        asset  path  string  true  "Asset symbol or name (e.g., BTC, ethereum)"
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/recommend/{asset} [get]
func (h *Handler) GetRecommendation(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-recommendation")
	defer span.End()

	asset := domain.CanonicalAsset(c.Param("asset"))
	span.SetAttributes(attribute.String("asset", asset))

	assessment, err := h.market.Assess(ctx, asset)
	if err != nil {
		if errors.Is(err, domain.ErrAllSourcesUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	strategy, err := h.advisor.Recommend(ctx, asset, assessment.Condition)
	if err != nil {
		status := http.StatusBadGateway
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) && genErr.StatusCode == http.StatusTooManyRequests {
			status = http.StatusTooManyRequests
		}
		c.JSON(status, gin.H{"error": err.Error(), "assessment": assessment})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"asset":      asset,
		"condition":  strings.ToLower(string(assessment.Condition)),
		"assessment": assessment,
		"strategy":   strategy,
	})
}
