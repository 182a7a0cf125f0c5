package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

// GetPrice godoc
// @Summary      Get current price for a crypto asset
// @Description  Tracked symbols come from the cached batch; anything else resolves through its CoinGecko slug
// @Tags         prices
// @Produce      json
// @Param        symbol  path  string  true  "Asset symbol or CoinGecko slug (e.g., BTC, ethereum)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/prices/{symbol} [get]
func (h *Handler) GetPrice(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-price")
	defer span.End()

	symbol := domain.CanonicalAsset(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	if _, ok := domain.CoinGeckoID[symbol]; ok {
		snapshots, err := h.prices.FetchPrices(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if snapshot, ok := snapshots[symbol]; ok {
			c.JSON(http.StatusOK, snapshot)
			return
		}
	}

	price, err := h.prices.FetchPriceBySlug(ctx, strings.ToLower(symbol))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no price for " + symbol})
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "price_usd": price})
}

// GetAllPrices godoc
// @Summary      Get current prices for all tracked assets
// @Tags         prices
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/prices [get]
func (h *Handler) GetAllPrices(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-all-prices")
	defer span.End()

	snapshots, err := h.prices.FetchPrices(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"prices": snapshots})
}
