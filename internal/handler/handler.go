package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

// Assessor produces market assessments.
type Assessor interface {
	Assess(ctx context.Context, asset string) (domain.MarketAssessment, error)
}

// Recommender turns an assessment into a strategy.
type Recommender interface {
	Recommend(ctx context.Context, asset string, condition domain.MarketCondition) (string, error)
}

// CommunityStore exposes the shared strategy file.
type CommunityStore interface {
	List() []domain.CommunityStrategy
	Share(asset, strategy string, condition domain.MarketCondition) (domain.CommunityStrategy, error)
}

// PriceReader serves spot prices.
type PriceReader interface {
	FetchPrices(ctx context.Context) (map[string]*domain.PriceSnapshot, error)
	FetchPriceBySlug(ctx context.Context, slug string) (float64, error)
}

// HistoryReader lists persisted assessments. Nil when Postgres is not
// configured.
type HistoryReader interface {
	History(ctx context.Context, asset string, limit int) ([]domain.MarketAssessment, error)
}

type Handler struct {
	tracer    trace.Tracer
	market    Assessor
	advisor   Recommender
	community CommunityStore
	prices    PriceReader
	history   HistoryReader
}

func New(
	tracer trace.Tracer,
	market Assessor,
	advisor Recommender,
	community CommunityStore,
	prices PriceReader,
	history HistoryReader,
) *Handler {
	return &Handler{
		tracer:    tracer,
		market:    market,
		advisor:   advisor,
		community: community,
		prices:    prices,
		history:   history,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/market/:asset", h.GetAssessment)
	api.GET("/market/:asset/history", h.GetAssessmentHistory)
	api.GET("/recommend/:asset", h.GetRecommendation)
	api.GET("/community", h.ListCommunityStrategies)
	api.POST("/community", h.ShareCommunityStrategy)
	api.GET("/prices", h.GetAllPrices)
	api.GET("/prices/:symbol", h.GetPrice)
}
