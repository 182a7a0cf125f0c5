package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/advisor"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/bot"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/cache"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/community"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/config"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/db"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/handler"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/job"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/market"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/provider"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/repository"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/pkg/tracing"

	_ "github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/docs"
)

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	initPostgresFunc = db.InitPostgres
	initRedisFunc    = cache.InitRedis
	initTracerFunc   = tracing.InitTracer
	newLLMClientFunc = advisor.NewOpenAIClient
	startPollerFunc  = func(p *job.AssessmentPoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc = func(market bot.Assessor, adv bot.Recommender, prices bot.PriceReader, defaultAsset string) {
		bot.StartTelegramBot(market, adv, prices, defaultAsset)
	}
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Crypto DeFi Yield Farming Agent API
// @version         1.0
// @description     Market sentiment aggregation and DeFi strategy generation service.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis; both are optional.
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	initPostgresFunc(ctx)
	if cfg.RedisURL != "" {
		os.Setenv("REDIS_URL", cfg.RedisURL)
		initRedisFunc(ctx)
	}

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Signal cache: Redis keeps warm readings across restarts, otherwise
	// fall back to the in-process cache.
	var signalCache cache.SignalCache = cache.NewMemoryCache()
	if cache.Client != nil {
		signalCache = cache.NewRedisCache(cache.Client)
	}

	// Sentiment sources
	fetchTimeout := time.Duration(cfg.FetchTimeoutSecs) * time.Second
	fearGreed := provider.NewFearGreedProvider(tracer, fetchTimeout)
	vix := provider.NewVIXProvider(tracer, fetchTimeout)
	santiment := provider.NewSantimentProvider(tracer, cfg.SantimentAPIKey, fetchTimeout)
	reddit := provider.NewRedditProvider(tracer, fetchTimeout)
	altSeason := provider.NewAltcoinSeasonProvider(tracer, fetchTimeout)
	coinGecko := provider.NewCoinGeckoProvider(tracer, fetchTimeout)

	marketService := market.NewService(tracer, signalCache, fearGreed, vix, santiment, reddit, altSeason, market.Config{
		Subreddit:       cfg.RedditSubreddit,
		RedditPostLimit: cfg.RedditPostLimit,
		CacheTTL:        time.Duration(cfg.SignalCacheTTLSecs) * time.Second,
	})

	// LLM-backed strategy advisor
	var llm advisor.LLMClient
	if cfg.LLMAPIKey != "" {
		llm = newLLMClientFunc(cfg.LLMAPIKey, cfg.LLMBaseURL)
	}
	advisorService := advisor.NewService(tracer, llm, cfg.LLMModel)

	// Community strategy file
	communityStore := community.NewStore(cfg.CommunityFile)

	// Assessment history needs Postgres; everything else runs without it.
	var history handler.HistoryReader
	var sink job.AssessmentSink
	if db.Pool != nil {
		repo := repository.NewAssessmentRepository(db.Pool, tracer)
		if err := repo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		history = repo
		sink = repo
	}

	// Background assessment poller keeps the cache warm and fills history.
	poller := job.NewAssessmentPoller(tracer, marketService, sink, cfg.AssessPollSecs, cfg.RetentionDays)
	startPollerFunc(poller, ctx)

	// Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(marketService, advisorService, coinGecko, cfg.DefaultAsset)

	// HTTP API
	h := handler.New(tracer, marketService, advisorService, communityStore, coinGecko, history)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("defi-yield-agent"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
