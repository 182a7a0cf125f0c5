package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string
	APIKey           string

	SantimentAPIKey string

	RedditSubreddit string
	RedditPostLimit int

	SignalCacheTTLSecs int
	FetchTimeoutSecs   int
	AssessPollSecs     int
	RetentionDays      int
	DefaultAsset       string

	LLMAPIKey     string
	LLMModel      string
	LLMBaseURL    string
	CommunityFile string
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		APIKey:           os.Getenv("API_KEY"),
		SantimentAPIKey:  os.Getenv("SANTIMENT_API_KEY"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, assessment history disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, using in-process signal cache")
	}
	if cfg.SantimentAPIKey == "" {
		log.Println("Warning: SANTIMENT_API_KEY not set, on-chain activity source will be unavailable")
	}

	cfg.RedditSubreddit = strings.TrimSpace(os.Getenv("REDDIT_SUBREDDIT"))
	if cfg.RedditSubreddit == "" {
		cfg.RedditSubreddit = "cryptocurrency"
	}

	cfg.RedditPostLimit = 10
	if v := strings.TrimSpace(os.Getenv("REDDIT_POST_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RedditPostLimit = n
		}
	}

	cfg.SignalCacheTTLSecs = 3600
	if v := strings.TrimSpace(os.Getenv("SIGNAL_CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SignalCacheTTLSecs = n
		}
	}

	cfg.FetchTimeoutSecs = 10
	if v := strings.TrimSpace(os.Getenv("FETCH_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeoutSecs = n
		}
	}

	cfg.AssessPollSecs = 900
	if v := strings.TrimSpace(os.Getenv("ASSESS_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AssessPollSecs = n
		}
	}

	// 0 keeps assessment history forever.
	cfg.RetentionDays = 90
	if v := strings.TrimSpace(os.Getenv("ASSESSMENT_RETENTION_DAYS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetentionDays = n
		}
	}

	cfg.DefaultAsset = strings.ToUpper(strings.TrimSpace(os.Getenv("DEFAULT_ASSET")))
	if cfg.DefaultAsset == "" {
		cfg.DefaultAsset = "ETH"
	}

	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("DEEPSEEK_API_KEY")
	}
	if cfg.LLMAPIKey == "" {
		log.Println("Warning: LLM_API_KEY not set, strategy generation will be disabled")
	}

	cfg.LLMModel = strings.TrimSpace(os.Getenv("LLM_MODEL"))
	if cfg.LLMModel == "" {
		cfg.LLMModel = "deepseek-chat"
	}

	cfg.LLMBaseURL = strings.TrimSpace(os.Getenv("LLM_BASE_URL"))
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = "https://api.deepseek.com"
	}

	cfg.CommunityFile = strings.TrimSpace(os.Getenv("COMMUNITY_FILE"))
	if cfg.CommunityFile == "" {
		cfg.CommunityFile = "community/community_strategies.json"
	}

	return cfg
}
