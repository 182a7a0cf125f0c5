package provider

import (
	"net/http"
	"time"
)

// Several sources are scraped web pages, not documented APIs; they reject
// requests without a realistic browser User-Agent outright.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

const defaultFetchTimeout = 10 * time.Second

// newFetchClient builds the bounded-timeout client every source uses.
// Non-positive timeouts fall back to the default.
func newFetchClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &http.Client{Timeout: timeout}
}

// FearGreedPoint is the latest crypto Fear & Greed Index reading (0-100).
type FearGreedPoint struct {
	Value          int
	Classification string
	Timestamp      time.Time
}

// VIXQuote is a scraped CBOE Volatility Index quote with its band analysis.
type VIXQuote struct {
	Value         float64
	Change        float64
	ChangePercent float64
	Analysis      string
}

// RedditPost is one subreddit post with the top-level comments fetched for
// sentiment scoring.
type RedditPost struct {
	ID       string
	Title    string
	Score    float64
	Comments []string
}

// AltcoinSeasonPoint is the scraped Altcoin Season Index (0-100) and the
// season it implies. Value > 75 means altcoins dominate.
type AltcoinSeasonPoint struct {
	Value  int
	Season string
}
