package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	StartTelegramBot(nil, nil, nil, "ETH")
}

func TestResolveDefaultAsset(t *testing.T) {
	if got := resolveDefaultAsset("solana"); got != "SOL" {
		t.Fatalf("expected SOL, got %q", got)
	}
	if got := resolveDefaultAsset("btc"); got != "BTC" {
		t.Fatalf("expected BTC, got %q", got)
	}
	if got := resolveDefaultAsset(""); got != "ETH" {
		t.Fatalf("expected ETH fallback, got %q", got)
	}
}

func TestArgOrDefault(t *testing.T) {
	if got := argOrDefault(nil, "ETH"); got != "ETH" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := argOrDefault([]string{"bitcoin"}, "ETH"); got != "BTC" {
		t.Fatalf("expected canonical BTC, got %q", got)
	}
}

func TestFormatAssessment(t *testing.T) {
	a := domain.MarketAssessment{
		Asset:        "ETH",
		OverallScore: 0.62,
		Condition:    domain.ConditionBullish,
		Readings: []domain.SignalReading{
			{Source: domain.SourceFearGreed, RawValue: 70, Detail: "Greed", Status: domain.ReadingOk},
			{Source: domain.SourceVolatility, RawValue: 25, Status: domain.ReadingOk, Stale: true},
			{Source: domain.SourceSocialSentiment, Status: domain.ReadingUnavailable},
		},
		AssessedAt: time.Now().UTC(),
	}

	got := formatAssessment(a)
	if !strings.Contains(got, "ETH market: bullish (score 0.62)") {
		t.Fatalf("missing header: %s", got)
	}
	if !strings.Contains(got, "fear_greed: 70.00 (Greed)") {
		t.Fatalf("missing fear/greed line: %s", got)
	}
	if !strings.Contains(got, "[stale]") {
		t.Fatalf("missing stale marker: %s", got)
	}
	if !strings.Contains(got, "social_sentiment: unavailable") {
		t.Fatalf("missing unavailable line: %s", got)
	}
}
