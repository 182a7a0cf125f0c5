package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

type Assessor interface {
	Assess(ctx context.Context, asset string) (domain.MarketAssessment, error)
}

type Recommender interface {
	Recommend(ctx context.Context, asset string, condition domain.MarketCondition) (string, error)
}

type PriceReader interface {
	FetchPrices(ctx context.Context) (map[string]*domain.PriceSnapshot, error)
}

func StartTelegramBot(market Assessor, advisor Recommender, prices PriceReader, defaultAsset string) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	defaultAsset = resolveDefaultAsset(defaultAsset)
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/market", func(c tele.Context) error {
		asset := argOrDefault(c.Args(), defaultAsset)
		assessment, err := market.Assess(context.Background(), asset)
		if err != nil {
			return c.Send(fmt.Sprintf("Could not assess %s: %v", asset, err))
		}
		return c.Send(formatAssessment(assessment))
	})

	b.Handle("/strategy", func(c tele.Context) error {
		asset := argOrDefault(c.Args(), defaultAsset)
		assessment, err := market.Assess(context.Background(), asset)
		if err != nil {
			return c.Send(fmt.Sprintf("Could not assess %s: %v", asset, err))
		}
		strategy, err := advisor.Recommend(context.Background(), asset, assessment.Condition)
		if err != nil {
			return c.Send(fmt.Sprintf("Could not generate a strategy for %s: %v", asset, err))
		}
		return c.Send(fmt.Sprintf("%s is %s (score %.2f)\n\n%s",
			assessment.Asset, assessment.Condition, assessment.OverallScore, strategy))
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /price BTC\nSupported: %s", strings.Join(domain.SupportedSymbols, ", ")))
		}
		symbol := domain.CanonicalAsset(args[0])
		if _, ok := domain.CoinGeckoID[symbol]; !ok {
			return c.Send(fmt.Sprintf("Unknown symbol: %s\nSupported: %s", symbol, strings.Join(domain.SupportedSymbols, ", ")))
		}
		snapshots, err := prices.FetchPrices(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching price for %s: %v", symbol, err))
		}
		snapshot, ok := snapshots[symbol]
		if !ok {
			return c.Send(fmt.Sprintf("No price data for %s", symbol))
		}
		return c.Send(fmt.Sprintf(
			"%s\nPrice: $%.2f\n24h Change: %.2f%%\n24h Volume: $%.0f",
			symbol, snapshot.PriceUSD, snapshot.Change24hPct, snapshot.Volume24h,
		))
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func resolveDefaultAsset(asset string) string {
	asset = domain.CanonicalAsset(asset)
	if asset == "" {
		asset = "ETH"
	}
	return asset
}

func argOrDefault(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}
	return domain.CanonicalAsset(args[0])
}

func formatAssessment(a domain.MarketAssessment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s market: %s (score %.2f)\n", a.Asset, a.Condition, a.OverallScore)
	for _, r := range a.Readings {
		line := fmt.Sprintf("%s: unavailable", r.Source)
		if r.Status == domain.ReadingOk {
			line = fmt.Sprintf("%s: %.2f", r.Source, r.RawValue)
			if r.Detail != "" {
				line += " (" + r.Detail + ")"
			}
			if r.Stale {
				line += " [stale]"
			}
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
