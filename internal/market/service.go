package market

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/cache"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/provider"
	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/sentiment"
)

type FearGreedReader interface {
	FetchLatest(ctx context.Context) (*provider.FearGreedPoint, error)
}

type VIXReader interface {
	FetchQuote(ctx context.Context) (*provider.VIXQuote, error)
}

type OnChainReader interface {
	FetchDailyActivity(ctx context.Context, slug, metric string) (float64, error)
}

type RedditReader interface {
	FetchNew(ctx context.Context, subreddit string, limit int) ([]provider.RedditPost, error)
}

type AltSeasonReader interface {
	FetchIndex(ctx context.Context) (*provider.AltcoinSeasonPoint, error)
}

type Config struct {
	Subreddit       string
	RedditPostLimit int
	CacheTTL        time.Duration
	OnChainMetric   string
}

// Service aggregates the sentiment sources into market assessments. Every
// source read goes through the signal cache so repeated assessments within
// the TTL reuse prior readings.
type Service struct {
	tracer trace.Tracer
	cache  cache.SignalCache

	fearGreed FearGreedReader
	vix       VIXReader
	onchain   OnChainReader
	reddit    RedditReader
	altSeason AltSeasonReader

	cfg Config
	now func() time.Time
}

func NewService(
	tracer trace.Tracer,
	signalCache cache.SignalCache,
	fearGreed FearGreedReader,
	vix VIXReader,
	onchain OnChainReader,
	reddit RedditReader,
	altSeason AltSeasonReader,
	cfg Config,
) *Service {
	if cfg.Subreddit == "" {
		cfg.Subreddit = "cryptocurrency"
	}
	if cfg.RedditPostLimit <= 0 {
		cfg.RedditPostLimit = 10
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.OnChainMetric == "" {
		cfg.OnChainMetric = provider.MetricDailyActiveAddresses
	}
	if signalCache == nil {
		signalCache = cache.NewMemoryCache()
	}

	return &Service{
		tracer:    tracer,
		cache:     signalCache,
		fearGreed: fearGreed,
		vix:       vix,
		onchain:   onchain,
		reddit:    reddit,
		altSeason: altSeason,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Assess fetches all sources for the asset concurrently and folds the
// readings into one weighted assessment. Sources that fail are carried as
// unavailable readings rather than failing the call; only when every
// weighted source is down does Assess return ErrAllSourcesUnavailable.
func (s *Service) Assess(ctx context.Context, asset string) (domain.MarketAssessment, error) {
	ctx, span := s.tracer.Start(ctx, "market.assess")
	defer span.End()

	asset = strings.ToUpper(strings.TrimSpace(asset))
	if asset == "" {
		return domain.MarketAssessment{}, fmt.Errorf("asset is required")
	}

	slug, ok := domain.SantimentSlug[asset]
	if !ok {
		slug = domain.DefaultSantimentSlug
	}

	type task struct {
		source domain.Source
		key    string
		fetch  cache.FetchFunc
	}

	tasks := []task{
		{domain.SourceFearGreed, "fear_greed", s.fetchFearGreed},
		{domain.SourceVolatility, "volatility", s.fetchVIX},
		{domain.SourceOnChainActivity, "onchain:" + slug, s.fetchOnChain(slug)},
		{domain.SourceSocialSentiment, "social:" + s.cfg.Subreddit, s.fetchSocial},
		{domain.SourceAltcoinSeason, "altcoin_season", s.fetchAltSeason},
	}

	readings := make([]domain.SignalReading, len(tasks))
	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		go func(i int, t task) {
			defer wg.Done()
			reading, err := s.cache.GetOrFetch(ctx, t.key, s.cfg.CacheTTL, t.fetch)
			if err != nil {
				log.Printf("market: source %s unavailable: %v", t.source, err)
				readings[i] = domain.SignalReading{
					Source:    t.source,
					FetchedAt: s.now().UTC(),
					Status:    domain.ReadingUnavailable,
					Detail:    err.Error(),
				}
				return
			}
			readings[i] = reading
		}(i, t)
	}
	wg.Wait()

	return BuildAssessment(asset, readings, s.now())
}

func (s *Service) fetchFearGreed(ctx context.Context) (domain.SignalReading, error) {
	if s.fearGreed == nil {
		return domain.SignalReading{}, fmt.Errorf("fear and greed source not configured")
	}
	point, err := s.fearGreed.FetchLatest(ctx)
	if err != nil {
		return domain.SignalReading{}, err
	}
	return domain.SignalReading{
		Source:    domain.SourceFearGreed,
		RawValue:  float64(point.Value),
		Detail:    point.Classification,
		FetchedAt: s.now().UTC(),
		Status:    domain.ReadingOk,
	}, nil
}

func (s *Service) fetchVIX(ctx context.Context) (domain.SignalReading, error) {
	if s.vix == nil {
		return domain.SignalReading{}, fmt.Errorf("volatility source not configured")
	}
	quote, err := s.vix.FetchQuote(ctx)
	if err != nil {
		return domain.SignalReading{}, err
	}
	return domain.SignalReading{
		Source:    domain.SourceVolatility,
		RawValue:  quote.Value,
		Detail:    quote.Analysis,
		FetchedAt: s.now().UTC(),
		Status:    domain.ReadingOk,
	}, nil
}

func (s *Service) fetchOnChain(slug string) cache.FetchFunc {
	return func(ctx context.Context) (domain.SignalReading, error) {
		if s.onchain == nil {
			return domain.SignalReading{}, fmt.Errorf("on-chain source not configured")
		}
		value, err := s.onchain.FetchDailyActivity(ctx, slug, s.cfg.OnChainMetric)
		if err != nil && slug != domain.DefaultSantimentSlug {
			// Thin coverage for smaller assets; the reference asset still
			// tracks overall network activity.
			log.Printf("onchain: no data for %s, falling back to %s: %v", slug, domain.DefaultSantimentSlug, err)
			slug = domain.DefaultSantimentSlug
			value, err = s.onchain.FetchDailyActivity(ctx, slug, s.cfg.OnChainMetric)
		}
		if err != nil {
			return domain.SignalReading{}, err
		}
		return domain.SignalReading{
			Source:    domain.SourceOnChainActivity,
			RawValue:  value,
			Detail:    fmt.Sprintf("%s %s", slug, s.cfg.OnChainMetric),
			FetchedAt: s.now().UTC(),
			Status:    domain.ReadingOk,
		}, nil
	}
}

func (s *Service) fetchSocial(ctx context.Context) (domain.SignalReading, error) {
	if s.reddit == nil {
		return domain.SignalReading{}, fmt.Errorf("social source not configured")
	}
	posts, err := s.reddit.FetchNew(ctx, s.cfg.Subreddit, s.cfg.RedditPostLimit)
	if err != nil {
		return domain.SignalReading{}, err
	}

	scored := make([]sentiment.Post, 0, len(posts))
	for _, post := range posts {
		scored = append(scored, sentiment.Post{Title: post.Title, Comments: post.Comments})
	}
	overall, err := sentiment.AveragePolarity(scored)
	if err != nil {
		return domain.SignalReading{}, err
	}
	return domain.SignalReading{
		Source:    domain.SourceSocialSentiment,
		RawValue:  overall,
		Detail:    fmt.Sprintf("r/%s, %d posts", s.cfg.Subreddit, len(posts)),
		FetchedAt: s.now().UTC(),
		Status:    domain.ReadingOk,
	}, nil
}

func (s *Service) fetchAltSeason(ctx context.Context) (domain.SignalReading, error) {
	if s.altSeason == nil {
		return domain.SignalReading{}, fmt.Errorf("altcoin season source not configured")
	}
	point, err := s.altSeason.FetchIndex(ctx)
	if err != nil {
		return domain.SignalReading{}, err
	}
	return domain.SignalReading{
		Source:    domain.SourceAltcoinSeason,
		RawValue:  float64(point.Value),
		Detail:    point.Season,
		FetchedAt: s.now().UTC(),
		Status:    domain.ReadingOk,
	}, nil
}
