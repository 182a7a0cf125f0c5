package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

type Assessor interface {
	Assess(ctx context.Context, asset string) (domain.MarketAssessment, error)
}

type AssessmentSink interface {
	Insert(ctx context.Context, assessment domain.MarketAssessment) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AssessmentPoller periodically re-assesses every tracked asset so the signal
// cache stays warm and, when a sink is wired, the history table fills in the
// background. Each cycle also trims history rows older than the retention
// window; retention 0 keeps everything.
type AssessmentPoller struct {
	tracer       trace.Tracer
	market       Assessor
	sink         AssessmentSink
	pollInterval time.Duration
	retention    time.Duration
	now          func() time.Time
}

func NewAssessmentPoller(tracer trace.Tracer, market Assessor, sink AssessmentSink, pollIntervalSecs, retentionDays int) *AssessmentPoller {
	if pollIntervalSecs <= 0 {
		pollIntervalSecs = 900
	}
	if retentionDays < 0 {
		retentionDays = 0
	}
	return &AssessmentPoller{
		tracer:       tracer,
		market:       market,
		sink:         sink,
		pollInterval: time.Duration(pollIntervalSecs) * time.Second,
		retention:    time.Duration(retentionDays) * 24 * time.Hour,
		now:          time.Now,
	}
}

// Start blocks until ctx is cancelled.
func (p *AssessmentPoller) Start(ctx context.Context) {
	log.Println("Assessment poller starting...")

	// Run immediately on start
	p.runOnce(ctx)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Assessment poller stopped")
			return
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *AssessmentPoller) runOnce(ctx context.Context) {
	ctx, span := p.tracer.Start(ctx, "job.assess-all")
	defer span.End()

	for _, asset := range domain.SupportedSymbols {
		assessment, err := p.market.Assess(ctx, asset)
		if err != nil {
			log.Printf("assessment poll error for %s: %v", asset, err)
			continue
		}
		if p.sink == nil {
			continue
		}
		if err := p.sink.Insert(ctx, assessment); err != nil {
			log.Printf("assessment store error for %s: %v", asset, err)
		}
	}

	p.trimHistory(ctx)
}

func (p *AssessmentPoller) trimHistory(ctx context.Context) {
	if p.sink == nil || p.retention <= 0 {
		return
	}
	cutoff := p.now().Add(-p.retention)
	deleted, err := p.sink.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("assessment history trim error: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("assessment history trimmed %d rows older than %s", deleted, cutoff.Format(time.RFC3339))
	}
}
