package domain

import (
	"errors"
	"fmt"
	"time"
)

// Source identifies one external sentiment signal.
type Source string

const (
	SourceFearGreed       Source = "fear_greed"
	SourceVolatility      Source = "volatility"
	SourceOnChainActivity Source = "onchain_activity"
	SourceSocialSentiment Source = "social_sentiment"
	SourceAltcoinSeason   Source = "altcoin_season"
)

// WeightedSources are the sources that enter the composite score.
// AltcoinSeason answers altcoin-vs-bitcoin dominance, not bullish-vs-bearish,
// so it is carried in assessments as informational only.
var WeightedSources = []Source{
	SourceFearGreed,
	SourceVolatility,
	SourceOnChainActivity,
	SourceSocialSentiment,
}

// AllSources lists every adapter the engine polls, informational ones included.
var AllSources = []Source{
	SourceFearGreed,
	SourceVolatility,
	SourceOnChainActivity,
	SourceSocialSentiment,
	SourceAltcoinSeason,
}

type ReadingStatus string

const (
	ReadingOk          ReadingStatus = "ok"
	ReadingUnavailable ReadingStatus = "unavailable"
)

// SignalReading is the result of one adapter invocation. RawValue is only
// meaningful when Status is ReadingOk; its domain is source-specific and must
// go through the normalizer before cross-source comparison.
type SignalReading struct {
	Source    Source        `json:"source"`
	RawValue  float64       `json:"raw_value"`
	Detail    string        `json:"detail,omitempty"`
	FetchedAt time.Time     `json:"fetched_at"`
	Status    ReadingStatus `json:"status"`
	Stale     bool          `json:"stale,omitempty"`
}

// NormalizedScore is a [0,1] bullishness value plus its source tag.
type NormalizedScore struct {
	Source Source  `json:"source"`
	Value  float64 `json:"value"`
}

type MarketCondition string

const (
	ConditionBullish MarketCondition = "bullish"
	ConditionBearish MarketCondition = "bearish"
	ConditionNeutral MarketCondition = "neutral"
)

// MarketAssessment is the aggregation result returned to callers. Scores holds
// the per-source normalized values that entered the weighted sum; Readings is
// the full snapshot including informational and unavailable sources.
type MarketAssessment struct {
	Asset        string            `json:"asset"`
	OverallScore float64           `json:"overall_score"`
	Condition    MarketCondition   `json:"condition"`
	Scores       []NormalizedScore `json:"scores"`
	Readings     []SignalReading   `json:"readings"`
	AssessedAt   time.Time         `json:"assessed_at"`
}

// CommunityStrategy is one user-shared strategy record in the community file.
type CommunityStrategy struct {
	Asset           string `json:"crypto"`
	Strategy        string `json:"strategy"`
	MarketCondition string `json:"market_condition,omitempty"`
	Timestamp       string `json:"timestamp"`
}

var (
	// ErrAllSourcesUnavailable means no classification can be produced.
	// Callers must treat this distinctly from a neutral assessment.
	ErrAllSourcesUnavailable = errors.New("all sentiment sources unavailable")
)

// GenerationError surfaces an LLM API failure with its upstream status code.
type GenerationError struct {
	StatusCode int
	Err        error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("strategy generation failed (status %d): %v", e.StatusCode, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
