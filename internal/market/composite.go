package market

import (
	"time"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

const (
	bullishThreshold = 0.6
	bearishThreshold = 0.4

	// With only the fear and greed index left the neutral band collapses
	// to a two-way call around this pivot.
	fearGreedOnlyPivot = 0.55
)

func sourceWeights() map[domain.Source]float64 {
	return map[domain.Source]float64{
		domain.SourceOnChainActivity: 0.30,
		domain.SourceFearGreed:       0.30,
		domain.SourceVolatility:      0.10,
		domain.SourceSocialSentiment: 0.30,
	}
}

// BuildAssessment combines the normalized readings into a weighted market
// assessment. Unavailable sources drop out and the remaining weights are
// renormalized so the overall score stays in [0, 1]. The altcoin season
// index rides along in the readings but never enters the weighted sum.
func BuildAssessment(asset string, readings []domain.SignalReading, now time.Time) (domain.MarketAssessment, error) {
	weights := sourceWeights()

	scores := make([]domain.NormalizedScore, 0, len(readings))
	available := make(map[domain.Source]float64)
	for _, r := range readings {
		if r.Status != domain.ReadingOk {
			continue
		}
		value, err := Normalize(r.Source, r.RawValue)
		if err != nil {
			continue
		}
		scores = append(scores, domain.NormalizedScore{Source: r.Source, Value: value})
		if _, weighted := weights[r.Source]; weighted {
			available[r.Source] = value
		}
	}

	if len(available) == 0 {
		return domain.MarketAssessment{}, domain.ErrAllSourcesUnavailable
	}

	activeWeight := 0.0
	for source := range available {
		activeWeight += weights[source]
	}

	overall := 0.0
	for source, value := range available {
		overall += (weights[source] / activeWeight) * value
	}
	overall = clamp(overall, 0, 1)

	condition := classify(overall)
	if len(available) == 1 {
		if fg, ok := available[domain.SourceFearGreed]; ok {
			if fg >= fearGreedOnlyPivot {
				condition = domain.ConditionBullish
			} else {
				condition = domain.ConditionBearish
			}
		}
	}

	return domain.MarketAssessment{
		Asset:        asset,
		OverallScore: overall,
		Condition:    condition,
		Scores:       scores,
		Readings:     readings,
		AssessedAt:   now.UTC(),
	}, nil
}

func classify(score float64) domain.MarketCondition {
	switch {
	case score > bullishThreshold:
		return domain.ConditionBullish
	case score < bearishThreshold:
		return domain.ConditionBearish
	default:
		return domain.ConditionNeutral
	}
}
