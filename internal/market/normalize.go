package market

import (
	"fmt"
	"math"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

// Per-source normalization onto a shared bullishness scale of [0, 1].
// 0 is maximally bearish, 1 maximally bullish.

const (
	vixFearLevel    = 30.0
	vixCautionLevel = 20.0

	// Daily active address count treated as a fully saturated bullish
	// reading. Anything above clamps to 1.
	activityCeiling = 10000.0
)

// Normalize maps a raw source reading onto [0, 1].
func Normalize(source domain.Source, raw float64) (float64, error) {
	switch source {
	case domain.SourceFearGreed:
		return clamp(raw/100.0, 0, 1), nil
	case domain.SourceVolatility:
		// VIX is inverse: high volatility reads bearish.
		switch {
		case raw >= vixFearLevel:
			return 0.1, nil
		case raw >= vixCautionLevel:
			return 0.5, nil
		default:
			return 0.9, nil
		}
	case domain.SourceOnChainActivity:
		return clamp(raw/activityCeiling, 0, 1), nil
	case domain.SourceSocialSentiment:
		// Polarity arrives in [-1, 1].
		return clamp((raw+1.0)/2.0, 0, 1), nil
	case domain.SourceAltcoinSeason:
		// Informational only, but normalized the same way for display.
		return clamp(raw/100.0, 0, 1), nil
	default:
		return 0, fmt.Errorf("no normalization rule for source %q", source)
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
