package sentiment

import (
	"fmt"
	"strings"
)

// Post is one social-media post with the top-level comments used for scoring.
type Post struct {
	Title    string
	Comments []string
}

var positiveTokens = []string{
	"bull", "bullish", "breakout", "surge", "rally", "adoption", "growth",
	"buy", "uptrend", "recover", "moon", "pump", "gain", "profit", "win",
	"good", "great", "love", "strong", "up",
}

var negativeTokens = []string{
	"bear", "bearish", "dump", "sell", "crash", "hack", "lawsuit", "ban",
	"decline", "downtrend", "liquidation", "scam", "rug", "loss", "fear",
	"bad", "terrible", "weak", "rekt", "down",
}

// Polarity scores a piece of text in [-1,1] with a keyword lexicon. Zero when
// no lexicon word appears.
func Polarity(text string) float64 {
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	pos := countMatches(words, positiveTokens)
	neg := countMatches(words, negativeTokens)
	if pos == 0 && neg == 0 {
		return 0
	}

	raw := float64(pos-neg) / float64(pos+neg+1)
	return clamp(raw, -1, 1)
}

// PostPolarity blends title and comment polarities:
// (title + sum(comments)) / (1 + comment count).
func PostPolarity(p Post) float64 {
	total := Polarity(p.Title)
	for _, c := range p.Comments {
		total += Polarity(c)
	}
	return clamp(total/float64(1+len(p.Comments)), -1, 1)
}

// AveragePolarity is the arithmetic mean of per-post polarities.
func AveragePolarity(posts []Post) (float64, error) {
	if len(posts) == 0 {
		return 0, fmt.Errorf("no posts to score")
	}
	total := 0.0
	for _, p := range posts {
		total += PostPolarity(p)
	}
	return clamp(total/float64(len(posts)), -1, 1), nil
}

func tokenize(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

func countMatches(words []string, tokens []string) int {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	count := 0
	for _, w := range words {
		if _, ok := set[w]; ok {
			count++
		}
	}
	return count
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
