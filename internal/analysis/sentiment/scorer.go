// Package sentiment scores financial-news headlines with a deterministic
// valence-lexicon scorer: dictionary lookup with negation and intensifier
// handling, no training step, no network calls. Identical text always
// produces an identical score.
package sentiment

import (
	"math"
	"sort"
	"strings"

	"github.com/seenimoa/finpulse/pkg/models"
)

// Scorer maps text to a sentiment score in [-1, +1]. The pipeline depends
// only on this interface, so a rule-based or model-based scorer can be
// substituted without touching anything downstream.
type Scorer interface {
	Score(text string) float64
}

// Label thresholds: scores inside (negative, positive) are neutral.
const (
	DefaultPositiveThreshold = 0.05
	DefaultNegativeThreshold = -0.05
)

// negationWindow is how many tokens back a negation still applies.
const negationWindow = 3

// normAlpha is the normalization constant mapping summed valence into
// [-1, +1] via v / sqrt(v*v + alpha).
const normAlpha = 15.0

// LexiconScorer is the default Scorer. The zero value is not usable; create
// one with NewLexiconScorer.
type LexiconScorer struct {
	positiveThreshold float64
	negativeThreshold float64
}

// NewLexiconScorer returns a scorer with the default label thresholds.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		positiveThreshold: DefaultPositiveThreshold,
		negativeThreshold: DefaultNegativeThreshold,
	}
}

// NewLexiconScorerWithThresholds overrides the label thresholds.
func NewLexiconScorerWithThresholds(positive, negative float64) *LexiconScorer {
	return &LexiconScorer{positiveThreshold: positive, negativeThreshold: negative}
}

// Score computes the sentiment of text. Token valences are summed with
// negation flips and booster scaling, then normalized into [-1, +1].
// A text with no lexicon hits scores exactly 0.
func (s *LexiconScorer) Score(text string) float64 {
	tokens := tokenize(text)

	total := 0.0
	for i, tok := range tokens {
		valence, ok := valences[tok]
		if !ok {
			continue
		}

		// Booster immediately before the scored word.
		if i > 0 {
			if b, ok := boosters[tokens[i-1]]; ok {
				if valence > 0 {
					valence += b
				} else {
					valence -= b
				}
			}
		}

		// Negation within the preceding window flips and dampens.
		for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
			if negations[tokens[j]] {
				valence *= -0.74
				break
			}
		}

		total += valence
	}

	if total == 0 {
		return 0
	}
	return total / math.Sqrt(total*total+normAlpha)
}

// Label classifies a score against the scorer's thresholds.
func (s *LexiconScorer) Label(score float64) string {
	switch {
	case score >= s.positiveThreshold:
		return models.LabelPositive
	case score <= s.negativeThreshold:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

// ScoreRecords scores every record that has a ticker and a valid
// publication date; rows flagged by the cleaner for an invalid date carry
// no usable join key and are skipped.
func (s *LexiconScorer) ScoreRecords(records []models.NewsRecord) []models.SentimentScore {
	scores := make([]models.SentimentScore, 0, len(records))
	for _, r := range records {
		if r.Ticker == "" || r.PublishedAt.IsZero() {
			continue
		}
		score := s.Score(r.Headline)
		scores = append(scores, models.SentimentScore{
			Ticker:   r.Ticker,
			Headline: r.Headline,
			Score:    score,
			Label:    s.Label(score),
			Date:     r.Date(),
		})
	}
	return scores
}

// AggregateDaily reduces per-headline scores to one value per (ticker,
// date) by arithmetic mean. Every headline on a day carries equal weight.
// Output is sorted by ticker, then date.
func AggregateDaily(scores []models.SentimentScore) []models.DailySentiment {
	type key struct {
		ticker string
		date   int64
	}
	sums := make(map[key]*models.DailySentiment)
	for _, s := range scores {
		k := key{ticker: s.Ticker, date: s.Date.Unix()}
		agg, ok := sums[k]
		if !ok {
			agg = &models.DailySentiment{Ticker: s.Ticker, Date: s.Date}
			sums[k] = agg
		}
		agg.Score += s.Score
		agg.N++
	}

	out := make([]models.DailySentiment, 0, len(sums))
	for _, agg := range sums {
		agg.Score /= float64(agg.N)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// tokenize lowercases and splits text, stripping surrounding punctuation
// from each token but preserving inner apostrophes so negated contractions
// ("isn't") survive.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
		})
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
