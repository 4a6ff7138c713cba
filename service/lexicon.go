package service

import (
	"regexp"
	"strings"

	"fan-pulse/models"
)

// LexiconClassifier is the offline fallback used when the hosted model is
// unreachable. It scores tweets against small polarity wordlists; anything
// without a clear signal stays Neutral, which is also the label the original
// pipeline fell back to on classifier errors.
type LexiconClassifier struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var positiveWords = []string{
	"win", "won", "wins", "winner", "victory", "champions", "champion",
	"goal", "great", "brilliant", "amazing", "fantastic", "superb",
	"proud", "congratulations", "congrats", "best", "love", "loved",
	"happy", "delighted", "welcome", "legend", "historic", "stunning",
	"perfect", "excellent", "top", "beautiful", "wonderful", "glory",
}

var negativeWords = []string{
	"lose", "lost", "loss", "defeat", "defeated", "injury", "injured",
	"sad", "bad", "worst", "terrible", "awful", "poor", "disappointed",
	"disappointing", "shame", "sorry", "fail", "failed", "failure",
	"crisis", "sacked", "banned", "painful", "missed", "unlucky",
	"frustrating", "angry", "relegated", "suspended",
}

var wordPattern = regexp.MustCompile(`[a-z']+`)

// NewLexiconClassifier creates the fallback classifier.
func NewLexiconClassifier() *LexiconClassifier {
	c := &LexiconClassifier{
		positive: make(map[string]struct{}, len(positiveWords)),
		negative: make(map[string]struct{}, len(negativeWords)),
	}

	for _, w := range positiveWords {
		c.positive[w] = struct{}{}
	}

	for _, w := range negativeWords {
		c.negative[w] = struct{}{}
	}

	return c
}

// Classify scores text by polarity word hits. The score is the normalized
// margin |pos-neg|/(pos+neg); a tie or no hits yields Neutral with score 0.
func (c *LexiconClassifier) Classify(text string) *models.SentimentResult {
	var pos, neg int

	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, ok := c.positive[word]; ok {
			pos++
		}

		if _, ok := c.negative[word]; ok {
			neg++
		}
	}

	switch {
	case pos > neg:
		return &models.SentimentResult{
			Label: models.SentimentPositive,
			Score: float64(pos-neg) / float64(pos+neg),
		}
	case neg > pos:
		return &models.SentimentResult{
			Label: models.SentimentNegative,
			Score: float64(neg-pos) / float64(pos+neg),
		}
	default:
		return &models.SentimentResult{Label: models.SentimentNeutral}
	}
}
