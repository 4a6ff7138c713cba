package service

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"fan-pulse/models"
	"fan-pulse/repository"
)

var (
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	nonLetters     = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// englishStopwords is a compact English stopword list; enough for tweet text.
var englishStopwords = []string{
	"a", "about", "after", "again", "all", "also", "an", "and", "any",
	"are", "as", "at", "be", "because", "been", "before", "being", "but",
	"by", "can", "could", "did", "do", "does", "doing", "down", "during",
	"each", "few", "for", "from", "further", "had", "has", "have",
	"having", "he", "her", "here", "hers", "him", "his", "how", "i",
	"if", "in", "into", "is", "it", "its", "just", "me", "more", "most",
	"my", "no", "nor", "not", "now", "of", "off", "on", "once", "only",
	"or", "other", "our", "ours", "out", "over", "own", "same", "she",
	"so", "some", "such", "than", "that", "the", "their", "theirs",
	"them", "then", "there", "these", "they", "this", "those", "through",
	"to", "too", "under", "until", "up", "very", "was", "we", "were",
	"what", "when", "where", "which", "while", "who", "whom", "why",
	"will", "with", "you", "your", "yours",
}

// extraStopwords removes club shorthand and multilingual filler that would
// otherwise dominate the cloud.
var extraStopwords = []string{
	"https", "co", "amp", "fc", "barca", "juve", "madrid", "bayern",
	"real", "ucl", "team", "game", "match", "season", "goal", "win",
	"rt", "vs", "today", "club",
	"de", "la", "el", "en", "con", "un", "los", "las", "para", "del",
	"und", "die", "das", "der", "mit", "auf", "zum", "que", "je", "au",
}

// WordCloudService implementation.
type wordCloudService struct {
	tweetRepo repository.TweetRepository
	stopwords map[string]struct{}
	logger    *slog.Logger
}

// NewWordCloudService creates a new word cloud service.
func NewWordCloudService(tweetRepo repository.TweetRepository, logger *slog.Logger) WordCloudService {
	stopwords := make(map[string]struct{}, len(englishStopwords)+len(extraStopwords))

	for _, w := range englishStopwords {
		stopwords[w] = struct{}{}
	}

	for _, w := range extraStopwords {
		stopwords[w] = struct{}{}
	}

	return &wordCloudService{
		tweetRepo: tweetRepo,
		stopwords: stopwords,
		logger:    logger,
	}
}

// TopWords returns the limit most frequent cleaned keywords over the
// filtered corpus, ordered by count descending then alphabetically.
func (s *wordCloudService) TopWords(ctx context.Context, filter models.StatsFilter, limit int) ([]models.WordCount, error) {
	texts, err := s.tweetRepo.TextCorpus(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load word cloud corpus", "error", err)
		return nil, err
	}

	counts := map[string]int{}

	for _, text := range texts {
		for _, word := range s.tokenize(text) {
			counts[word]++
		}
	}

	words := make([]models.WordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, models.WordCount{Word: word, Count: count})
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}

		return words[i].Word < words[j].Word
	})

	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}

	s.logger.InfoContext(ctx, "word cloud built",
		"tweets", len(texts), "distinct_words", len(counts), "returned", len(words))

	return words, nil
}

// tokenize lowercases, strips URLs/mentions/punctuation, and drops stopwords
// and very short tokens.
func (s *wordCloudService) tokenize(text string) []string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = nonLetters.ReplaceAllString(text, " ")

	tokens := []string{}

	for _, word := range strings.Fields(text) {
		if len(word) <= 2 {
			continue
		}

		if _, ok := s.stopwords[word]; ok {
			continue
		}

		tokens = append(tokens, word)
	}

	return tokens
}
