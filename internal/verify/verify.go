// Package verify decides whether a learner's response matches the expected
// practice item. Each call is a pure function of its inputs; nothing is
// shared or persisted between verifications.
package verify

import (
	"math"
	"strings"

	"github.com/akshitagupta/varnmala/internal/catalog"
	"github.com/antzucaro/matchr"
)

// DefaultThreshold is the fuzzy similarity cutoff (0-100) below which a
// sentence response is judged incorrect. A product-policy default, not a
// derived constant.
const DefaultThreshold = 75

// Mode selects the sentence comparison strategy.
type Mode string

const (
	// ModeExact compares lowercased, trimmed strings for equality.
	ModeExact Mode = "exact"
	// ModeFuzzy scores similarity 0-100 and applies the threshold.
	ModeFuzzy Mode = "fuzzy"
)

const (
	msgCorrect      = "Correct!"
	msgIncorrect    = "Incorrect"
	msgInvalidInput = "Invalid input"
)

// Result is the verdict for one verification. Score is set only by the
// fuzzy strategy. Callers should branch on Correct and Score, never on
// Message, which is display text.
type Result struct {
	RecognizedText string `json:"recognized_text"`
	Correct        bool   `json:"correct"`
	Score          *int   `json:"score,omitempty"`
	Message        string `json:"message"`
}

// Evaluator applies the level-appropriate matching strategy.
type Evaluator struct {
	Threshold int // inclusive lower bound for the fuzzy strategy
}

// New returns an Evaluator. Thresholds outside 0-100 fall back to the default.
func New(threshold int) *Evaluator {
	if threshold < 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return &Evaluator{Threshold: threshold}
}

// Evaluate judges response against expected using the strategy for level.
// The empty-input guard runs before any comparison: a blank expected or a
// blank (post-trim) response is always incorrect, never an error.
//
// Strategies by level:
//   - vowel, consonant, word: lowercase + trim, exact equality
//   - pronunciation: expected contained in response, script-sensitive
//     (the recognizer may return surrounding filler words)
//   - sentence: exact equality in ModeExact, similarity ratio in ModeFuzzy
func (e *Evaluator) Evaluate(level catalog.Level, mode Mode, expected, response string) Result {
	if strings.TrimSpace(expected) == "" || strings.TrimSpace(response) == "" {
		return Result{RecognizedText: response, Message: msgInvalidInput}
	}

	r := Result{RecognizedText: response}

	switch level {
	case catalog.LevelPronunciation:
		r.Correct = strings.Contains(response, expected)
	case catalog.LevelSentence:
		if mode == ModeFuzzy {
			score := Ratio(expected, response)
			r.Score = &score
			r.Correct = score >= e.Threshold
		} else {
			r.Correct = normalize(expected) == normalize(response)
		}
	default:
		r.Correct = normalize(expected) == normalize(response)
	}

	if r.Correct {
		r.Message = msgCorrect
	} else {
		r.Message = msgIncorrect
	}
	return r
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Ratio scores the similarity of two strings on a 0-100 scale from their
// Levenshtein distance over runes: 100*(lenSum-dist)/lenSum, rounded.
// Deterministic for a fixed pair.
func Ratio(a, b string) int {
	lenSum := len([]rune(a)) + len([]rune(b))
	if lenSum == 0 {
		return 100
	}
	dist := matchr.Levenshtein(a, b)
	return int(math.Round(100 * float64(lenSum-dist) / float64(lenSum)))
}
