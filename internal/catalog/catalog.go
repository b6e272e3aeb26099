// Package catalog holds the static practice content served to learners.
// Every level maps to exactly one read-only item list; nothing here mutates
// after process start, so concurrent reads need no locking.
package catalog

import (
	"errors"
	"math/rand"
)

// Level is a difficulty tier. Each level has its own catalog and its own
// matching strategy in the verify package.
type Level string

const (
	// LevelVowel serves single Hindi vowels (swar) with romanization.
	LevelVowel Level = "vowel"
	// LevelConsonant serves single Hindi consonants (vyanjan) with romanization.
	LevelConsonant Level = "consonant"
	// LevelPronunciation serves a mixed character for a spoken pronunciation check.
	LevelPronunciation Level = "pronunciation"
	// LevelWord serves simple English words.
	LevelWord Level = "word"
	// LevelSentence serves short Hindi sentences with English glosses.
	LevelSentence Level = "sentence"
)

// ErrInvalidLevel is returned for a level outside the enumerated tiers.
var ErrInvalidLevel = errors.New("invalid level")

// Item is one unit of practice content.
type Item struct {
	Text            string `json:"text"`
	Transliteration string `json:"transliteration,omitempty"`
	Translation     string `json:"translation,omitempty"`
}

var vowels = []Item{
	{Text: "अ", Transliteration: "a"},
	{Text: "आ", Transliteration: "aa"},
	{Text: "इ", Transliteration: "i"},
	{Text: "ई", Transliteration: "ee"},
	{Text: "उ", Transliteration: "u"},
	{Text: "ऊ", Transliteration: "oo"},
	{Text: "ऋ", Transliteration: "ri"},
	{Text: "ए", Transliteration: "e"},
	{Text: "ऐ", Transliteration: "ai"},
	{Text: "ओ", Transliteration: "o"},
	{Text: "औ", Transliteration: "au"},
	{Text: "अं", Transliteration: "am"},
	{Text: "अः", Transliteration: "ah"},
}

// Note: ष and श both carry the romanization "sha"; the learner-facing hint
// does not distinguish them.
var consonants = []Item{
	{Text: "क", Transliteration: "ka"},
	{Text: "ख", Transliteration: "kha"},
	{Text: "ग", Transliteration: "ga"},
	{Text: "घ", Transliteration: "gha"},
	{Text: "ङ", Transliteration: "nga"},
	{Text: "च", Transliteration: "cha"},
	{Text: "छ", Transliteration: "chha"},
	{Text: "ज", Transliteration: "ja"},
	{Text: "झ", Transliteration: "jha"},
	{Text: "ञ", Transliteration: "nya"},
	{Text: "ट", Transliteration: "ta"},
	{Text: "ठ", Transliteration: "tha"},
	{Text: "ड", Transliteration: "da"},
	{Text: "ढ", Transliteration: "dha"},
	{Text: "ण", Transliteration: "na"},
	{Text: "त", Transliteration: "ta"},
	{Text: "थ", Transliteration: "tha"},
	{Text: "द", Transliteration: "da"},
	{Text: "ध", Transliteration: "dha"},
	{Text: "न", Transliteration: "na"},
	{Text: "प", Transliteration: "pa"},
	{Text: "फ", Transliteration: "pha"},
	{Text: "ब", Transliteration: "ba"},
	{Text: "भ", Transliteration: "bha"},
	{Text: "म", Transliteration: "ma"},
	{Text: "य", Transliteration: "ya"},
	{Text: "र", Transliteration: "ra"},
	{Text: "ल", Transliteration: "la"},
	{Text: "व", Transliteration: "va"},
	{Text: "श", Transliteration: "sha"},
	{Text: "ष", Transliteration: "sha"},
	{Text: "स", Transliteration: "sa"},
	{Text: "ह", Transliteration: "ha"},
	{Text: "क्ष", Transliteration: "ksha"},
	{Text: "त्र", Transliteration: "tra"},
	{Text: "ज्ञ", Transliteration: "gya"},
}

var words = []Item{
	{Text: "cat"}, {Text: "dog"}, {Text: "sun"}, {Text: "hat"},
	{Text: "run"}, {Text: "milk"}, {Text: "ball"}, {Text: "book"},
	{Text: "tree"}, {Text: "fish"}, {Text: "house"}, {Text: "water"},
	{Text: "happy"}, {Text: "apple"}, {Text: "chair"}, {Text: "table"},
	{Text: "school"}, {Text: "friend"}, {Text: "yellow"}, {Text: "window"},
}

var sentences = []Item{
	{Text: "नमस्ते", Translation: "Hello"},
	{Text: "आप कैसे हैं", Translation: "How are you?"},
	{Text: "मैं ठीक हूँ", Translation: "I am fine."},
	{Text: "आपका नाम क्या है", Translation: "What is your name?"},
	{Text: "मेरा नाम सोनिया है", Translation: "My name is Sonia."},
	{Text: "आज मौसम अच्छा है", Translation: "The weather is nice today."},
	{Text: "यह एक किताब है", Translation: "This is a book."},
	{Text: "मुझे पानी चाहिए", Translation: "I want water."},
	{Text: "घर चलो", Translation: "Let's go home."},
	{Text: "मुझे हिंदी सीखना पसंद है", Translation: "I like learning Hindi."},
}

// pronunciation covers the full character set, vowels first.
var pronunciation = func() []Item {
	items := make([]Item, 0, len(vowels)+len(consonants))
	items = append(items, vowels...)
	items = append(items, consonants...)
	return items
}()

var catalogs = map[Level][]Item{
	LevelVowel:         vowels,
	LevelConsonant:     consonants,
	LevelPronunciation: pronunciation,
	LevelWord:          words,
	LevelSentence:      sentences,
}

// Levels returns the enumerated tiers in difficulty order.
func Levels() []Level {
	return []Level{LevelVowel, LevelConsonant, LevelPronunciation, LevelWord, LevelSentence}
}

// ParseLevel validates a level name from an untrusted source.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if _, ok := catalogs[l]; !ok {
		return "", ErrInvalidLevel
	}
	return l, nil
}

// Items returns the full catalog for a level.
func Items(l Level) ([]Item, error) {
	items, ok := catalogs[l]
	if !ok {
		return nil, ErrInvalidLevel
	}
	return items, nil
}

// Pick selects one item uniformly at random, with replacement. Repeats
// across calls are expected; there is no exclusion of served items.
func Pick(l Level) (Item, error) {
	items, ok := catalogs[l]
	if !ok {
		return Item{}, ErrInvalidLevel
	}
	return items[rand.Intn(len(items))], nil
}
