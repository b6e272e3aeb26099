package catalog

import "testing"

func TestPickReturnsItemFromOwnCatalog(t *testing.T) {
	for _, level := range Levels() {
		t.Run(string(level), func(t *testing.T) {
			items, err := Items(level)
			if err != nil {
				t.Fatalf("Items(%q) error: %v", level, err)
			}
			member := make(map[string]bool, len(items))
			for _, it := range items {
				if it.Text == "" {
					t.Fatalf("catalog for %q contains an empty item", level)
				}
				member[it.Text] = true
			}

			// Sample repeatedly; every pick must come from this level's list.
			for i := 0; i < 100; i++ {
				it, err := Pick(level)
				if err != nil {
					t.Fatalf("Pick(%q) error: %v", level, err)
				}
				if it.Text == "" {
					t.Errorf("Pick(%q) returned an empty item", level)
				}
				if !member[it.Text] {
					t.Errorf("Pick(%q) returned %q, not in this level's catalog", level, it.Text)
				}
			}
		})
	}
}

func TestPickInvalidLevel(t *testing.T) {
	if _, err := Pick(Level("expert")); err != ErrInvalidLevel {
		t.Errorf("Pick(expert) error = %v, want ErrInvalidLevel", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
		ok    bool
	}{
		{"vowel", LevelVowel, true},
		{"consonant", LevelConsonant, true},
		{"pronunciation", LevelPronunciation, true},
		{"word", LevelWord, true},
		{"sentence", LevelSentence, true},
		{"", "", false},
		{"Vowel", "", false},
		{"level1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.ok && (err != nil || got != tt.want) {
				t.Errorf("ParseLevel(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
			}
			if !tt.ok && err != ErrInvalidLevel {
				t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.input, err)
			}
		})
	}
}

func TestItemsInvalidLevel(t *testing.T) {
	if _, err := Items(Level("bogus")); err != ErrInvalidLevel {
		t.Errorf("Items(bogus) error = %v, want ErrInvalidLevel", err)
	}
}

func TestCharacterItemsHaveTransliteration(t *testing.T) {
	for _, level := range []Level{LevelVowel, LevelConsonant, LevelPronunciation} {
		items, _ := Items(level)
		for _, it := range items {
			if it.Transliteration == "" {
				t.Errorf("%s item %q has no transliteration", level, it.Text)
			}
		}
	}
}

func TestSentenceItemsHaveTranslation(t *testing.T) {
	items, _ := Items(LevelSentence)
	for _, it := range items {
		if it.Translation == "" {
			t.Errorf("sentence %q has no translation", it.Text)
		}
	}
}

func TestPronunciationCoversVowelsAndConsonants(t *testing.T) {
	v, _ := Items(LevelVowel)
	c, _ := Items(LevelConsonant)
	p, _ := Items(LevelPronunciation)
	if len(p) != len(v)+len(c) {
		t.Errorf("pronunciation catalog has %d items, want %d", len(p), len(v)+len(c))
	}
}
