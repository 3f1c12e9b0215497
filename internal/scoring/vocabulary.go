package scoring

import (
	"fmt"
	"strings"

	"github.com/SethFaerber/tma-report/internal/survey"
)

// VocabularySize is the number of phrases in a five-point Likert scale.
const VocabularySize = 5

// Vocabulary maps normalized (trimmed, lower-cased) answer phrases to their
// Likert scores. It is built once at startup and treated as read-only.
type Vocabulary map[string]survey.Score

// NewVocabulary builds a vocabulary from five phrases ordered strongest
// agreement first. phrases[0] maps to 5, phrases[4] maps to 1.
func NewVocabulary(phrases []string) (Vocabulary, error) {
	if len(phrases) != VocabularySize {
		return nil, fmt.Errorf("vocabulary requires %d phrases, got %d", VocabularySize, len(phrases))
	}

	vocab := make(Vocabulary, VocabularySize)
	for i, phrase := range phrases {
		key := normalize(phrase)
		if key == "" {
			return nil, fmt.Errorf("vocabulary phrase %d is empty", i)
		}
		if _, exists := vocab[key]; exists {
			return nil, fmt.Errorf("vocabulary phrase %q appears more than once", key)
		}
		vocab[key] = survey.Score(VocabularySize - i)
	}

	return vocab, nil
}

// DefaultVocabulary returns the standard five-point agreement scale.
func DefaultVocabulary() Vocabulary {
	vocab, err := NewVocabulary([]string{
		"Strongly Agree",
		"Agree",
		"Neutral",
		"Disagree",
		"Strongly Disagree",
	})
	if err != nil {
		panic(err) // static phrase list, cannot fail
	}
	return vocab
}

// TextToScore converts a raw response cell to a Likert score. The second
// return value is false when the cell did not match any vocabulary phrase;
// the score is then survey.ScoreMissing. A miss is a valid state, not an
// error.
func (v Vocabulary) TextToScore(raw string) (survey.Score, bool) {
	score, ok := v[normalize(raw)]
	if !ok {
		return survey.ScoreMissing, false
	}
	return score, true
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
