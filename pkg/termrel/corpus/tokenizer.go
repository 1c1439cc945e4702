package corpus

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stopwords map[string]struct{}
	stem      bool
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// SetStemming toggles snowball stemming of tokens.
// Stemming runs after stopword filtering so the stoplist matches
// surface forms.
func (t *Tokenizer) SetStemming(on bool) {
	t.stem = on
}

// Tokenize splits text into normalized tokens, removing stopwords.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			if current.Len() > 0 {
				word := t.processToken(current.String())
				if word != "" {
					tokens = append(tokens, word)
				}
				current.Reset()
			}
		}
	}

	// Don't forget the last token
	if current.Len() > 0 {
		word := t.processToken(current.String())
		if word != "" {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

// processToken applies cleaning, stopword filtering, and optional stemming.
func (t *Tokenizer) processToken(token string) string {
	word := t.cleanToken(token)
	if word == "" || len(word) <= 1 {
		return ""
	}

	// Pure-numeric tokens carry no lexical signal.
	// Mixed tokens like "gpt-4" or "utf-8" are kept.
	if isNumericOnly(word) {
		return ""
	}

	if t.isStopword(word) {
		return ""
	}

	if t.stem {
		if stemmed, err := snowball.Stem(word, "english", false); err == nil && stemmed != "" {
			word = stemmed
		}
	}

	return word
}

// cleanToken strips leading/trailing hyphens and normalizes consecutive hyphens
func (t *Tokenizer) cleanToken(token string) string {
	token = strings.Trim(token, "-")

	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}

	return token
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	delete(t.stopwords, strings.ToLower(word))
}
