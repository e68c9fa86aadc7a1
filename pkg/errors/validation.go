package errors

import (
	"strings"
	"unicode"
)

// MaxWordLength bounds words accepted from untrusted input (query strings,
// request bodies). Vocabulary files are not subject to it.
const MaxWordLength = 64

// ValidateWord validates a word supplied by a caller before it is looked up
// in a vocabulary.
//
// The validation rules are intentionally conservative:
//   - No empty words
//   - No whitespace, control characters, or null bytes
//   - Maximum length of MaxWordLength characters
func ValidateWord(word string) error {
	if word == "" {
		return New(ErrCodeInvalidInput, "word cannot be empty")
	}

	if n := len([]rune(word)); n > MaxWordLength {
		return New(ErrCodeInvalidInput, "word too long (%d characters, max %d)", n, MaxWordLength)
	}

	for _, r := range word {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "word contains invalid characters: %q", word)
		}
	}

	return nil
}

// ValidatePath validates a local file path supplied on the command line or in
// a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
