package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaxGenreLength bounds a single genre label in runes.
const MaxGenreLength = 40

// Regex patterns
var (
	// Letters, spaces and common punctuation: . ' - ,
	nameRegex = regexp.MustCompile(`^[\p{L} .',-]+$`)

	// Letters, digits, spaces, hyphens and ampersands ("Sci-Fi", "Action & Adventure")
	genreRegex = regexp.MustCompile(`^[\p{L}0-9][\p{L}0-9 &-]*$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("genre_label", GenreLabel)
}

// ValidName validates that a string contains only valid name characters
// Rejects digits and most special symbols
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	return !containsEmoji(fl.Field().String())
}

func containsEmoji(s string) bool {
	for _, r := range s {
		// Supplementary planes hold most emoji
		if r > 0x1F000 {
			return true
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return true
		}
	}
	return false
}

// GenreLabel accepts a trimmed, non-empty genre name. Labels are stored as
// entered; matching in the community page is case-sensitive.
func GenreLabel(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	if strings.TrimSpace(val) != val || utf8.RuneCountInString(val) > MaxGenreLength {
		return false
	}
	return genreRegex.MatchString(val)
}
