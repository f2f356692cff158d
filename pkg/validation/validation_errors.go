package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Profile fields
	"Name":          "Name",
	"PhotoURL":      "Photo URL",
	"FavoriteGenre": "Favorite genre",

	// Movie fields
	"Title":       "Title",
	"Synopsis":    "Synopsis",
	"ReleaseDate": "Release date",
	"Genres":      "Genres",

	// Rating fields
	"Score":   "Rating",
	"Comment": "Comment",

	// Admin fields
	"Role": "Role",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.StructField())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max":
		switch e.Kind().String() {
		case "string":
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		case "slice":
			return fmt.Sprintf("%s: at most %s items", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))

	case "url":
		return fmt.Sprintf("%s: invalid URL", label)

	case "datetime":
		return fmt.Sprintf("%s: expected format YYYY-MM-DD", label)

	case "valid_name":
		return fmt.Sprintf("%s: only letters, spaces and common punctuation (. ' - ,)", label)

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)

	case "genre_label":
		return fmt.Sprintf("%s: invalid genre %q", label, e.Value())

	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if i := strings.IndexByte(fieldName, '['); i > 0 {
		fieldName = fieldName[:i]
	}
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
