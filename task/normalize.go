package task

import (
	"fmt"
	"strings"

	"github.com/duecli/due/internal/validation"
)

func normalizeKind(kind Kind) Kind {
	lowered := Kind(strings.ToLower(strings.TrimSpace(string(kind))))
	// Pre-rewrite exports spelled the deadline kind after their class name.
	if lowered == "deadlinetask" {
		return KindDeadline
	}
	return lowered
}

// normalizeKindInput resolves a user- or file-supplied kind. A missing
// kind means a deadline task; anything outside the known set is an error.
func normalizeKindInput(kind Kind) (Kind, error) {
	if strings.TrimSpace(string(kind)) == "" {
		return KindDeadline, nil
	}
	normalized := normalizeKind(kind)
	if !normalized.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidKind, kind, ValidKinds())
	}
	return normalized, nil
}

// normalizeTitleInput trims surrounding whitespace and validates the result.
func normalizeTitleInput(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if err := ValidateTitle(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

// normalizeDeadlineInput trims surrounding whitespace and validates the result.
func normalizeDeadlineInput(deadline string) (string, error) {
	trimmed := strings.TrimSpace(deadline)
	if err := ValidateDeadline(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

// normalizeCategoryInput matches a category against the allowed set
// case-insensitively and returns the canonical spelling. Empty input
// selects the first allowed category.
func normalizeCategoryInput(category string, allowed []string) (string, error) {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		if len(allowed) == 0 {
			return "", fmt.Errorf("%w: no categories configured", ErrInvalidCategory)
		}
		return allowed[0], nil
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, trimmed) {
			return candidate, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidCategory, category, allowed)
}
