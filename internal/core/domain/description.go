package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
)

// MaxDescriptionLength is the maximum number of characters in a Description.
const MaxDescriptionLength = 100

// Description is a trimmed, non-blank text of at most MaxDescriptionLength characters.
type Description string

// NewDescription trims and validates s.
func NewDescription(s string) (Description, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("%w: description must not be blank", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(trimmed) > MaxDescriptionLength {
		return "", fmt.Errorf("%w: description exceeds %d characters", apperrors.ErrValidation, MaxDescriptionLength)
	}
	return Description(trimmed), nil
}

func (d Description) String() string {
	return string(d)
}
