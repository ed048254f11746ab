package services

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// LanguageCatalog lists the languages messages can be rendered in.
type LanguageCatalog interface {
	SupportedLanguages() []string
}

func normalizeProfileLanguage(raw string, catalog LanguageCatalog) (string, error) {
	language := strings.ToLower(strings.TrimSpace(raw))
	if catalog == nil {
		return language, nil
	}
	for _, supported := range catalog.SupportedLanguages() {
		if supported == language {
			return language, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
}
