package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const (
	LangRU = "ru"
	LangEN = "en"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// Locales returns the bundled message catalogs rooted at the locales directory.
func Locales() fs.FS {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

type Manager struct {
	defaultLanguage string
	locales         map[string]map[string]string
	supported       []string
}

// NewManager loads every <lang>.json at the root of catalogs. Both en and ru must be present.
func NewManager(defaultLanguage string, catalogs fs.FS) (*Manager, error) {
	manager := &Manager{
		locales: map[string]map[string]string{},
	}

	entries, err := fs.ReadDir(catalogs, ".")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}

		language := strings.TrimSuffix(strings.ToLower(entry.Name()), ".json")
		messages, err := readCatalog(catalogs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", language, err)
		}

		manager.locales[language] = messages
		manager.supported = append(manager.supported, language)
	}

	if len(manager.supported) == 0 {
		return nil, fmt.Errorf("no locales found")
	}
	for _, required := range []string{LangEN, LangRU} {
		if _, ok := manager.locales[required]; !ok {
			return nil, fmt.Errorf("required locale %q missing", required)
		}
	}

	sort.Strings(manager.supported)
	manager.defaultLanguage = LangEN
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)
	return manager, nil
}

func readCatalog(catalogs fs.FS, name string) (map[string]string, error) {
	content, err := fs.ReadFile(catalogs, name)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	messages := map[string]string{}
	if err := json.Unmarshal(content, &messages); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return messages, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	result := make([]string, len(manager.supported))
	copy(result, manager.supported)
	return result
}

// NormalizeLanguage reduces a tag like "ru-RU" to "ru" and falls back to the default for anything unsupported.
func (manager *Manager) NormalizeLanguage(raw string) string {
	normalized := normalizeLanguageTag(raw)
	if manager.isSupported(normalized) {
		return normalized
	}
	return manager.defaultLanguage
}

func (manager *Manager) DetectFromAcceptLanguage(raw string) string {
	for _, part := range strings.Split(raw, ",") {
		token := strings.TrimSpace(strings.Split(part, ";")[0])
		if normalized := normalizeLanguageTag(token); manager.isSupported(normalized) {
			return normalized
		}
	}
	return manager.defaultLanguage
}

func (manager *Manager) Translate(language string, key string) string {
	if value, ok := manager.lookup(manager.NormalizeLanguage(language), key); ok {
		return value
	}
	if value, ok := manager.lookup(manager.defaultLanguage, key); ok {
		return value
	}
	return key
}

func (manager *Manager) Translatef(language string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(language, key), args...)
}

func (manager *Manager) lookup(language string, key string) (string, bool) {
	value, ok := manager.locales[language][key]
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

func (manager *Manager) isSupported(language string) bool {
	if language == "" {
		return false
	}
	_, ok := manager.locales[language]
	return ok
}

func normalizeLanguageTag(raw string) string {
	language := strings.ToLower(strings.TrimSpace(raw))
	language = strings.ReplaceAll(language, "_", "-")
	if separator := strings.Index(language, "-"); separator >= 0 {
		language = language[:separator]
	}
	return language
}
