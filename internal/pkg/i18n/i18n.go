package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const fallbackLocale = "en"

type Translations map[string]string

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
)

// LoadTranslations reads <localePath>/<locale>/content_types.yaml for every
// locale directory. Content-type keys and status names share one namespace.
func LoadTranslations(localePath string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := os.ReadDir(localePath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		locale := entry.Name()
		filePath := filepath.Join(localePath, locale, "content_types.yaml")

		data, err := os.ReadFile(filePath)
		if err != nil {
			continue
		}

		var file struct {
			ContentTypes Translations `yaml:"CONTENT_TYPES"`
			Statuses     Translations `yaml:"STATUSES"`
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		merged := make(Translations, len(file.ContentTypes)+len(file.Statuses))
		for k, v := range file.ContentTypes {
			merged[k] = v
		}
		for k, v := range file.Statuses {
			merged[k] = v
		}
		locales[locale] = merged
	}

	return nil
}

func Translate(locale, key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != fallbackLocale {
		if trans, ok := locales[fallbackLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}
