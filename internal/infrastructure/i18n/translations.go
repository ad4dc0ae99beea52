package i18n

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"congreso/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var _ output.T = (*Translator)(nil)

// Translator renders go-i18n messages for the closest supported language.
type Translator struct {
	bundle    *i18n.Bundle
	fallback  language.Tag
	supported []language.Tag
	matcher   language.Matcher
	logger    *zap.Logger

	mu         sync.Mutex
	localizers map[language.Tag]*i18n.Localizer
}

// NewTranslator loads every embedded active.*.toml file. An unparsable
// defaultLocale falls back to Spanish.
func NewTranslator(defaultLocale string, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		fallback = language.Spanish
	}

	bundle := i18n.NewBundle(fallback)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	files, _ := fs.Glob(localeFS, "active.*.toml")
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Error("i18n: load message file", zap.String("file", file), zap.Error(err))
		}
	}

	// The fallback goes first so that a match with no confidence resolves to it.
	supported := []language.Tag{fallback}
	for _, tag := range bundle.LanguageTags() {
		if tag != fallback {
			supported = append(supported, tag)
		}
	}

	return &Translator{
		bundle:     bundle,
		fallback:   fallback,
		supported:  supported,
		matcher:    language.NewMatcher(supported),
		logger:     logger,
		localizers: make(map[language.Tag]*i18n.Localizer, len(supported)),
	}
}

// Match resolves a language tag or a raw Accept-Language header to one of
// the loaded languages.
func (t *Translator) Match(locale string) language.Tag {
	if locale == "" {
		return t.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(prefs) == 0 {
		return t.fallback
	}
	_, index, confidence := t.matcher.Match(prefs...)
	if confidence == language.No {
		return t.fallback
	}
	return t.supported[index]
}

func (t *Translator) localizer(tag language.Tag) *i18n.Localizer {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.localizers[tag]
	if !ok {
		l = i18n.NewLocalizer(t.bundle, tag.String(), t.fallback.String())
		t.localizers[tag] = l
	}
	return l
}

// T renders key in the language matched from locale. A key missing in that
// language comes from the fallback; a key missing everywhere is returned as is.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	tag := t.Match(locale)
	msg, err := t.localizer(tag).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Warn("i18n: localize failed", zap.String("key", key), zap.Stringer("language", tag), zap.Error(err))
		return key
	}
	return msg
}
