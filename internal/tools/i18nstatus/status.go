// Package i18nstatus reports how completely each locale translates the base
// catalog.
package i18nstatus

import (
	"fmt"
	"math"
	"sort"
	"strings"

	i18ncatalog "github.com/louisbranch/oripheon/internal/platform/i18n/catalog"
)

// Report is the translation status of every locale against one base locale.
type Report struct {
	BaseLocale string         `json:"base_locale" yaml:"base_locale"`
	Locales    []LocaleStatus `json:"locales" yaml:"locales"`
}

// LocaleStatus counts the base keys a locale translates.
type LocaleStatus struct {
	Locale      string            `json:"locale" yaml:"locale"`
	BaseKeys    int               `json:"base_keys" yaml:"base_keys"`
	Translated  int               `json:"translated" yaml:"translated"`
	Missing     int               `json:"missing" yaml:"missing"`
	Extra       int               `json:"extra" yaml:"extra"`
	Completion  float64           `json:"completion" yaml:"completion"`
	Namespaces  []NamespaceStatus `json:"namespaces" yaml:"namespaces"`
	MissingKeys []string          `json:"missing_keys" yaml:"missing_keys"`
	ExtraKeys   []string          `json:"extra_keys" yaml:"extra_keys"`
}

// NamespaceStatus is LocaleStatus narrowed to one catalog namespace.
type NamespaceStatus struct {
	Namespace  string  `json:"namespace" yaml:"namespace"`
	BaseKeys   int     `json:"base_keys" yaml:"base_keys"`
	Translated int     `json:"translated" yaml:"translated"`
	Missing    int     `json:"missing" yaml:"missing"`
	Extra      int     `json:"extra" yaml:"extra"`
	Completion float64 `json:"completion" yaml:"completion"`
}

// Build compares every locale in bundle with baseLocale.
func Build(bundle *i18ncatalog.Bundle, baseLocale string) (Report, error) {
	if !bundle.HasLocale(baseLocale) {
		return Report{}, fmt.Errorf("base locale %q is missing from catalogs", baseLocale)
	}
	baseMessages := bundle.LocaleMessages(baseLocale)

	locales := bundle.Locales()
	statuses := make([]LocaleStatus, 0, len(locales))
	for _, locale := range locales {
		localeMessages := bundle.LocaleMessages(locale)
		missing := missingKeys(baseMessages, localeMessages)
		extra := missingKeys(localeMessages, baseMessages)
		translated := len(baseMessages) - len(missing)

		namespaceSet := map[string]struct{}{}
		for _, namespace := range bundle.Namespaces(baseLocale) {
			namespaceSet[namespace] = struct{}{}
		}
		for _, namespace := range bundle.Namespaces(locale) {
			namespaceSet[namespace] = struct{}{}
		}

		namespaces := make([]NamespaceStatus, 0, len(namespaceSet))
		for _, namespace := range sortedSetKeys(namespaceSet) {
			baseNS := bundle.NamespaceMessages(baseLocale, namespace)
			localeNS := bundle.NamespaceMessages(locale, namespace)
			nsMissing := missingKeys(baseNS, localeNS)
			nsTranslated := len(baseNS) - len(nsMissing)
			namespaces = append(namespaces, NamespaceStatus{
				Namespace:  namespace,
				BaseKeys:   len(baseNS),
				Translated: nsTranslated,
				Missing:    len(nsMissing),
				Extra:      len(missingKeys(localeNS, baseNS)),
				Completion: percent(nsTranslated, len(baseNS)),
			})
		}

		statuses = append(statuses, LocaleStatus{
			Locale:      locale,
			BaseKeys:    len(baseMessages),
			Translated:  translated,
			Missing:     len(missing),
			Extra:       len(extra),
			Completion:  percent(translated, len(baseMessages)),
			Namespaces:  namespaces,
			MissingKeys: missing,
			ExtraKeys:   extra,
		})
	}

	return Report{BaseLocale: baseLocale, Locales: statuses}, nil
}

// Complete reports whether every locale translates every base key.
func (r Report) Complete() bool {
	for _, l := range r.Locales {
		if l.Missing > 0 {
			return false
		}
	}
	return true
}

// Markdown renders the report as translator-facing tables.
func (r Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# I18n Status\n\n")
	fmt.Fprintf(&b, "Base locale: `%s`.\n\n", r.BaseLocale)

	b.WriteString("| Locale | Base Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, l := range r.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n", l.Locale, l.BaseKeys, l.Translated, l.Missing, l.Extra, l.Completion)
	}

	for _, l := range r.Locales {
		fmt.Fprintf(&b, "\n## Locale: `%s`\n\n", l.Locale)
		b.WriteString("| Namespace | Base Keys | Translated | Missing | Extra | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
		for _, ns := range l.Namespaces {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n", ns.Namespace, ns.BaseKeys, ns.Translated, ns.Missing, ns.Extra, ns.Completion)
		}
		writeKeyList(&b, "Missing Keys", l.MissingKeys)
		writeKeyList(&b, "Extra Keys", l.ExtraKeys)
	}
	return b.String()
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, key := range keys {
		fmt.Fprintf(b, "- `%s`\n", key)
	}
}

// missingKeys lists the keys of base absent from target.
func missingKeys(base map[string]string, target map[string]string) []string {
	out := make([]string, 0)
	for key := range base {
		if _, ok := target[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func sortedSetKeys(entries map[string]struct{}) []string {
	out := make([]string, 0, len(entries))
	for key := range entries {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
