// Package catalog loads the embedded locale message bundles and registers
// them with x/text/message so printers can resolve keys per locale.
//
// Files live at locales/<locale>/<namespace>.yaml. Dotted keys must start
// with their file's namespace ("genome.epithet.hero" lives in genome.yaml)
// and a key may appear only once per locale.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other locale is matched against.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// LocaleCatalog stores all messages for one locale, grouped by namespace.
type LocaleCatalog struct {
	Locale     string
	Tag        language.Tag
	Namespaces map[string]map[string]string
	Messages   map[string]string
}

// Bundle is a set of locale catalogs.
type Bundle struct {
	locales map[string]*LocaleCatalog
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads every locales/*/*.yaml file in fsys. The base locale
// must be present.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	slices.Sort(paths)

	bundle := &Bundle{locales: map[string]*LocaleCatalog{}}
	for _, p := range paths {
		file, err := readCatalogFile(fsys, p)
		if err != nil {
			return nil, err
		}
		if err := bundle.add(p, file); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func readCatalogFile(fsys fs.FS, p string) (catalogFile, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return catalogFile{}, fmt.Errorf("read catalog %s: %w", p, err)
	}
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return catalogFile{}, fmt.Errorf("parse catalog %s: %w", p, err)
	}
	return file, nil
}

// add merges one file into the bundle after checking it against its path.
func (b *Bundle) add(p string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	namespace := strings.TrimSpace(file.Namespace)
	switch {
	case locale == "":
		return fmt.Errorf("locale is required")
	case locale != path.Base(path.Dir(p)):
		return fmt.Errorf("locale %q must match its directory", locale)
	case namespace == "":
		return fmt.Errorf("namespace is required")
	case namespace != strings.TrimSuffix(path.Base(p), path.Ext(p)):
		return fmt.Errorf("namespace %q must match its filename", namespace)
	case len(file.Messages) == 0:
		return fmt.Errorf("messages map is required")
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("parse locale tag %q: %w", locale, err)
	}

	lc, ok := b.locales[locale]
	if !ok {
		lc = &LocaleCatalog{
			Locale:     locale,
			Tag:        tag,
			Namespaces: map[string]map[string]string{},
			Messages:   map[string]string{},
		}
		b.locales[locale] = lc
	}
	if _, exists := lc.Namespaces[namespace]; exists {
		return fmt.Errorf("namespace %q already defined for %s", namespace, locale)
	}

	scoped := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("message key cannot be blank")
		}
		if prefix, _, dotted := strings.Cut(key, "."); dotted && prefix != namespace {
			return fmt.Errorf("key %q belongs to the %s namespace", key, prefix)
		}
		if _, exists := lc.Messages[key]; exists {
			return fmt.Errorf("duplicate key %q in %s", key, locale)
		}
		lc.Messages[key] = value
		scoped[key] = value
	}
	lc.Namespaces[namespace] = scoped
	return nil
}

// Register installs every message with x/text/message under the locale's
// tag and, when different, its bare language tag.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		lc := b.locales[locale]
		tags := []language.Tag{lc.Tag}
		if base, conf := lc.Tag.Base(); conf != language.No {
			if bare, err := language.Parse(base.String()); err == nil && bare.String() != lc.Tag.String() {
				tags = append(tags, bare)
			}
		}
		for _, key := range slices.Sorted(maps.Keys(lc.Messages)) {
			for _, tag := range tags {
				if err := message.SetString(tag, key, lc.Messages[key]); err != nil {
					return fmt.Errorf("register %s/%s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// Match resolves a requested locale or Accept-Language value to the closest
// available locale, falling back to BaseLocale. The returned tag is the
// catalog's own tag.
func (b *Bundle) Match(requested string) (string, language.Tag) {
	base := language.MustParse(BaseLocale)
	if b == nil {
		return BaseLocale, base
	}
	// The base locale goes first so the matcher falls back to it.
	supported := []language.Tag{base}
	for _, locale := range b.Locales() {
		if locale != BaseLocale {
			supported = append(supported, b.locales[locale].Tag)
		}
	}

	desired, _, err := language.ParseAcceptLanguage(strings.TrimSpace(requested))
	if err != nil || len(desired) == 0 {
		return BaseLocale, base
	}
	_, index, confidence := language.NewMatcher(supported).Match(desired...)
	if confidence == language.No {
		return BaseLocale, base
	}
	tag := supported[index]
	return tag.String(), tag
}

// HasLocale reports whether the bundle defines locale exactly.
func (b *Bundle) HasLocale(locale string) bool {
	return b.catalog(locale) != nil
}

// Locales returns the sorted locale identifiers.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.locales))
}

// LocaleMessages returns a copy of every message of locale.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	lc := b.catalog(locale)
	if lc == nil {
		return map[string]string{}
	}
	return maps.Clone(lc.Messages)
}

// Namespaces returns the sorted namespaces defined for a locale.
func (b *Bundle) Namespaces(locale string) []string {
	lc := b.catalog(locale)
	if lc == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(lc.Namespaces))
}

// NamespaceMessages returns a copy of one namespace of locale.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	lc := b.catalog(locale)
	if lc == nil {
		return map[string]string{}
	}
	messages, ok := lc.Namespaces[strings.TrimSpace(namespace)]
	if !ok {
		return map[string]string{}
	}
	return maps.Clone(messages)
}

func (b *Bundle) catalog(locale string) *LocaleCatalog {
	if b == nil {
		return nil
	}
	return b.locales[strings.TrimSpace(locale)]
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}
