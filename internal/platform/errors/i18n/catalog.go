// Package i18n renders user-facing error messages from the "errors"
// namespace of the locale catalogs.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/oripheon/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

const namespace = "errors"

// Catalog holds the compiled message templates of one locale.
type Catalog struct {
	locale    string
	templates map[Code]*template.Template
	raw       map[Code]string
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}
)

// GetCatalog returns the catalog for the closest available locale, falling
// back to the base locale. Catalogs are built once per resolved locale.
func GetCatalog(locale string) *Catalog {
	resolved, _ := i18ncatalog.Default().Match(strings.TrimSpace(locale))

	catalogsMu.RLock()
	cat, ok := catalogs[resolved]
	catalogsMu.RUnlock()
	if ok {
		return cat
	}

	built := NewCatalog(resolved, i18ncatalog.Default().NamespaceMessages(resolved, namespace))
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if existing, ok := catalogs[resolved]; ok {
		return existing
	}
	catalogs[resolved] = built
	return built
}

// NewCatalog compiles messages for locale. A message that does not parse is
// kept and rendered verbatim.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	c := &Catalog{
		locale:    locale,
		templates: make(map[Code]*template.Template, len(messages)),
		raw:       make(map[Code]string, len(messages)),
	}
	for code, msg := range messages {
		c.raw[code] = msg
		if t, err := template.New(code).Option("missingkey=zero").Parse(msg); err == nil {
			c.templates[code] = t
		}
	}
	return c
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code with metadata. Unknown codes render as
// the code itself and missing metadata keys render empty.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	raw, ok := c.raw[code]
	if !ok {
		return code
	}
	t, ok := c.templates[code]
	if !ok {
		return raw
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return raw
	}
	return buf.String()
}
