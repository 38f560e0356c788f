package i18nstatus

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	i18ncatalog "github.com/louisbranch/oripheon/internal/platform/i18n/catalog"
)

func testBundle(t *testing.T) *i18ncatalog.Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"locales/en-US/errors.yaml": {Data: []byte("locale: en-US\nnamespace: errors\nmessages:\n  A: a\n  B: b\n")},
		"locales/en-US/genome.yaml": {Data: []byte("locale: en-US\nnamespace: genome\nmessages:\n  genome.hero: Hero\n")},
		"locales/fr-FR/errors.yaml": {Data: []byte("locale: fr-FR\nnamespace: errors\nmessages:\n  A: a\n  C: c\n")},
	}
	bundle, err := i18ncatalog.LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return bundle
}

func TestBuildCountsMissingAndExtraKeys(t *testing.T) {
	rep, err := Build(testBundle(t), "en-US")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(rep.Locales) != 2 {
		t.Fatalf("locales = %d, want 2", len(rep.Locales))
	}
	fr := rep.Locales[1]
	if fr.Locale != "fr-FR" || fr.Translated != 1 || fr.Missing != 2 || fr.Extra != 1 {
		t.Fatalf("fr-FR status = %+v", fr)
	}
	if diff := cmp.Diff([]string{"B", "genome.hero"}, fr.MissingKeys); diff != "" {
		t.Fatalf("missing keys (-want +got):\n%s", diff)
	}
	if fr.Completion != 33.3 {
		t.Fatalf("completion = %v, want 33.3", fr.Completion)
	}
	want := []NamespaceStatus{
		{Namespace: "errors", BaseKeys: 2, Translated: 1, Missing: 1, Extra: 1, Completion: 50},
		{Namespace: "genome", BaseKeys: 1, Missing: 1, Completion: 0},
	}
	if diff := cmp.Diff(want, fr.Namespaces); diff != "" {
		t.Fatalf("namespaces (-want +got):\n%s", diff)
	}
	if rep.Complete() {
		t.Fatal("report should be incomplete")
	}
}

func TestBuildRequiresBaseLocale(t *testing.T) {
	if _, err := Build(testBundle(t), "de-DE"); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestEmbeddedCatalogsAreComplete(t *testing.T) {
	bundle, err := i18ncatalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	rep, err := Build(bundle, i18ncatalog.BaseLocale)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, l := range rep.Locales {
		if l.Missing > 0 {
			t.Fatalf("%s is missing %v", l.Locale, l.MissingKeys)
		}
	}
}

func TestMarkdownListsKeys(t *testing.T) {
	rep, err := Build(testBundle(t), "en-US")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	md := rep.Markdown()
	for _, want := range []string{"Base locale: `en-US`", "| `fr-FR` | 3 | 1 | 2 | 1 | 33.3% |", "### Missing Keys", "- `genome.hero`", "### Extra Keys", "- `C`"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
