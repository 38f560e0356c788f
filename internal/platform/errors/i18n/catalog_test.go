package i18n

import "testing"

func TestGetCatalogMatchesLocale(t *testing.T) {
	base := GetCatalog("en-US")
	if base.Locale() != "en-US" {
		t.Fatalf("base locale = %q", base.Locale())
	}
	if GetCatalog("") != base || GetCatalog("tlh") != base {
		t.Fatal("expected fallback to the en-US catalog")
	}
	if got := GetCatalog("es-MX").Locale(); got != "es-ES" {
		t.Fatalf("es-MX resolved to %q, want es-ES", got)
	}
	if GetCatalog("es") != GetCatalog("es-ES") {
		t.Fatal("catalogs are cached per resolved locale")
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code":   "hello {{.Name}}",
		"broken": "{{ if .Name }}",
		"exec":   "{{ call .Name }}",
	})

	if got := cat.Format("unknown", nil); got != "unknown" {
		t.Fatalf("unknown = %q, want code", got)
	}
	if got := cat.Format("code", nil); got != "hello " {
		t.Fatalf("missing metadata = %q, want %q", got, "hello ")
	}
	if got := cat.Format("broken", map[string]string{"Name": "X"}); got != "{{ if .Name }}" {
		t.Fatalf("parse error = %q, want raw template", got)
	}
	if got := cat.Format("exec", map[string]string{"Name": "X"}); got != "{{ call .Name }}" {
		t.Fatalf("execute error = %q, want raw template", got)
	}
}

func TestEmbeddedLocalesTranslateEveryCode(t *testing.T) {
	for _, locale := range []string{"en-US", "es-ES"} {
		cat := GetCatalog(locale)
		if cat.Locale() != locale {
			t.Fatalf("locale = %q, want %q", cat.Locale(), locale)
		}
		for _, code := range KnownCodes {
			if got := cat.Format(code, nil); got == code {
				t.Fatalf("%s: missing translation for %s", locale, code)
			}
		}
	}
}

func TestFormatRendersMetadata(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", `Override heritage has an invalid value "atlantean"`},
		{"es-ES", `La opción heritage tiene un valor no válido "atlantean"`},
	}
	for _, tt := range tests {
		got := GetCatalog(tt.locale).Format(CodeGenomeInvalidOverride, map[string]string{"Field": "heritage", "Value": "atlantean"})
		if got != tt.want {
			t.Fatalf("%s format = %q, want %q", tt.locale, got, tt.want)
		}
	}
}
