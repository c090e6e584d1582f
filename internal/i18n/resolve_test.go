package i18n

import (
	"reflect"
	"sync"
	"testing"
)

func TestResolve_UnsuffixedFieldWins(t *testing.T) {
	// The unsuffixed field takes precedence even when a locale-suffixed
	// variant matches the requested locale. This ordering is deliberate.
	fields := map[string]interface{}{
		"title":    "X",
		"title_en": "Y",
	}
	if got := Resolve(fields, "title", "en"); got != "X" {
		t.Errorf("Resolve = %q, want %q", got, "X")
	}
}

func TestResolve_LocaleSuffix(t *testing.T) {
	fields := map[string]interface{}{
		"title_en": "Hello",
		"title_he": "שלום",
	}
	if got := Resolve(fields, "title", "en"); got != "Hello" {
		t.Errorf("Resolve(en) = %q, want %q", got, "Hello")
	}
	if got := Resolve(fields, "title", "he"); got != "שלום" {
		t.Errorf("Resolve(he) = %q, want %q", got, "שלום")
	}
}

func TestResolve_BaseLocale(t *testing.T) {
	fields := map[string]interface{}{"title_en": "Hello"}
	if got := Resolve(fields, "title", "en-US"); got != "Hello" {
		t.Errorf("Resolve(en-US) = %q, want %q", got, "Hello")
	}
}

func TestResolve_DefaultLocaleFallback(t *testing.T) {
	fields := map[string]interface{}{"title_he": "שלום"}
	if got := Resolve(fields, "title", "en"); got != "שלום" {
		t.Errorf("Resolve = %q, want default-locale fallback %q", got, "שלום")
	}
}

func TestResolve_Empty(t *testing.T) {
	if got := Resolve(map[string]interface{}{}, "title", "en"); got != "" {
		t.Errorf("Resolve on empty fields = %q, want empty", got)
	}
	if got := Resolve(nil, "title", "en"); got != "" {
		t.Errorf("Resolve on nil fields = %q, want empty", got)
	}
	fields := map[string]interface{}{"excerpt_fr": "Bonjour"}
	if got := Resolve(fields, "excerpt", "en"); got != "" {
		t.Errorf("Resolve with no matching variant = %q, want empty", got)
	}
}

func TestResolve_NilUnsuffixedFallsThrough(t *testing.T) {
	fields := map[string]interface{}{
		"title":    nil,
		"title_en": "Hello",
	}
	if got := Resolve(fields, "title", "en"); got != "Hello" {
		t.Errorf("Resolve = %q, want %q", got, "Hello")
	}
}

type testItem struct {
	lang string
	vis  []string
}

func (i testItem) AudienceLanguage() string     { return i.lang }
func (i testItem) AudienceVisibility() []string { return i.vis }

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		item   testItem
		locale string
		want   bool
	}{
		{"language match", testItem{lang: "en"}, "en", true},
		{"language match on base", testItem{lang: "en"}, "en-GB", true},
		{"language mismatch", testItem{lang: "he"}, "en", false},
		{"visibility contains", testItem{vis: []string{"he", "en"}}, "en", true},
		{"visibility missing", testItem{vis: []string{"he"}}, "en", false},
		{"no tags visible to all", testItem{}, "en", true},
		{"language wins over visibility", testItem{lang: "he", vis: []string{"en"}}, "en", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Visible(tt.item, tt.locale); got != tt.want {
				t.Errorf("Visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterVisible(t *testing.T) {
	items := []testItem{
		{lang: "en"},
		{lang: "he"},
		{vis: []string{"en"}},
		{},
	}
	got := FilterVisible(items, "en")
	want := []testItem{{lang: "en"}, {vis: []string{"en"}}, {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterVisible = %v, want %v", got, want)
	}
}

func TestSetDefaultLocale(t *testing.T) {
	t.Cleanup(func() { SetDefaultLocale("he") })

	SetDefaultLocale("en")
	fields := map[string]interface{}{"title_en": "Hello"}
	if got := Resolve(fields, "title", "fr"); got != "Hello" {
		t.Errorf("Resolve after override = %q, want %q", got, "Hello")
	}

	// Empty overrides are ignored.
	SetDefaultLocale("")
	if got := DefaultLocale(); got != "en" {
		t.Errorf("DefaultLocale after empty override = %q, want %q", got, "en")
	}
}

func TestDefaultLocaleConcurrentReload(t *testing.T) {
	t.Cleanup(func() { SetDefaultLocale("he") })

	fields := map[string]interface{}{"title_he": "שלום", "title_en": "Hello"}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				SetDefaultLocale("en")
				SetDefaultLocale("he")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := Resolve(fields, "title", "fr"); got == "" {
					t.Errorf("Resolve lost the default-locale fallback")
					return
				}
			}
		}()
	}
	wg.Wait()
}
