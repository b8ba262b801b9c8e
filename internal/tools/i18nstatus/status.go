// Package i18nstatus reports translation coverage of the console catalogs.
package i18nstatus

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	i18ncatalog "github.com/myhome/console/internal/platform/i18n/catalog"
)

// Report summarizes every locale against the base locale.
type Report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []LocaleStatus `json:"locales"`
}

// LocaleStatus is the coverage of one locale.
type LocaleStatus struct {
	Locale      string   `json:"locale"`
	BaseKeys    int      `json:"base_keys"`
	Translated  int      `json:"translated"`
	Missing     int      `json:"missing"`
	Extra       int      `json:"extra"`
	Completion  float64  `json:"completion"`
	MissingKeys []string `json:"missing_keys"`
	ExtraKeys   []string `json:"extra_keys"`
}

// Complete reports whether every locale translates every base key.
func (r Report) Complete() bool {
	for _, locale := range r.Locales {
		if locale.Missing > 0 {
			return false
		}
	}
	return true
}

// Build compares each loaded locale with baseLocale.
func Build(bundle *i18ncatalog.Bundle, baseLocale string) (Report, error) {
	base := bundle.Keys(baseLocale)
	if len(base) == 0 {
		return Report{}, fmt.Errorf("base locale %q has no messages", baseLocale)
	}
	baseSet := toSet(base)

	rep := Report{BaseLocale: baseLocale}
	for _, locale := range bundle.Locales() {
		keys := bundle.Keys(locale)
		keySet := toSet(keys)
		missing := difference(base, keySet)
		extra := difference(keys, baseSet)
		translated := len(base) - len(missing)
		rep.Locales = append(rep.Locales, LocaleStatus{
			Locale:      locale,
			BaseKeys:    len(base),
			Translated:  translated,
			Missing:     len(missing),
			Extra:       len(extra),
			Completion:  percent(translated, len(base)),
			MissingKeys: missing,
			ExtraKeys:   extra,
		})
	}
	sort.Slice(rep.Locales, func(i, j int) bool {
		return rep.Locales[i].Locale < rep.Locales[j].Locale
	})
	return rep, nil
}

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteMarkdown writes rep as a translator-facing markdown table.
func WriteMarkdown(w io.Writer, rep Report) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	printf("# I18n Status\n\nBase locale: `%s`.\n\n", rep.BaseLocale)
	printf("| Locale | Base Keys | Translated | Missing | Extra | Completion |\n")
	printf("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		printf("| `%s` | %d | %d | %d | %d | %.1f%% |\n", locale.Locale, locale.BaseKeys, locale.Translated, locale.Missing, locale.Extra, locale.Completion)
	}
	for _, locale := range rep.Locales {
		if len(locale.MissingKeys) == 0 && len(locale.ExtraKeys) == 0 {
			continue
		}
		printf("\n## Locale: `%s`\n", locale.Locale)
		writeKeyList(printf, "Missing Keys", locale.MissingKeys)
		writeKeyList(printf, "Extra Keys", locale.ExtraKeys)
	}
	return err
}

func writeKeyList(printf func(string, ...any), title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	printf("\n### %s\n\n", title)
	for _, key := range keys {
		printf("- `%s`\n", key)
	}
}

func toSet(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		out[key] = struct{}{}
	}
	return out
}

// difference returns the keys absent from other, in input order.
func difference(keys []string, other map[string]struct{}) []string {
	out := make([]string, 0)
	for _, key := range keys {
		if _, ok := other[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
