// Package i18n holds the static English and Farsi string tables.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"iot-dashboard/internal/chat"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Supported locale codes
const (
	English = "en"
	Farsi   = "fa"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Table one locale file
type Table struct {
	Name      string            `yaml:"name"`
	Direction string            `yaml:"direction"`
	Strings   map[string]string `yaml:"strings"`
	Chat      chat.Script       `yaml:"chat"`
}

// Catalog every loaded locale, keyed by code
type Catalog struct {
	fallback string
	codes    []string
	tables   map[string]*Table
	matcher  language.Matcher
}

// Load reads the embedded tables and checks that every locale has the same keys.
// fallback must be one of the loaded locales.
func Load(fallback string) (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}

	tables := make(map[string]*Table, len(entries))
	for _, e := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		var t Table
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", e.Name(), err)
		}
		tables[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = &t
	}
	return newCatalog(tables, fallback)
}

func newCatalog(tables map[string]*Table, fallback string) (*Catalog, error) {
	if _, ok := tables[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q not loaded", fallback)
	}
	if err := checkParity(tables, fallback); err != nil {
		return nil, err
	}

	// fallback first so the matcher prefers it on ties
	codes := []string{fallback}
	for code := range tables {
		if code != fallback {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes[1:])

	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid locale code %q: %w", code, err)
		}
		tags = append(tags, tag)
	}

	return &Catalog{
		fallback: fallback,
		codes:    codes,
		tables:   tables,
		matcher:  language.NewMatcher(tags),
	}, nil
}

func checkParity(tables map[string]*Table, ref string) error {
	base := tables[ref]
	for code, t := range tables {
		if code == ref {
			continue
		}
		for k := range base.Strings {
			if _, ok := t.Strings[k]; !ok {
				return fmt.Errorf("locale %s: missing key %q", code, k)
			}
		}
		for k := range t.Strings {
			if _, ok := base.Strings[k]; !ok {
				return fmt.Errorf("locale %s: unexpected key %q", code, k)
			}
		}
		if len(t.Chat.Rules) != len(base.Chat.Rules) {
			return fmt.Errorf("locale %s: %d chat rules, want %d", code, len(t.Chat.Rules), len(base.Chat.Rules))
		}
		for i, r := range base.Chat.Rules {
			if t.Chat.Rules[i].Name != r.Name {
				return fmt.Errorf("locale %s: chat rule %d is %q, want %q", code, i, t.Chat.Rules[i].Name, r.Name)
			}
		}
		if t.Chat.Greeting == "" || t.Chat.Fallback == "" {
			return fmt.Errorf("locale %s: chat greeting and fallback are required", code)
		}
	}
	return nil
}

// Locales loaded codes, fallback first
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.codes...)
}

// Supports reports whether code is loaded
func (c *Catalog) Supports(code string) bool {
	_, ok := c.tables[code]
	return ok
}

// Fallback default locale
func (c *Catalog) Fallback() string { return c.fallback }

// Negotiate picks a locale for an Accept-Language header
func (c *Catalog) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.codes[idx]
}

func (c *Catalog) table(locale string) *Table {
	if t, ok := c.tables[locale]; ok {
		return t
	}
	return c.tables[c.fallback]
}

// Text looks key up in locale. Unknown locales use the fallback; unknown keys return the key.
func (c *Catalog) Text(locale, key string) string {
	if s, ok := c.table(locale).Strings[key]; ok {
		return s
	}
	return key
}

// Direction "ltr" or "rtl"
func (c *Catalog) Direction(locale string) string {
	return c.table(locale).Direction
}

// ChatScript assistant greeting and rules for locale
func (c *Catalog) ChatScript(locale string) chat.Script {
	return c.table(locale).Chat
}

// RelativeTime formats how long ago t was, relative to now
func (c *Catalog) RelativeTime(locale string, now, t time.Time) string {
	mins := int(now.Sub(t) / time.Minute)
	switch {
	case mins < 1:
		return c.Text(locale, "time.justNow")
	case mins < 60:
		return fmt.Sprintf(c.Text(locale, "time.minutesAgo"), mins)
	case mins < 24*60:
		return fmt.Sprintf(c.Text(locale, "time.hoursAgo"), mins/60)
	}
	return fmt.Sprintf(c.Text(locale, "time.daysAgo"), mins/(24*60))
}
