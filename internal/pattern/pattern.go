// Package pattern compiles exclusion and override patterns into ordered,
// first-match-wins lookup tables.
package pattern

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/override"
)

// cacheSize bounds the memoized lookups per table.
const cacheSize = 8192

// Kind names the source a pattern came from.
type Kind string

const (
	KindExcludedID     Kind = "excluded_ids"
	KindExcludedPlugin Kind = "excluded_plugins"
	KindLight          Kind = "light_overrides"
	KindAmbient        Kind = "ambient_overrides"
)

// Dropped describes a pattern that failed to compile.
type Dropped struct {
	Kind    Kind
	Pattern string
	Err     error
}

type compiled[T any] struct {
	re    *regexp.Regexp
	value T
}

// Table is the compiled form of a configuration's patterns. It is derived
// data and is never serialized. Lookups are safe for concurrent use.
type Table struct {
	excludedIDs     []*regexp.Regexp
	excludedPlugins []*regexp.Regexp
	lights          []compiled[override.LightOverride]
	ambients        []compiled[override.AmbientOverride]
	dropped         []Dropped

	// memo maps a kind-prefixed identity to the index of the matching entry, or -1.
	memo *lru.Cache[string, int]
}

// Compile builds a Table from doc. The light and ambient override tables of
// doc are consumed and left empty; callers that need to serialize doc must do
// so first. Patterns that fail to compile are dropped and reported by
// Table.Dropped.
func Compile(doc *config.Document) *Table {
	t := &Table{}
	memo, err := lru.New[string, int](cacheSize)
	if err == nil {
		t.memo = memo
	}

	for _, p := range doc.ExcludedIDs {
		if re, ok := t.compile(KindExcludedID, caseless(p), p); ok {
			t.excludedIDs = append(t.excludedIDs, re)
		}
	}
	for _, p := range doc.ExcludedPlugins {
		// File names are matched lower-cased, so the pattern is too.
		if re, ok := t.compile(KindExcludedPlugin, strings.ToLower(p), p); ok {
			t.excludedPlugins = append(t.excludedPlugins, re)
		}
	}
	for _, e := range doc.LightOverrides.Take() {
		if re, ok := t.compile(KindLight, caseless(e.Pattern), e.Pattern); ok {
			t.lights = append(t.lights, compiled[override.LightOverride]{re: re, value: e.Value})
		}
	}
	for _, e := range doc.AmbientOverrides.Take() {
		if re, ok := t.compile(KindAmbient, caseless(e.Pattern), e.Pattern); ok {
			t.ambients = append(t.ambients, compiled[override.AmbientOverride]{re: re, value: e.Value})
		}
	}
	return t
}

func caseless(p string) string {
	return "(?i)" + p
}

func (t *Table) compile(kind Kind, expr, source string) (*regexp.Regexp, bool) {
	re, err := regexp.Compile(expr)
	if err != nil {
		t.dropped = append(t.dropped, Dropped{Kind: kind, Pattern: source, Err: err})
		return nil, false
	}
	return re, true
}

// Dropped returns the patterns that failed to compile, in declaration order.
func (t *Table) Dropped() []Dropped {
	return append([]Dropped(nil), t.dropped...)
}

// Counts returns the number of compiled patterns per kind.
func (t *Table) Counts() map[Kind]int {
	return map[Kind]int{
		KindExcludedID:     len(t.excludedIDs),
		KindExcludedPlugin: len(t.excludedPlugins),
		KindLight:          len(t.lights),
		KindAmbient:        len(t.ambients),
	}
}

// MatchLight returns the override of the first light pattern matching id.
func (t *Table) MatchLight(id string) (*override.LightOverride, bool) {
	i := t.lookup(KindLight, strings.ToLower(id), len(t.lights), func(i int) *regexp.Regexp {
		return t.lights[i].re
	})
	if i < 0 {
		return nil, false
	}
	return &t.lights[i].value, true
}

// MatchAmbient returns the override of the first ambient pattern matching id.
func (t *Table) MatchAmbient(id string) (*override.AmbientOverride, bool) {
	i := t.lookup(KindAmbient, strings.ToLower(id), len(t.ambients), func(i int) *regexp.Regexp {
		return t.ambients[i].re
	})
	if i < 0 {
		return nil, false
	}
	return &t.ambients[i].value, true
}

// ExcludesID reports whether any id exclusion pattern matches id.
func (t *Table) ExcludesID(id string) bool {
	return t.lookup(KindExcludedID, strings.ToLower(id), len(t.excludedIDs), func(i int) *regexp.Regexp {
		return t.excludedIDs[i]
	}) >= 0
}

// ExcludesPlugin reports whether any plugin exclusion pattern matches the
// package file name.
func (t *Table) ExcludesPlugin(name string) bool {
	return t.lookup(KindExcludedPlugin, strings.ToLower(name), len(t.excludedPlugins), func(i int) *regexp.Regexp {
		return t.excludedPlugins[i]
	}) >= 0
}

// lookup returns the index of the first pattern matching s, or -1.
func (t *Table) lookup(kind Kind, s string, n int, at func(int) *regexp.Regexp) int {
	if n == 0 {
		return -1
	}
	key := string(kind) + "\x00" + s
	if t.memo != nil {
		if i, ok := t.memo.Get(key); ok {
			return i
		}
	}

	found := -1
	for i := 0; i < n; i++ {
		if at(i).MatchString(s) {
			found = i
			break
		}
	}

	if t.memo != nil {
		t.memo.Add(key, found)
	}
	return found
}
