package token

import (
	"sort"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Factory constructs a fresh token instance. Each occurrence of a
// reserved word in the source gets its own instance (tokens carry
// per-occurrence state: an absorbed argument, and in the case of For,
// loop position), so the catalog stores constructors, not singletons.
type Factory func() Node

var (
	mu        sync.RWMutex
	tokens    = map[string]Factory{} // statements, operators, constants
	variables = map[string]Factory{} // single-letter and named variables
	functions = map[string]Factory{} // keyed with a trailing '(' per spec.md §4.1
	sorted    []string               // tokens+variables+functions keys, longest first
	symbols   map[rune]bool          // first rune of every non-alphabetic key
	dirty     = true
)

// Register adds a statement or operator token under name.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	tokens[name] = f
	dirty = true
}

// RegisterVariable adds a variable token under name.
func RegisterVariable(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	variables[name] = f
	dirty = true
}

// RegisterFunction adds a function token. The catalog key carries the
// trailing '(' that spec.md §4.1 calls out, so that "sin(" outranks
// "sin" and is never confused with a bare identifier.
func RegisterFunction(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	functions[name+"("] = f
	dirty = true
}

func rebuildLocked() {
	if !dirty {
		return
	}
	sorted = sorted[:0]
	symbols = map[rune]bool{}
	add := func(m map[string]Factory) {
		for k := range m {
			sorted = append(sorted, k)
			first, _ := utf8.DecodeRuneInString(k)
			if !unicode.IsLetter(first) {
				symbols[first] = true
			}
		}
	}
	add(tokens)
	add(variables)
	add(functions)
	sort.Slice(sorted, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(sorted[i]), utf8.RuneCountInString(sorted[j])
		if li != lj {
			return li > lj
		}
		return sorted[i] < sorted[j]
	})
	dirty = false
}

// Keys returns every reserved-token key, sorted longest-first, so that
// the lexer's greedy longest-match scan tries multi-character tokens
// (">=", "->", "sin(", "randInt(") before their prefixes.
func Keys() []string {
	mu.Lock()
	defer mu.Unlock()
	rebuildLocked()
	out := make([]string, len(sorted))
	copy(out, sorted)
	return out
}

// IsSymbolStart reports whether r begins at least one non-alphabetic
// reserved token.
func IsSymbolStart(r rune) bool {
	mu.Lock()
	defer mu.Unlock()
	rebuildLocked()
	return symbols[r]
}

// New constructs a fresh instance of the reserved token registered
// under exactly this key (tokens, then variables, then functions).
func New(key string) (Node, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if f, ok := tokens[key]; ok {
		return f(), true
	}
	if f, ok := variables[key]; ok {
		return f(), true
	}
	if f, ok := functions[key]; ok {
		return f(), true
	}
	return nil, false
}

// MatchLongest greedily matches the longest reserved-token key that is
// a prefix of remaining, returning the constructed instance and the
// matched key's rune length. ok is false when nothing matches.
func MatchLongest(remaining string) (Node, int, bool) {
	mu.Lock()
	rebuildLocked()
	keys := sorted
	mu.Unlock()

	for _, k := range keys {
		if len(k) <= len(remaining) && remaining[:len(k)] == k {
			n, _ := New(k)
			return n, utf8.RuneCountInString(k), true
		}
	}
	return nil, 0, false
}
