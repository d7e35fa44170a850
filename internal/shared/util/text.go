package util

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9']+`)

// NormalizeText converts an arbitrary answer value into plain text.
// Strings are trimmed, lists and sets are joined with single spaces, nil becomes "".
func NormalizeText(value any) string {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []string:
		return strings.Join(v, " ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, " ")
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, stringify(rv.Index(i).Interface()))
		}
		return strings.Join(parts, " ")
	case reflect.Map:
		// map[T]bool and map[T]struct{} are treated as sets of their keys.
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, stringify(k.Interface()))
		}
		sort.Strings(keys)
		return strings.Join(keys, " ")
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return NormalizeText(rv.Elem().Interface())
	}
	return strings.TrimSpace(stringify(value))
}

// Tokenize lowercases text and returns runs of letters, digits and apostrophes.
func Tokenize(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// TokenSet returns the distinct tokens of text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func stringify(value any) string {
	if value == nil {
		return "None"
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
