package activerecord

import (
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var rules = ruleset()

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{"ID", "SQL", "URL", "UUID", "API", "HTTP", "JSON"} {
		rules.AddAcronym(w)
	}
	return rules
}

// Snake converts the given name into snake_case, e.g. "BlogPost" becomes
// "blog_post". A separator is never emitted at the start of the result.
func Snake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Pascal converts the given snake_case name into PascalCase,
// e.g. "blog_post" becomes "BlogPost".
func Pascal(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, "")
}

// Camel converts the given snake_case name into camelCase,
// e.g. "blog_post" becomes "blogPost".
func Camel(s string) string {
	p := Pascal(s)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// BaseName returns the simple type name of the given value, with any
// package qualifier and pointer indirection stripped.
func BaseName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// ForeignKey derives the conventional foreign-key column for the given
// type name, e.g. "BlogPost" becomes "blog_post_id".
func ForeignKey(name string) string {
	return Snake(name) + "_id"
}

// JoiningTable derives the conventional many-to-many join table for the
// two given type names: both snake-cased, sorted, joined with "_",
// e.g. ("Role", "User") becomes "role_user".
func JoiningTable(a, b string) string {
	names := []string{Snake(a), Snake(b)}
	sort.Strings(names)
	return strings.Join(names, "_")
}

// TableName derives the conventional table for the given type name:
// the pluralized name, snake-cased, e.g. "BlogPost" becomes "blog_posts".
func TableName(name string) string {
	return Snake(rules.Pluralize(name))
}
