// Package categories implements the (metadata key, metadata value)
// category filters used to restrict samples/tokens and to slice the
// driver's curves.
package categories

import (
	"strings"

	"types3go/internal/errs"
)

// Category is an optional (key, value) metadata restriction. The absent
// (zero-value) Category matches everything.
type Category struct {
	Key   string
	Value string
	set   bool
}

// Some builds a present Category.
func Some(key, value string) Category {
	return Category{Key: key, Value: value, set: true}
}

// None is the absent Category: it matches every sample.
var None = Category{}

// IsSome reports whether the category is present.
func (c Category) IsSome() bool {
	return c.set
}

// String renders a present Category as "key=value"; an absent one as
// the empty string.
func (c Category) String() string {
	if !c.set {
		return ""
	}
	return c.Key + "=" + c.Value
}

// Matches reports whether metadata satisfies c: absent categories match
// everything, present ones require metadata[c.Key] == c.Value.
func (c Category) Matches(metadata map[string]string) bool {
	if !c.set {
		return true
	}
	v, ok := metadata[c.Key]
	if !ok {
		return false
	}
	return v == c.Value
}

// ParseRestriction parses a "key=value" CLI argument into a Category. An
// empty string means "no restriction". Anything else must contain
// exactly one '=' separator.
func ParseRestriction(arg string) (Category, error) {
	if arg == "" {
		return None, nil
	}
	parts := strings.Split(arg, "=")
	if len(parts) != 2 {
		return Category{}, errs.NewInvalidArgument("restriction should be of the form 'key=value', got '%s'", arg)
	}
	return Some(parts[0], parts[1]), nil
}
