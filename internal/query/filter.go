// Package query implements the text + category filter shared by every list page.
package query

import (
	"strings"

	"iot-dashboard/internal/domain"
)

// All is the wire value of the "no category restriction" sentinel
const All = "all"

// Category either matches any value or exactly one
type Category[C comparable] struct {
	any   bool
	value C
}

// AnyCategory the "all" sentinel
func AnyCategory[C comparable]() Category[C] {
	return Category[C]{any: true}
}

// Only restricts to c
func Only[C comparable](c C) Category[C] {
	return Category[C]{value: c}
}

// IsAny reports whether the category is the sentinel
func (c Category[C]) IsAny() bool { return c.any }

// Value returns the restricted value; ok is false for the sentinel
func (c Category[C]) Value() (C, bool) {
	return c.value, !c.any
}

func (c Category[C]) matches(v C) bool {
	return c.any || c.value == v
}

// ParseCategory maps "" and "all" to AnyCategory, everything else goes through parse
func ParseCategory[C comparable](raw string, parse func(string) (C, error)) (Category[C], error) {
	if raw == "" || raw == All {
		return AnyCategory[C](), nil
	}
	v, err := parse(raw)
	if err != nil {
		return Category[C]{}, err
	}
	return Only(v), nil
}

// Spec describes how to match one record type
type Spec[T any, C comparable] struct {
	Fields   []func(T) string
	Category func(T) C
}

// Filter returns the records whose text fields contain text (case-insensitively) and whose
// category matches cat. The result is a new slice in input order; records is not modified.
func Filter[T any, C comparable](records []T, text string, cat Category[C], spec Spec[T, C]) []T {
	out := make([]T, 0, len(records))
	needle := strings.ToLower(text)
	for _, r := range records {
		if !cat.matches(spec.Category(r)) {
			continue
		}
		if needle != "" && !matchesText(r, needle, spec.Fields) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesText[T any](r T, needle string, fields []func(T) string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f(r)), needle) {
			return true
		}
	}
	return false
}

// DeviceSpec name, type and location; status as category
var DeviceSpec = Spec[domain.Device, domain.DeviceStatus]{
	Fields: []func(domain.Device) string{
		func(d domain.Device) string { return d.Name },
		func(d domain.Device) string { return d.Type },
		func(d domain.Device) string { return d.Location },
	},
	Category: func(d domain.Device) domain.DeviceStatus { return d.Status },
}

// UserSpec name and email; role as category
var UserSpec = Spec[domain.User, domain.Role]{
	Fields: []func(domain.User) string{
		func(u domain.User) string { return u.Name },
		func(u domain.User) string { return u.Email },
	},
	Category: func(u domain.User) domain.Role { return u.Role },
}
