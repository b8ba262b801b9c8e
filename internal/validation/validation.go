// Package validation holds the form checks shared by every console form.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest accepted password, counted in runes.
const MinPasswordLength = 6

// emailChar excludes @ and every Unicode space separator, not only the ASCII
// set matched by \s.
const emailChar = `[^\s\x{0B}\p{Zs}\x{2028}\x{2029}\x{FEFF}@]`

var emailPattern = regexp.MustCompile(`^` + emailChar + `+@` + emailChar + `+\.` + emailChar + `+$`)

// Message keys for field errors. They resolve through the i18n catalog.
const (
	KeyRequired      = "validation.required"
	KeyEmail         = "validation.email"
	KeyPassword      = "validation.password"
	KeyPasswordMatch = "validation.password_match"
	KeyRange         = "validation.range"
	KeyChoice        = "validation.choice"
	KeyURL           = "validation.url"
)

// Email reports whether s looks like local@domain.tld. It is a permissive
// structural check, not an RFC 5322 parser.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Password reports whether s has at least MinPasswordLength runes.
func Password(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// FieldErrors maps a form field name to a message key. The first failure
// recorded for a field wins.
type FieldErrors map[string]string

// Add records key for field unless the field already failed.
func (f FieldErrors) Add(field, key string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = key
}

// Has reports whether field failed.
func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Get returns the message key for field.
func (f FieldErrors) Get(field string) string {
	return f[field]
}

// Empty reports whether no field failed.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Required fails field when value is blank.
func (f FieldErrors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.Add(field, KeyRequired)
	}
}

// Email fails field when value is blank or not an email address.
func (f FieldErrors) Email(field, value string) {
	f.Required(field, value)
	if !f.Has(field) && !Email(strings.TrimSpace(value)) {
		f.Add(field, KeyEmail)
	}
}

// Password fails field when value is blank or too short.
func (f FieldErrors) Password(field, value string) {
	f.Required(field, value)
	if !f.Has(field) && !Password(value) {
		f.Add(field, KeyPassword)
	}
}

// Match fails field when value differs from other.
func (f FieldErrors) Match(field, value, other string) {
	f.Required(field, value)
	if !f.Has(field) && value != other {
		f.Add(field, KeyPasswordMatch)
	}
}

// IntRange fails field unless value parses as an integer in [min, max].
func (f FieldErrors) IntRange(field, value string, min, max int) {
	f.Required(field, value)
	if f.Has(field) {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < min || n > max {
		f.Add(field, KeyRange)
	}
}

// OneOf fails field unless value is one of choices.
func (f FieldErrors) OneOf(field, value string, choices ...string) {
	f.Required(field, value)
	if f.Has(field) {
		return
	}
	for _, choice := range choices {
		if value == choice {
			return
		}
	}
	f.Add(field, KeyChoice)
}
