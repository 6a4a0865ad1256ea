package forms

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Required fails when the field is absent or empty.
func Required(message string) Check {
	return func(f *Field, fm *Form) error {
		if !f.Present || f.Str == "" {
			return errors.New(message)
		}
		return nil
	}
}

// Length bounds the rune count of a supplied value; absent values pass.
func Length(min, max int, message string) Check {
	return func(f *Field, fm *Form) error {
		if f.Str == "" {
			return nil
		}
		if n := utf8.RuneCountInString(f.Str); n < min || n > max {
			return errors.New(message)
		}
		return nil
	}
}

// Matches requires a supplied value to match the pattern in full.
func Matches(pattern *regexp.Regexp, message string) Check {
	return func(f *Field, fm *Form) error {
		if f.Str == "" {
			return nil
		}
		if !pattern.MatchString(f.Str) {
			return errors.New(message)
		}
		return nil
	}
}

// IsEmail requires a supplied value to look like an email address.
func IsEmail(message string) Check {
	return func(f *Field, fm *Form) error {
		if f.Str == "" {
			return nil
		}
		if !emailRegex.MatchString(f.Str) {
			return errors.New(message)
		}
		return nil
	}
}

// IsURL requires a supplied value to be an absolute http(s) URL.
func IsURL(message string) Check {
	return func(f *Field, fm *Form) error {
		if f.Str == "" {
			return nil
		}
		u, err := url.ParseRequestURI(f.Str)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return errors.New(message)
		}
		return nil
	}
}

// EqualTo requires the value to equal another field's value.
func EqualTo(other, message string) Check {
	return func(f *Field, fm *Form) error {
		peer := fm.Field(other)
		if peer == nil || f.Str != peer.Str {
			return errors.New(message)
		}
		return nil
	}
}

// IsInt parses the value into the field's Int slot; absent values pass.
func IsInt(message string) Check {
	return func(f *Field, fm *Form) error {
		if f.Str == "" {
			return nil
		}
		n, err := strconv.Atoi(f.Str)
		if err != nil {
			return errors.New(message)
		}
		f.Int = n
		return nil
	}
}
