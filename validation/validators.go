// Package validation checks the names and descriptions sent to the platform
// when commands are registered.
package validation

import (
	"unicode"
	"unicode/utf8"

	"github.com/napalu/slashopt/errs"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MaxNameLength        = 32
	MaxDescriptionLength = 100
)

// ValidatorFunc validates a string value and returns an error if invalid
type ValidatorFunc func(value string) error

// All combines multiple validators - all must pass
func All(validators ...ValidatorFunc) ValidatorFunc {
	return func(value string) error {
		for _, validator := range validators {
			if err := validator(value); err != nil {
				return err
			}
		}
		return nil
	}
}

// NameLength checks that value has between 1 and 32 runes.
func NameLength() ValidatorFunc {
	return func(value string) error {
		if n := utf8.RuneCountInString(value); n < 1 || n > MaxNameLength {
			return errs.ErrNameLength.WithArgs(value, n)
		}
		return nil
	}
}

// NameCharset allows letters, numbers, hyphen, underscore and apostrophe plus
// every rune of the Devanagari and Thai scripts, whose vowel signs are not letters.
func NameCharset() ValidatorFunc {
	return func(value string) error {
		for _, r := range value {
			if !isNameRune(r) {
				return errs.ErrNameCharset.WithArgs(value, string(r))
			}
		}
		return nil
	}
}

// Lowercase rejects values that change under lowercasing.
func Lowercase() ValidatorFunc {
	return func(value string) error {
		// a Caser is stateful, so one is built per call
		if cases.Lower(language.Und).String(value) != value {
			return errs.ErrNameNotLowercase.WithArgs(value)
		}
		return nil
	}
}

// Name validates a command, option or localized name.
func Name() ValidatorFunc {
	return All(NameLength(), NameCharset(), Lowercase())
}

// Description validates a description: between 1 and 100 runes.
func Description() ValidatorFunc {
	return func(value string) error {
		if n := utf8.RuneCountInString(value); n < 1 || n > MaxDescriptionLength {
			return errs.ErrDescriptionLength.WithArgs(value, n)
		}
		return nil
	}
}

// ValidateName is shorthand for Name()(name).
func ValidateName(name string) error {
	return nameValidator(name)
}

// ValidateDescription is shorthand for Description()(description).
func ValidateDescription(description string) error {
	return descriptionValidator(description)
}

var (
	nameValidator        = Name()
	descriptionValidator = Description()
)

func isNameRune(r rune) bool {
	switch {
	case r == '-', r == '_', r == '\'':
		return true
	case unicode.IsLetter(r), unicode.IsNumber(r):
		return true
	case unicode.In(r, unicode.Devanagari, unicode.Thai):
		return true
	}

	return false
}
