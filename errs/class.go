package errs

import (
	"errors"

	"github.com/napalu/slashopt/i18n"
)

// Class sorts errors by who has to act on them.
type Class int

const (
	// ClassInternal marks bugs and unexpected transport payloads. Unknown
	// errors fall into this class.
	ClassInternal Class = iota
	// ClassUser marks invalid input from the invoking user.
	ClassUser
	// ClassConfig marks schema, tag or localization mistakes found at build time.
	ClassConfig
)

func (c Class) String() string {
	switch c {
	case ClassUser:
		return "user"
	case ClassConfig:
		return "config"
	default:
		return "internal"
	}
}

var userErrors = []*i18n.TrError{
	ErrInvalidType,
	ErrOutOfBounds,
	ErrLengthOutOfBounds,
	ErrInvalidChoice,
	ErrInvalidEntitySubtype,
	ErrNoPartialMemberData,
	ErrInvalidTimestamp,
	ErrInvalidOption,
	ErrMalformedToken,
	ErrInvalidCustomID,
	ErrUnknownTag,
	ErrUnknownCommand,
}

var configErrors = []*i18n.TrError{
	ErrNameLength,
	ErrNameCharset,
	ErrNameNotLowercase,
	ErrDescriptionLength,
	ErrUnknownLocale,
	ErrDuplicateLocale,
	ErrMalformedDocComment,
	ErrOptionMismatch,
	ErrUnknownLocalizedOption,
	ErrDuplicateCommand,
	ErrDuplicateChoice,
	ErrDuplicateOption,
	ErrAmbiguousSubcommand,
	ErrContradictoryGroupMarker,
	ErrGroupMarkerFields,
	ErrEmptyGroup,
	ErrInvalidBounds,
	ErrAutocompleteChoice,
	ErrInvalidChoiceSet,
	ErrStubInSchema,
	ErrInvalidTagFormat,
	ErrInvalidTagAttribute,
	ErrUnknownTagAttribute,
	ErrUnsupportedFieldType,
	ErrInvalidDocument,
	ErrUnsupportedFormat,
	ErrLoadingFile,
	ErrCustomIDTooLong,
	ErrDuplicateTag,
	ErrInvalidSchemaDocument,
	ErrRequiredAfterOptional,
	ErrTooManyOptions,
}

var internalErrors = []*i18n.TrError{
	ErrMissingOption,
	ErrMissingPayload,
	ErrNotFocusable,
	ErrNilDestination,
	ErrUnresolvedVariant,
	ErrInternal,
	ErrHandlerTypeMismatch,
}

// ClassOf returns the class of err. A joined error is internal as soon as one
// of its parts is internal, and a user error only if every part is one.
func ClassOf(err error) Class {
	if err == nil {
		return ClassInternal
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		parts := joined.Unwrap()
		if len(parts) == 0 {
			return ClassInternal
		}
		class := ClassOf(parts[0])
		for _, part := range parts[1:] {
			switch c := ClassOf(part); {
			case c == ClassInternal:
				return ClassInternal
			case c != class:
				class = ClassConfig
			}
		}
		return class
	}

	switch {
	case isAny(err, internalErrors):
		return ClassInternal
	case isAny(err, userErrors):
		return ClassUser
	case isAny(err, configErrors):
		return ClassConfig
	default:
		return ClassInternal
	}
}

// IsUser reports whether err is caused by user input only.
func IsUser(err error) bool {
	return err != nil && ClassOf(err) == ClassUser
}

func isAny(err error, group []*i18n.TrError) bool {
	for _, target := range group {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
