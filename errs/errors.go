package errs

import (
	"sync"

	"github.com/napalu/slashopt/i18n"
)

// Resolution errors
var (
	ErrInvalidType          = i18n.NewError(ErrInvalidTypeKey)
	ErrOutOfBounds          = i18n.NewError(ErrOutOfBoundsKey)
	ErrLengthOutOfBounds    = i18n.NewError(ErrLengthOutOfBoundsKey)
	ErrInvalidChoice        = i18n.NewError(ErrInvalidChoiceKey)
	ErrInvalidEntitySubtype = i18n.NewError(ErrInvalidEntitySubtypeKey)
	ErrNoPartialMemberData  = i18n.NewError(ErrNoPartialMemberDataKey)
	ErrInvalidTimestamp     = i18n.NewError(ErrInvalidTimestampKey)
	ErrInvalidOption        = i18n.NewError(ErrInvalidOptionKey)
	ErrMalformedToken       = i18n.NewError(ErrMalformedTokenKey)
	ErrInvalidCustomID      = i18n.NewError(ErrInvalidCustomIDKey)
	ErrUnknownTag           = i18n.NewError(ErrUnknownTagKey)
	ErrUnknownCommand       = i18n.NewError(ErrUnknownCommandKey)
)

// Configuration errors
var (
	ErrNameLength               = i18n.NewError(ErrNameLengthKey)
	ErrNameCharset              = i18n.NewError(ErrNameCharsetKey)
	ErrNameNotLowercase         = i18n.NewError(ErrNameNotLowercaseKey)
	ErrDescriptionLength        = i18n.NewError(ErrDescriptionLengthKey)
	ErrUnknownLocale            = i18n.NewError(ErrUnknownLocaleKey)
	ErrDuplicateLocale          = i18n.NewError(ErrDuplicateLocaleKey)
	ErrMalformedDocComment      = i18n.NewError(ErrMalformedDocCommentKey)
	ErrOptionMismatch           = i18n.NewError(ErrOptionMismatchKey)
	ErrUnknownLocalizedOption   = i18n.NewError(ErrUnknownLocalizedOptionKey)
	ErrDuplicateCommand         = i18n.NewError(ErrDuplicateCommandKey)
	ErrDuplicateChoice          = i18n.NewError(ErrDuplicateChoiceKey)
	ErrDuplicateOption          = i18n.NewError(ErrDuplicateOptionKey)
	ErrAmbiguousSubcommand      = i18n.NewError(ErrAmbiguousSubcommandKey)
	ErrContradictoryGroupMarker = i18n.NewError(ErrContradictoryGroupMarkerKey)
	ErrGroupMarkerFields        = i18n.NewError(ErrGroupMarkerFieldsKey)
	ErrEmptyGroup               = i18n.NewError(ErrEmptyGroupKey)
	ErrInvalidBounds            = i18n.NewError(ErrInvalidBoundsKey)
	ErrAutocompleteChoice       = i18n.NewError(ErrAutocompleteChoiceKey)
	ErrInvalidChoiceSet         = i18n.NewError(ErrInvalidChoiceSetKey)
	ErrStubInSchema             = i18n.NewError(ErrStubInSchemaKey)
	ErrInvalidTagFormat         = i18n.NewError(ErrInvalidTagFormatKey)
	ErrInvalidTagAttribute      = i18n.NewError(ErrInvalidTagAttributeKey)
	ErrUnknownTagAttribute      = i18n.NewError(ErrUnknownTagAttributeKey)
	ErrUnsupportedFieldType     = i18n.NewError(ErrUnsupportedFieldTypeKey)
	ErrInvalidDocument          = i18n.NewError(ErrInvalidDocumentKey)
	ErrUnsupportedFormat        = i18n.NewError(ErrUnsupportedFormatKey)
	ErrLoadingFile              = i18n.NewError(ErrLoadingFileKey)
	ErrCustomIDTooLong          = i18n.NewError(ErrCustomIDTooLongKey)
	ErrDuplicateTag             = i18n.NewError(ErrDuplicateTagKey)
	ErrInvalidSchemaDocument    = i18n.NewError(ErrInvalidSchemaDocumentKey)
	ErrRequiredAfterOptional    = i18n.NewError(ErrRequiredAfterOptionalKey)
	ErrTooManyOptions           = i18n.NewError(ErrTooManyOptionsKey)
)

// Internal errors
var (
	ErrMissingOption       = i18n.NewError(ErrMissingOptionKey)
	ErrMissingPayload      = i18n.NewError(ErrMissingPayloadKey)
	ErrNotFocusable        = i18n.NewError(ErrNotFocusableKey)
	ErrNilDestination      = i18n.NewError(ErrNilDestinationKey)
	ErrUnresolvedVariant   = i18n.NewError(ErrUnresolvedVariantKey)
	ErrInternal            = i18n.NewError(ErrInternalKey)
	ErrHandlerTypeMismatch = i18n.NewError(ErrHandlerTypeMismatchKey)
)

var errorsMu sync.Mutex

// UpdateMessageProvider switches the provider of every error in this package.
func UpdateMessageProvider(provider i18n.MessageProvider) {
	errorsMu.Lock()
	defer errorsMu.Unlock()

	for _, group := range [][]*i18n.TrError{userErrors, configErrors, internalErrors} {
		for _, err := range group {
			err.SetProvider(provider)
		}
	}
}
