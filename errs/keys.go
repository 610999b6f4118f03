// Package errs holds the translatable errors returned by slashopt packages.
// This file contains the translation keys; the messages live in the i18n
// package's locale catalogs.
package errs

// Prefix for all slashopt translation keys
const (
	prefixKey = "slashopt"
)

const (
	ErrorPrefixKey = prefixKey + ".error"
)

// Resolution errors, reported back to the invoking user
const (
	ErrInvalidTypeKey          = ErrorPrefixKey + ".invalid_type"
	ErrOutOfBoundsKey          = ErrorPrefixKey + ".out_of_bounds"
	ErrLengthOutOfBoundsKey    = ErrorPrefixKey + ".length_out_of_bounds"
	ErrInvalidChoiceKey        = ErrorPrefixKey + ".invalid_choice"
	ErrInvalidEntitySubtypeKey = ErrorPrefixKey + ".invalid_entity_subtype"
	ErrNoPartialMemberDataKey  = ErrorPrefixKey + ".no_partial_member_data"
	ErrInvalidTimestampKey     = ErrorPrefixKey + ".invalid_timestamp"
	ErrInvalidOptionKey        = ErrorPrefixKey + ".invalid_option"
	ErrMalformedTokenKey       = ErrorPrefixKey + ".malformed_token"
	ErrInvalidCustomIDKey      = ErrorPrefixKey + ".invalid_custom_id"
	ErrUnknownTagKey           = ErrorPrefixKey + ".unknown_tag"
	ErrUnknownCommandKey       = ErrorPrefixKey + ".unknown_command"
)

// Configuration errors, surfaced while building schemas or loading files
const (
	ErrNameLengthKey               = ErrorPrefixKey + ".name_length"
	ErrNameCharsetKey              = ErrorPrefixKey + ".name_charset"
	ErrNameNotLowercaseKey         = ErrorPrefixKey + ".name_not_lowercase"
	ErrDescriptionLengthKey        = ErrorPrefixKey + ".description_length"
	ErrUnknownLocaleKey            = ErrorPrefixKey + ".unknown_locale"
	ErrDuplicateLocaleKey          = ErrorPrefixKey + ".duplicate_locale"
	ErrMalformedDocCommentKey      = ErrorPrefixKey + ".malformed_doc_comment"
	ErrOptionMismatchKey           = ErrorPrefixKey + ".option_mismatch"
	ErrUnknownLocalizedOptionKey   = ErrorPrefixKey + ".unknown_localized_option"
	ErrDuplicateCommandKey         = ErrorPrefixKey + ".duplicate_command"
	ErrDuplicateChoiceKey          = ErrorPrefixKey + ".duplicate_choice"
	ErrDuplicateOptionKey          = ErrorPrefixKey + ".duplicate_option"
	ErrAmbiguousSubcommandKey      = ErrorPrefixKey + ".ambiguous_subcommand"
	ErrContradictoryGroupMarkerKey = ErrorPrefixKey + ".contradictory_group_marker"
	ErrGroupMarkerFieldsKey        = ErrorPrefixKey + ".group_marker_fields"
	ErrEmptyGroupKey               = ErrorPrefixKey + ".empty_group"
	ErrInvalidBoundsKey            = ErrorPrefixKey + ".invalid_bounds"
	ErrAutocompleteChoiceKey       = ErrorPrefixKey + ".autocomplete_choice"
	ErrInvalidChoiceSetKey         = ErrorPrefixKey + ".invalid_choice_set"
	ErrStubInSchemaKey             = ErrorPrefixKey + ".stub_in_schema"
	ErrInvalidTagFormatKey         = ErrorPrefixKey + ".invalid_tag_format"
	ErrInvalidTagAttributeKey      = ErrorPrefixKey + ".invalid_tag_attribute"
	ErrUnknownTagAttributeKey      = ErrorPrefixKey + ".unknown_tag_attribute"
	ErrUnsupportedFieldTypeKey     = ErrorPrefixKey + ".unsupported_field_type"
	ErrInvalidDocumentKey          = ErrorPrefixKey + ".invalid_document"
	ErrUnsupportedFormatKey        = ErrorPrefixKey + ".unsupported_format"
	ErrLoadingFileKey              = ErrorPrefixKey + ".loading_file"
	ErrCustomIDTooLongKey          = ErrorPrefixKey + ".custom_id_too_long"
	ErrDuplicateTagKey             = ErrorPrefixKey + ".duplicate_tag"
	ErrInvalidSchemaDocumentKey    = ErrorPrefixKey + ".invalid_schema_document"
	ErrRequiredAfterOptionalKey    = ErrorPrefixKey + ".required_after_optional"
	ErrTooManyOptionsKey           = ErrorPrefixKey + ".too_many_options"
)

// Internal errors, indicating a bug in the caller or the transport layer
const (
	ErrMissingOptionKey       = ErrorPrefixKey + ".missing_option"
	ErrMissingPayloadKey      = ErrorPrefixKey + ".missing_payload"
	ErrNotFocusableKey        = ErrorPrefixKey + ".not_focusable"
	ErrNilDestinationKey      = ErrorPrefixKey + ".nil_destination"
	ErrUnresolvedVariantKey   = ErrorPrefixKey + ".unresolved_variant"
	ErrInternalKey            = ErrorPrefixKey + ".internal"
	ErrHandlerTypeMismatchKey = ErrorPrefixKey + ".handler_type_mismatch"
)

// Report keys used when rendering errors for users
const (
	ReportPrefixKey           = prefixKey + ".report"
	ReportInvalidOptionsKey   = ReportPrefixKey + ".invalid_options"
	ReportInternalKey         = ReportPrefixKey + ".internal"
	ReportInvalidComponentKey = ReportPrefixKey + ".invalid_component"
)
