// Package option describes and resolves the values of application command
// options.
//
// A Type is a closed variant (scalar, bounded, optional, focusable, choice or
// entity reference). Describe returns the option's wire shape without needing
// any value; Resolve turns the wire value of one option into a Go value:
//
//	String, Timestamp, Choice   string, time.Time, string (the key)
//	Integer, Number, Boolean    int64, float64, bool
//	Bounded*                    BoundedInt, BoundedFloat, BoundedString
//	Optional                    Opt
//	Focusable                   Focused
//	entities                    User, Member, Role, Channel, Mentionable, Attachment
package option

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/napalu/slashopt/errs"
)

// Variant selects the describe and resolve functions of a Type.
type Variant int

const (
	VariantScalar Variant = iota
	VariantBounded
	VariantOptional
	VariantFocusable
	VariantChoice
	VariantEntity
	variantCount
)

type scalar int

const (
	scalarString scalar = iota + 1
	scalarInteger
	scalarNumber
	scalarBoolean
	scalarTimestamp
)

var scalarKinds = map[scalar]Kind{
	scalarString:    KindString,
	scalarInteger:   KindInteger,
	scalarNumber:    KindNumber,
	scalarBoolean:   KindBoolean,
	scalarTimestamp: KindString,
}

type entity int

const (
	entityUser entity = iota + 1
	entityMember
	entityRole
	entityChannel
	entityMentionable
	entityAttachment
)

var entityKinds = map[entity]Kind{
	entityUser:        KindUser,
	entityMember:      KindUser,
	entityRole:        KindRole,
	entityChannel:     KindChannel,
	entityMentionable: KindMentionable,
	entityAttachment:  KindAttachment,
}

// Type is the static description of an option value. Types are immutable and
// safe to share.
type Type struct {
	variant  Variant
	scalar   scalar
	ints     IntRange
	floats   FloatRange
	lengths  LengthRange
	inner    *Type
	choices  *ChoiceSet
	entity   entity
	channels []ChannelType
}

// Partial is the part of an option's schema that follows from its Type alone.
type Partial struct {
	Kind         Kind
	Required     bool
	MinValue     *float64
	MaxValue     *float64
	MinLength    *int
	MaxLength    *int
	Choices      *ChoiceSet
	Autocomplete bool
	ChannelTypes []ChannelType
}

type variantOps struct {
	describe func(t *Type) Partial
	resolve  func(t *Type, slot Slot) (any, error)
}

// dispatch is filled in init because the composite variants recurse into it.
var dispatch [variantCount]variantOps

func init() {
	dispatch = [variantCount]variantOps{
		VariantScalar:    {describeScalar, resolveScalar},
		VariantBounded:   {describeBounded, resolveBounded},
		VariantOptional:  {describeOptional, resolveOptional},
		VariantFocusable: {describeFocusable, resolveFocusable},
		VariantChoice:    {describeChoice, resolveChoice},
		VariantEntity:    {describeEntity, resolveEntity},
	}
}

func String() Type    { return Type{variant: VariantScalar, scalar: scalarString} }
func Integer() Type   { return Type{variant: VariantScalar, scalar: scalarInteger} }
func Number() Type    { return Type{variant: VariantScalar, scalar: scalarNumber} }
func Boolean() Type   { return Type{variant: VariantScalar, scalar: scalarBoolean} }
func Timestamp() Type { return Type{variant: VariantScalar, scalar: scalarTimestamp} }

func UserRef() Type        { return Type{variant: VariantEntity, entity: entityUser} }
func RoleRef() Type        { return Type{variant: VariantEntity, entity: entityRole} }
func AttachmentRef() Type  { return Type{variant: VariantEntity, entity: entityAttachment} }
func MentionableRef() Type { return Type{variant: VariantEntity, entity: entityMentionable} }

// MemberRef is a user option that only accepts users who are members of the
// server the command runs in.
func MemberRef() Type { return Type{variant: VariantEntity, entity: entityMember} }

// ChannelRef accepts any channel, or only the listed channel types.
func ChannelRef(types ...ChannelType) Type {
	t := Type{variant: VariantEntity, entity: entityChannel}
	if len(types) > 0 {
		t.channels = append([]ChannelType(nil), types...)
	}

	return t
}

// NewBoundedInteger is an integer option limited to [min, max].
func NewBoundedInteger(min, max int64) (Type, error) {
	rng, err := NewIntRange(min, max)
	if err != nil {
		return Type{}, err
	}

	return Type{variant: VariantBounded, scalar: scalarInteger, ints: rng}, nil
}

// NewBoundedNumber is a number option limited to [min, max].
func NewBoundedNumber(min, max float64) (Type, error) {
	rng, err := NewFloatRange(min, max)
	if err != nil {
		return Type{}, err
	}

	return Type{variant: VariantBounded, scalar: scalarNumber, floats: rng}, nil
}

// NewBoundedLength is a string option whose length in runes is limited to
// [minLen, maxLen].
func NewBoundedLength(minLen, maxLen int) (Type, error) {
	rng, err := NewLengthRange(minLen, maxLen)
	if err != nil {
		return Type{}, err
	}

	return Type{variant: VariantBounded, scalar: scalarString, lengths: rng}, nil
}

func MustBoundedInteger(min, max int64) Type {
	return must(NewBoundedInteger(min, max))
}

func MustBoundedNumber(min, max float64) Type {
	return must(NewBoundedNumber(min, max))
}

func MustBoundedLength(minLen, maxLen int) Type {
	return must(NewBoundedLength(minLen, maxLen))
}

// Optional makes t non-required.
func Optional(t Type) Type {
	return Type{variant: VariantOptional, inner: &t}
}

// Choice restricts a string option to the keys of set.
func Choice(set *ChoiceSet) Type {
	return Type{variant: VariantChoice, choices: set}
}

// NewFocusable enables autocomplete for t. Only string, integer and number
// options can be autocompleted, and choice options never are: the platform
// offers the choice list itself.
func NewFocusable(t Type) (Type, error) {
	p := t.Describe()
	if p.Choices != nil {
		return Type{}, errs.ErrAutocompleteChoice
	}
	if p.Autocomplete {
		return t, nil
	}
	switch p.Kind {
	case KindString, KindInteger, KindNumber:
	default:
		return Type{}, errs.ErrNotFocusable.WithArgs(p.Kind.String())
	}

	return Type{variant: VariantFocusable, inner: &t}, nil
}

func MustFocusable(t Type) Type {
	return must(NewFocusable(t))
}

func must(t Type, err error) Type {
	if err != nil {
		panic(err)
	}

	return t
}

// Variant returns the outermost variant of t.
func (t Type) Variant() Variant {
	return t.variant
}

// Inner returns the type wrapped by an Optional or Focusable type.
func (t Type) Inner() (Type, bool) {
	if t.inner == nil {
		return Type{}, false
	}

	return *t.inner, true
}

// Describe returns the wire shape of t.
func (t Type) Describe() Partial {
	if !t.valid() {
		return Partial{}
	}

	return dispatch[t.variant].describe(&t)
}

// Resolve converts the wire value in slot to the Go value of t.
func (t Type) Resolve(slot Slot) (any, error) {
	if !t.valid() {
		return nil, errs.ErrUnresolvedVariant.WithArgs(int(t.variant))
	}

	return dispatch[t.variant].resolve(&t, slot)
}

// ResolveAs resolves slot and asserts the result to T.
func ResolveAs[T any](t Type, slot Slot) (T, error) {
	var zero T
	v, err := t.Resolve(slot)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, errs.ErrInternal.Wrap(fmt.Errorf("%s resolves to %T, not %T", t, v, zero))
	}

	return out, nil
}

func (t Type) valid() bool {
	if t.variant < 0 || t.variant >= variantCount {
		return false
	}
	switch t.variant {
	case VariantScalar, VariantBounded:
		return t.scalar != 0
	case VariantOptional, VariantFocusable:
		return t.inner != nil
	case VariantChoice:
		return t.choices != nil
	default:
		return t.entity != 0
	}
}

// String renders t for error messages, e.g. "optional integer[1..10]".
func (t Type) String() string {
	if !t.valid() {
		return "invalid"
	}

	switch t.variant {
	case VariantOptional:
		return "optional " + t.inner.String()
	case VariantFocusable:
		return "autocompleted " + t.inner.String()
	case VariantChoice:
		return "choice " + t.choices.Name()
	case VariantBounded:
		switch t.scalar {
		case scalarInteger:
			return fmt.Sprintf("integer[%d..%d]", t.ints.Min, t.ints.Max)
		case scalarNumber:
			return fmt.Sprintf("number[%g..%g]", t.floats.Min, t.floats.Max)
		default:
			return fmt.Sprintf("string[%d..%d]", t.lengths.Min, t.lengths.Max)
		}
	case VariantEntity:
		if t.entity == entityMember {
			return "member"
		}
		return entityKinds[t.entity].String()
	default:
		if t.scalar == scalarTimestamp {
			return "timestamp"
		}
		return scalarKinds[t.scalar].String()
	}
}

// value checks that slot holds a usable, unfocused value of kind.
func value(slot Slot, kind Kind) (WireValue, error) {
	if !slot.Present {
		return WireValue{}, errs.ErrMissingOption.WithArgs(kind.String())
	}
	v := slot.Value
	if v.Focused {
		return WireValue{}, errs.ErrNotFocusable.WithArgs(kind.String())
	}
	if v.Kind != kind {
		return WireValue{}, errs.ErrInvalidType.WithArgs(kind, v.Kind)
	}

	return v, nil
}

func describeScalar(t *Type) Partial {
	p := Partial{Kind: scalarKinds[t.scalar], Required: true}
	if t.scalar == scalarInteger {
		p.MinValue, p.MaxValue = float(float64(MinInteger)), float(float64(MaxInteger))
	}

	return p
}

func resolveScalar(t *Type, slot Slot) (any, error) {
	v, err := value(slot, scalarKinds[t.scalar])
	if err != nil {
		return nil, err
	}

	switch t.scalar {
	case scalarString:
		return v.Str, nil
	case scalarInteger:
		return v.Int, nil
	case scalarNumber:
		return v.Num, nil
	case scalarBoolean:
		return v.Bool, nil
	default:
		ts, err := dateparse.ParseIn(v.Str, time.UTC)
		if err != nil {
			return nil, errs.ErrInvalidTimestamp.WithArgs(v.Str).Wrap(err)
		}
		return ts, nil
	}
}

func describeBounded(t *Type) Partial {
	p := Partial{Kind: scalarKinds[t.scalar], Required: true}
	switch t.scalar {
	case scalarInteger:
		p.MinValue, p.MaxValue = float(float64(t.ints.Min)), float(float64(t.ints.Max))
	case scalarNumber:
		p.MinValue, p.MaxValue = float(t.floats.Min), float(t.floats.Max)
	default:
		p.MinLength, p.MaxLength = &t.lengths.Min, &t.lengths.Max
	}

	return p
}

func resolveBounded(t *Type, slot Slot) (any, error) {
	base := Type{variant: VariantScalar, scalar: t.scalar}
	v, err := resolveScalar(&base, slot)
	if err != nil {
		return nil, err
	}

	var bounded any
	switch t.scalar {
	case scalarInteger:
		bounded, err = NewBoundedInt(v.(int64), t.ints.Min, t.ints.Max)
	case scalarNumber:
		bounded, err = NewBoundedFloat(v.(float64), t.floats.Min, t.floats.Max)
	default:
		bounded, err = NewBoundedString(v.(string), t.lengths.Min, t.lengths.Max)
	}
	if err != nil {
		return nil, err
	}

	return bounded, nil
}

func describeOptional(t *Type) Partial {
	p := t.inner.Describe()
	p.Required = false

	return p
}

func resolveOptional(t *Type, slot Slot) (any, error) {
	if !slot.Present {
		return None, nil
	}
	v, err := t.inner.Resolve(slot)
	if err != nil {
		return nil, err
	}

	return Some(v), nil
}

func describeFocusable(t *Type) Partial {
	p := t.inner.Describe()
	p.Autocomplete = true

	return p
}

func resolveFocusable(t *Type, slot Slot) (any, error) {
	if slot.Present && slot.Value.Focused {
		kind := t.inner.Describe().Kind
		if slot.Value.Kind != kind {
			return nil, errs.ErrInvalidType.WithArgs(kind, slot.Value.Kind)
		}
		// the user is still typing, so the text is never validated
		return Focused{Partial: slot.Value.Partial, HasFocus: true}, nil
	}

	v, err := t.inner.Resolve(slot)
	if err != nil {
		return nil, err
	}

	return Focused{Value: v}, nil
}

func describeChoice(t *Type) Partial {
	return Partial{Kind: KindString, Required: true, Choices: t.choices}
}

func resolveChoice(t *Type, slot Slot) (any, error) {
	v, err := value(slot, KindString)
	if err != nil {
		return nil, err
	}
	if !t.choices.Has(v.Str) {
		return nil, errs.ErrInvalidChoice.WithArgs(v.Str)
	}

	return v.Str, nil
}

func describeEntity(t *Type) Partial {
	p := Partial{Kind: entityKinds[t.entity], Required: true}
	if len(t.channels) > 0 {
		p.ChannelTypes = append([]ChannelType(nil), t.channels...)
	}

	return p
}

func resolveEntity(t *Type, slot Slot) (any, error) {
	v, err := value(slot, entityKinds[t.entity])
	if err != nil {
		return nil, err
	}
	if v.Entity == nil {
		return nil, errs.ErrMissingPayload.WithArgs(v.Kind.String())
	}
	e := v.Entity

	switch t.entity {
	case entityUser, entityMember:
		if e.Kind != EntityUser {
			return nil, errs.ErrInvalidEntitySubtype.WithArgs(e.Kind)
		}
		if t.entity == entityUser {
			return e.User, nil
		}
		if e.Member == nil {
			return nil, errs.ErrNoPartialMemberData.WithArgs(e.User.ID)
		}
		return Member{User: e.User, PartialMember: *e.Member}, nil
	case entityRole:
		if e.Kind != EntityRole {
			return nil, errs.ErrInvalidEntitySubtype.WithArgs(e.Kind)
		}
		return e.Role, nil
	case entityChannel:
		if e.Kind != EntityChannel {
			return nil, errs.ErrInvalidEntitySubtype.WithArgs(e.Kind)
		}
		if !t.allowsChannel(e.Channel.Type) {
			return nil, errs.ErrInvalidEntitySubtype.WithArgs(e.Channel.Type)
		}
		return e.Channel, nil
	case entityMentionable:
		switch e.Kind {
		case EntityUser:
			user := e.User
			return Mentionable{User: &user, Member: e.Member}, nil
		case EntityRole:
			role := e.Role
			return Mentionable{Role: &role}, nil
		default:
			return nil, errs.ErrInvalidEntitySubtype.WithArgs(e.Kind)
		}
	default:
		if e.Kind != EntityAttachment {
			return nil, errs.ErrInvalidEntitySubtype.WithArgs(e.Kind)
		}
		return e.Attachment, nil
	}
}

func (t *Type) allowsChannel(c ChannelType) bool {
	if len(t.channels) == 0 {
		return true
	}
	for _, allowed := range t.channels {
		if allowed == c {
			return true
		}
	}

	return false
}

func float(f float64) *float64 {
	return &f
}
