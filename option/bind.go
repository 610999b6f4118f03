package option

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/iancoleman/strcase"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/internal/parse"
	"github.com/napalu/slashopt/internal/util"
)

// TagName is the struct tag read by Params and Bind.
const TagName = "slash"

// Param is one declared option of a command, in declaration order.
type Param struct {
	// Name is the programmatic name; the wire name is its kebab-case form.
	Name string
	Type Type
}

func NewParam(name string, t Type) Param {
	return Param{Name: name, Type: t}
}

// WireName is the default option name sent to the platform.
func (p Param) WireName() string {
	return strcase.ToKebab(p.Name)
}

// Resolve resolves slot and names the parameter in any error.
func (p Param) Resolve(slot Slot) (any, error) {
	if !slot.Present && p.Type.Describe().Required {
		return nil, errs.ErrMissingOption.WithArgs(p.WireName())
	}
	v, err := p.Type.Resolve(slot)
	if err != nil {
		return nil, errs.ErrInvalidOption.WithArgs(p.WireName()).Wrap(err)
	}

	return v, nil
}

// ConfigureBindFunc configures Params and Bind.
type ConfigureBindFunc func(b *binder, err *error)

type binder struct {
	choices map[string]*ChoiceSet
}

// WithChoiceSets makes sets available to `choices:<name>` tags.
func WithChoiceSets(sets ...*ChoiceSet) ConfigureBindFunc {
	return func(b *binder, err *error) {
		for _, set := range sets {
			if set == nil {
				continue
			}
			if _, exists := b.choices[set.Name()]; exists {
				*err = errs.ErrInvalidChoiceSet.WithArgs(set.Name())
				return
			}
			b.choices[set.Name()] = set
		}
	}
}

func newBinder(configs []ConfigureBindFunc) (*binder, error) {
	b := &binder{choices: map[string]*ChoiceSet{}}

	var err error
	for _, config := range configs {
		config(b, &err)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

type boundField struct {
	index []int
	param Param
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	focusedType       = reflect.TypeOf(Focused{})
	boundedIntType    = reflect.TypeOf(BoundedInt{})
	boundedFloatType  = reflect.TypeOf(BoundedFloat{})
	boundedStringType = reflect.TypeOf(BoundedString{})
	entityTypes       = map[reflect.Type]func(field string, cfg *parse.TagConfig) (Type, error){
		reflect.TypeOf(User{}):        func(string, *parse.TagConfig) (Type, error) { return UserRef(), nil },
		reflect.TypeOf(Member{}):      func(string, *parse.TagConfig) (Type, error) { return MemberRef(), nil },
		reflect.TypeOf(Role{}):        func(string, *parse.TagConfig) (Type, error) { return RoleRef(), nil },
		reflect.TypeOf(Attachment{}):  func(string, *parse.TagConfig) (Type, error) { return AttachmentRef(), nil },
		reflect.TypeOf(Mentionable{}): func(string, *parse.TagConfig) (Type, error) { return MentionableRef(), nil },
		reflect.TypeOf(Channel{}):     channelFromTag,
	}
)

// Params declares the parameters of the struct v (or pointer to struct) from
// its exported fields in order. Fields tagged `slash:"-"` are skipped.
func Params(v any, configs ...ConfigureBindFunc) ([]Param, error) {
	b, err := newBinder(configs)
	if err != nil {
		return nil, err
	}

	t := reflect.TypeOf(v)
	if t == nil || util.UnwrapType(t).Kind() != reflect.Struct {
		return nil, errs.ErrNilDestination
	}

	fields, err := b.fields(util.UnwrapType(t))
	if err != nil {
		return nil, err
	}

	params := make([]Param, len(fields))
	for i, f := range fields {
		params[i] = f.param
	}

	return params, nil
}

// Bind resolves the slot of every parameter declared by dst, which must be a
// non-nil pointer to a struct, and stores the results. slots is keyed by wire
// name; a missing key is an absent slot. Every parameter is resolved and all
// failures are returned together.
func Bind(dst any, slots map[string]Slot, configs ...ConfigureBindFunc) error {
	rv := reflect.ValueOf(dst)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errs.ErrNilDestination
	}

	b, err := newBinder(configs)
	if err != nil {
		return err
	}
	fields, err := b.fields(rv.Elem().Type())
	if err != nil {
		return err
	}

	var errList []error
	for _, f := range fields {
		v, err := f.param.Resolve(slots[f.param.WireName()])
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if err := assign(rv.Elem().FieldByIndex(f.index), v); err != nil {
			errList = append(errList, errs.ErrInvalidOption.WithArgs(f.param.WireName()).Wrap(err))
		}
	}

	return errors.Join(errList...)
}

func (b *binder) fields(t reflect.Type) ([]boundField, error) {
	var out []boundField
	seen := map[string]bool{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, hasTag := field.Tag.Lookup(TagName)
		if !field.IsExported() || tag == "-" {
			continue
		}
		if !hasTag && field.Anonymous {
			continue
		}

		cfg, err := parse.UnmarshalTagFormat(tag, field.Name)
		if err != nil {
			return nil, err
		}
		name := field.Name
		if cfg.Name != "" {
			name = cfg.Name
		}

		typ, err := b.typeOf(field, cfg)
		if err != nil {
			return nil, err
		}

		param := NewParam(name, typ)
		if seen[param.WireName()] {
			return nil, errs.ErrDuplicateOption.WithArgs(param.WireName())
		}
		seen[param.WireName()] = true
		out = append(out, boundField{index: field.Index, param: param})
	}

	return out, nil
}

func (b *binder) typeOf(field reflect.StructField, cfg *parse.TagConfig) (Type, error) {
	ft := field.Type
	optional := cfg.Optional
	if ft.Kind() == reflect.Ptr {
		optional = true
		ft = ft.Elem()
	}

	autocomplete := cfg.Autocomplete
	if ft == focusedType {
		autocomplete = true
		ft = reflect.TypeOf("")
		if cfg.Type == "integer" {
			ft = reflect.TypeOf(int64(0))
		} else if cfg.Type == "number" {
			ft = reflect.TypeOf(float64(0))
		}
	}

	t, err := b.baseType(field, ft, cfg)
	if err != nil {
		return Type{}, err
	}
	if autocomplete {
		if t, err = NewFocusable(t); err != nil {
			return Type{}, err
		}
	}
	if optional {
		t = Optional(t)
	}

	return t, nil
}

func (b *binder) baseType(field reflect.StructField, ft reflect.Type, cfg *parse.TagConfig) (Type, error) {
	if ctor, ok := entityTypes[ft]; ok {
		if cfg.HasBounds() || cfg.Choices != "" {
			return Type{}, errs.ErrUnsupportedFieldType.WithArgs(field.Name, ft)
		}
		if ft != reflect.TypeOf(Channel{}) && len(cfg.Channels) > 0 {
			return Type{}, errs.ErrUnknownTagAttribute.WithArgs("channel", field.Name)
		}
		return ctor(field.Name, cfg)
	}
	if len(cfg.Channels) > 0 {
		return Type{}, errs.ErrUnknownTagAttribute.WithArgs("channel", field.Name)
	}

	switch {
	case ft == timeType:
		if cfg.HasBounds() {
			return Type{}, errs.ErrUnsupportedFieldType.WithArgs(field.Name, ft)
		}
		return Timestamp(), nil
	case ft == boundedStringType || ft.Kind() == reflect.String:
		return b.stringType(field, ft, cfg)
	case ft == boundedIntType:
		return intType(field, cfg, MinInteger, MaxInteger, true)
	case ft == boundedFloatType:
		return floatType(field, cfg, true)
	}

	switch ft.Kind() {
	case reflect.Bool:
		if cfg.HasBounds() || cfg.Choices != "" {
			return Type{}, errs.ErrUnsupportedFieldType.WithArgs(field.Name, ft)
		}
		return Boolean(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		min, max := naturalRange(ft)
		return intType(field, cfg, min, max, false)
	case reflect.Float32, reflect.Float64:
		return floatType(field, cfg, false)
	default:
		return Type{}, errs.ErrUnsupportedFieldType.WithArgs(field.Name, ft)
	}
}

func (b *binder) stringType(field reflect.StructField, ft reflect.Type, cfg *parse.TagConfig) (Type, error) {
	if cfg.Min != nil || cfg.Max != nil {
		return Type{}, errs.ErrUnsupportedFieldType.WithArgs(field.Name, ft)
	}

	if cfg.Choices != "" {
		if ft == boundedStringType || cfg.MinLength != nil || cfg.MaxLength != nil {
			return Type{}, errs.ErrUnsupportedFieldType.WithArgs(field.Name, ft)
		}
		set, ok := b.choices[cfg.Choices]
		if !ok {
			return Type{}, errs.ErrInvalidChoiceSet.WithArgs(cfg.Choices)
		}
		return Choice(set), nil
	}

	if cfg.MinLength == nil && cfg.MaxLength == nil && ft != boundedStringType {
		return String(), nil
	}
	minLen, maxLen := 0, MaxStringLength
	if cfg.MinLength != nil {
		minLen = *cfg.MinLength
	}
	if cfg.MaxLength != nil {
		maxLen = *cfg.MaxLength
	}

	return NewBoundedLength(minLen, maxLen)
}

func intType(field reflect.StructField, cfg *parse.TagConfig, min, max int64, forceBounded bool) (Type, error) {
	if cfg.MinLength != nil || cfg.MaxLength != nil || cfg.Choices != "" {
		return Type{}, errs.ErrUnsupportedFieldType.WithArgs(field.Name, field.Type)
	}

	lo, hi := min, max
	if cfg.Min != nil {
		if !cfg.Min.IsInt || cfg.Min.Int < min {
			return Type{}, errs.ErrInvalidTagAttribute.WithArgs(tagNumber(cfg.Min), "min", field.Name)
		}
		lo = cfg.Min.Int
	}
	if cfg.Max != nil {
		if !cfg.Max.IsInt || cfg.Max.Int > max {
			return Type{}, errs.ErrInvalidTagAttribute.WithArgs(tagNumber(cfg.Max), "max", field.Name)
		}
		hi = cfg.Max.Int
	}

	if !forceBounded && lo == MinInteger && hi == MaxInteger {
		return Integer(), nil
	}

	return NewBoundedInteger(lo, hi)
}

func floatType(field reflect.StructField, cfg *parse.TagConfig, forceBounded bool) (Type, error) {
	if cfg.MinLength != nil || cfg.MaxLength != nil || cfg.Choices != "" {
		return Type{}, errs.ErrUnsupportedFieldType.WithArgs(field.Name, field.Type)
	}
	if cfg.Min == nil && cfg.Max == nil && !forceBounded {
		return Number(), nil
	}

	lo, hi := float64(MinInteger), float64(MaxInteger)
	if cfg.Min != nil {
		lo = cfg.Min.Float64()
	}
	if cfg.Max != nil {
		hi = cfg.Max.Float64()
	}

	return NewBoundedNumber(lo, hi)
}

func channelFromTag(field string, cfg *parse.TagConfig) (Type, error) {
	types := make([]ChannelType, 0, len(cfg.Channels))
	for _, name := range cfg.Channels {
		c, ok := ParseChannelType(name)
		if !ok {
			return Type{}, errs.ErrInvalidTagAttribute.WithArgs(name, "channel", field)
		}
		types = append(types, c)
	}

	return ChannelRef(types...), nil
}

// naturalRange is the range of an integer kind clamped to the platform's safe
// integer range.
func naturalRange(t reflect.Type) (int64, int64) {
	switch t.Kind() {
	case reflect.Int8:
		return math.MinInt8, math.MaxInt8
	case reflect.Int16:
		return math.MinInt16, math.MaxInt16
	case reflect.Int32:
		return math.MinInt32, math.MaxInt32
	case reflect.Uint8:
		return 0, math.MaxUint8
	case reflect.Uint16:
		return 0, math.MaxUint16
	case reflect.Uint32:
		return 0, math.MaxUint32
	case reflect.Uint, reflect.Uint64:
		return 0, MaxInteger
	default:
		return MinInteger, MaxInteger
	}
}

func tagNumber(n *util.Number) string {
	if n.IsInt {
		return strconv.FormatInt(n.Int, 10)
	}

	return strconv.FormatFloat(n.Float, 'g', -1, 64)
}

// assign stores a resolved value in the field it was declared by.
func assign(field reflect.Value, v any) error {
	switch val := v.(type) {
	case Opt:
		inner, ok := val.Get()
		if !ok {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		if field.Kind() == reflect.Ptr {
			ptr := reflect.New(field.Type().Elem())
			if err := assign(ptr.Elem(), inner); err != nil {
				return err
			}
			field.Set(ptr)
			return nil
		}
		return assign(field, inner)
	case Focused:
		if field.Type() == focusedType {
			field.Set(reflect.ValueOf(val))
			return nil
		}
		if val.HasFocus {
			if field.Kind() == reflect.String {
				field.SetString(val.Partial)
			}
			return nil
		}
		return assign(field, val.Value)
	case BoundedInt:
		if field.Type() == boundedIntType {
			field.Set(reflect.ValueOf(val))
			return nil
		}
		return assign(field, val.Value())
	case BoundedFloat:
		if field.Type() == boundedFloatType {
			field.Set(reflect.ValueOf(val))
			return nil
		}
		return assign(field, val.Value())
	case BoundedString:
		if field.Type() == boundedStringType {
			field.Set(reflect.ValueOf(val))
			return nil
		}
		return assign(field, val.Value())
	case int64:
		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if field.OverflowInt(val) {
				return errs.ErrOutOfBounds.WithArgs(val, naturalMin(field.Type()), naturalMax(field.Type()))
			}
			field.SetInt(val)
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if val < 0 || field.OverflowUint(uint64(val)) {
				return errs.ErrOutOfBounds.WithArgs(val, naturalMin(field.Type()), naturalMax(field.Type()))
			}
			field.SetUint(uint64(val))
			return nil
		}
	case float64:
		switch field.Kind() {
		case reflect.Float32, reflect.Float64:
			field.SetFloat(val)
			return nil
		}
	case string:
		if field.Kind() == reflect.String {
			field.SetString(val)
			return nil
		}
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !rv.Type().AssignableTo(field.Type()) {
		return errs.ErrInternal.Wrap(errs.ErrUnsupportedFieldType.WithArgs(field.Type().String(), reflect.TypeOf(v)))
	}
	field.Set(rv)

	return nil
}

func naturalMin(t reflect.Type) int64 {
	min, _ := naturalRange(t)
	return min
}

func naturalMax(t reflect.Type) int64 {
	_, max := naturalRange(t)
	return max
}
