package option

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napalu/slashopt/errs"
)

var (
	alice  = User{ID: 80351110224678912, Name: "alice"}
	member = &PartialMember{Nick: "al", Roles: []Snowflake{41771983423143936}}
	mods   = Role{ID: 41771983423143936, Name: "mods"}
	lobby  = Channel{ID: 41771983423143937, Name: "lobby", Type: ChannelText}
	stage  = Channel{ID: 41771983423143938, Name: "talks", Type: ChannelStage}
)

func TestType_Describe(t *testing.T) {
	colours := MustChoiceSet("colour", "red", "green")

	tests := []struct {
		name string
		typ  Type
		want Partial
	}{
		{"string", String(), Partial{Kind: KindString, Required: true}},
		{"timestamp", Timestamp(), Partial{Kind: KindString, Required: true}},
		{"boolean", Boolean(), Partial{Kind: KindBoolean, Required: true}},
		{"number", Number(), Partial{Kind: KindNumber, Required: true}},
		{"integer", Integer(), Partial{
			Kind: KindInteger, Required: true,
			MinValue: float(-9007199254740991), MaxValue: float(9007199254740991),
		}},
		{"bounded integer", MustBoundedInteger(1, 10), Partial{
			Kind: KindInteger, Required: true, MinValue: float(1), MaxValue: float(10),
		}},
		{"bounded number", MustBoundedNumber(-0.5, 0.5), Partial{
			Kind: KindNumber, Required: true, MinValue: float(-0.5), MaxValue: float(0.5),
		}},
		{"bounded string", MustBoundedLength(2, 50), Partial{
			Kind: KindString, Required: true, MinLength: intPtr(2), MaxLength: intPtr(50),
		}},
		{"optional", Optional(Boolean()), Partial{Kind: KindBoolean}},
		{"focusable keeps bounds", MustFocusable(MustBoundedLength(3, 5)), Partial{
			Kind: KindString, Required: true, MinLength: intPtr(3), MaxLength: intPtr(5), Autocomplete: true,
		}},
		{"optional focusable", Optional(MustFocusable(String())), Partial{Kind: KindString, Autocomplete: true}},
		{"choice", Choice(colours), Partial{Kind: KindString, Required: true, Choices: colours}},
		{"user", UserRef(), Partial{Kind: KindUser, Required: true}},
		{"member", MemberRef(), Partial{Kind: KindUser, Required: true}},
		{"role", RoleRef(), Partial{Kind: KindRole, Required: true}},
		{"mentionable", MentionableRef(), Partial{Kind: KindMentionable, Required: true}},
		{"attachment", AttachmentRef(), Partial{Kind: KindAttachment, Required: true}},
		{"channel", ChannelRef(), Partial{Kind: KindChannel, Required: true}},
		{"narrowed channel", ChannelRef(ChannelText, ChannelVoice), Partial{
			Kind: KindChannel, Required: true, ChannelTypes: []ChannelType{ChannelText, ChannelVoice},
		}},
		{"zero type", Type{}, Partial{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Describe())
		})
	}
}

func TestType_Resolve(t *testing.T) {
	colours := MustChoiceSet("colour", "red", "green")

	tests := []struct {
		name    string
		typ     Type
		slot    Slot
		want    any
		wantErr error
	}{
		{"string", String(), Present(StringValue("hi")), "hi", nil},
		{"integer", Integer(), Present(IntegerValue(-4)), int64(-4), nil},
		{"number", Number(), Present(NumberValue(2.5)), 2.5, nil},
		{"boolean", Boolean(), Present(BooleanValue(true)), true, nil},
		{"timestamp", Timestamp(), Present(StringValue("2024-03-01 12:30")),
			time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC), nil},
		{"bad timestamp", Timestamp(), Present(StringValue("next tuesday-ish")), nil, errs.ErrInvalidTimestamp},
		{"wrong kind", Integer(), Present(StringValue("4")), nil, errs.ErrInvalidType},
		{"absent required", String(), Absent, nil, errs.ErrMissingOption},
		{"focused on plain type", String(), Present(FocusedValue(KindString, "ab")), nil, errs.ErrNotFocusable},

		{"bounded at min", MustBoundedInteger(1, 10), Present(IntegerValue(1)), mustInt(1, 1, 10), nil},
		{"bounded at max", MustBoundedInteger(1, 10), Present(IntegerValue(10)), mustInt(10, 1, 10), nil},
		{"bounded above", MustBoundedInteger(1, 10), Present(IntegerValue(11)), nil, errs.ErrOutOfBounds},
		{"bounded number below", MustBoundedNumber(0, 1), Present(NumberValue(-0.1)), nil, errs.ErrOutOfBounds},
		{"bounded string runes", MustBoundedLength(1, 3), Present(StringValue("äöü")), mustStr("äöü", 1, 3), nil},
		{"bounded string long", MustBoundedLength(1, 3), Present(StringValue("abcd")), nil, errs.ErrLengthOutOfBounds},

		{"optional absent", Optional(Integer()), Absent, None, nil},
		{"optional present", Optional(Integer()), Present(IntegerValue(3)), Some(int64(3)), nil},
		{"optional invalid", Optional(Integer()), Present(BooleanValue(true)), nil, errs.ErrInvalidType},

		{"focused partial skips bounds", MustFocusable(MustBoundedLength(5, 10)),
			Present(FocusedValue(KindString, "abc")), Focused{Partial: "abc", HasFocus: true}, nil},
		{"focused integer partial", MustFocusable(MustBoundedInteger(1, 5)),
			Present(FocusedValue(KindInteger, "12")), Focused{Partial: "12", HasFocus: true}, nil},
		{"focused wrong kind", MustFocusable(String()),
			Present(FocusedValue(KindInteger, "1")), nil, errs.ErrInvalidType},
		{"unfocused delegates", MustFocusable(MustBoundedLength(1, 10)),
			Present(StringValue("abc")), Focused{Value: mustStr("abc", 1, 10)}, nil},
		{"unfocused validates", MustFocusable(MustBoundedLength(5, 10)),
			Present(StringValue("abc")), nil, errs.ErrLengthOutOfBounds},

		{"choice", Choice(colours), Present(StringValue("red")), "red", nil},
		{"invalid choice", Choice(colours), Present(StringValue("Red")), nil, errs.ErrInvalidChoice},

		{"user", UserRef(), Present(UserValue(alice, nil)), alice, nil},
		{"member", MemberRef(), Present(UserValue(alice, member)), Member{User: alice, PartialMember: *member}, nil},
		{"member without data", MemberRef(), Present(UserValue(alice, nil)), nil, errs.ErrNoPartialMemberData},
		{"role", RoleRef(), Present(RoleValue(mods)), mods, nil},
		{"channel", ChannelRef(), Present(ChannelValue(stage)), stage, nil},
		{"narrowed channel", ChannelRef(ChannelText), Present(ChannelValue(lobby)), lobby, nil},
		{"wrong channel type", ChannelRef(ChannelText), Present(ChannelValue(stage)), nil, errs.ErrInvalidEntitySubtype},
		{"mentionable user", MentionableRef(), Present(MentionableValue(UserValue(alice, member))),
			Mentionable{User: &alice, Member: member}, nil},
		{"mentionable role", MentionableRef(), Present(MentionableValue(RoleValue(mods))),
			Mentionable{Role: &mods}, nil},
		{"mentionable channel", MentionableRef(), Present(MentionableValue(ChannelValue(lobby))),
			nil, errs.ErrInvalidEntitySubtype},
		{"entity without payload", RoleRef(), Present(WireValue{Kind: KindRole}), nil, errs.ErrMissingPayload},
		{"user kind carrying a role", UserRef(), Present(WireValue{Kind: KindUser, Entity: &Entity{Kind: EntityRole}}),
			nil, errs.ErrInvalidEntitySubtype},
		{"attachment", AttachmentRef(), Present(AttachmentValue(Attachment{ID: 1, Filename: "a.png"})),
			Attachment{ID: 1, Filename: "a.png"}, nil},

		{"zero type", Type{}, Present(StringValue("x")), nil, errs.ErrUnresolvedVariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.typ.Resolve(tt.slot)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if want, ok := tt.want.(time.Time); ok {
				assert.True(t, want.Equal(got.(time.Time)), "got %v", got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptional_AbsentNeverResolvesInner(t *testing.T) {
	saved := dispatch[VariantScalar]
	defer func() { dispatch[VariantScalar] = saved }()

	calls := 0
	dispatch[VariantScalar] = variantOps{
		describe: saved.describe,
		resolve: func(t *Type, slot Slot) (any, error) {
			calls++
			return saved.resolve(t, slot)
		},
	}

	got, err := Optional(Integer()).Resolve(Absent)
	require.NoError(t, err)
	assert.Equal(t, None, got)
	assert.Zero(t, calls)

	got, err = Optional(Integer()).Resolve(Present(IntegerValue(7)))
	require.NoError(t, err)
	assert.Equal(t, Some(int64(7)), got)
	assert.Equal(t, 1, calls)

	v, ok := OptAs[int64](got.(Opt))
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)
	_, ok = OptAs[string](got.(Opt))
	assert.False(t, ok)
	assert.True(t, None.IsNone())
}

func TestResolveAs(t *testing.T) {
	n, err := ResolveAs[int64](Integer(), Present(IntegerValue(5)))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	_, err = ResolveAs[string](Integer(), Present(IntegerValue(5)))
	assert.ErrorIs(t, err, errs.ErrInternal)

	_, err = ResolveAs[int64](Integer(), Present(StringValue("5")))
	assert.ErrorIs(t, err, errs.ErrInvalidType)
}

func TestNewFocusable(t *testing.T) {
	_, err := NewFocusable(Choice(MustChoiceSet("colour", "red")))
	assert.ErrorIs(t, err, errs.ErrAutocompleteChoice)

	_, err = NewFocusable(Optional(Choice(MustChoiceSet("colour", "red"))))
	assert.ErrorIs(t, err, errs.ErrAutocompleteChoice)

	_, err = NewFocusable(UserRef())
	assert.ErrorIs(t, err, errs.ErrNotFocusable)

	_, err = NewFocusable(Boolean())
	assert.ErrorIs(t, err, errs.ErrNotFocusable)

	once := MustFocusable(Integer())
	twice, err := NewFocusable(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	inner, ok := once.Inner()
	assert.True(t, ok)
	assert.Equal(t, Integer(), inner)
	assert.Equal(t, VariantFocusable, once.Variant())
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "optional integer[1..10]", Optional(MustBoundedInteger(1, 10)).String())
	assert.Equal(t, "autocompleted string", MustFocusable(String()).String())
	assert.Equal(t, "choice colour", Choice(MustChoiceSet("colour", "red")).String())
	assert.Equal(t, "member", MemberRef().String())
	assert.Equal(t, "channel", ChannelRef().String())
	assert.Equal(t, "timestamp", Timestamp().String())
	assert.Equal(t, "invalid", Type{}.String())
}

func TestChannelType(t *testing.T) {
	c, ok := ParseChannelType("Public-Thread")
	assert.True(t, ok)
	assert.Equal(t, ChannelPublicThread, c)
	assert.Equal(t, "public_thread", c.String())

	_, ok = ParseChannelType("lounge")
	assert.False(t, ok)

	assert.Equal(t, "forum", ChannelForum.String())
	assert.Equal(t, "unknown", ChannelType(3).String())
	assert.True(t, KindAttachment.IsValue())
	assert.False(t, KindSubcommandGroup.IsValue())
}

func TestChoiceSet(t *testing.T) {
	type size string
	set, err := ChoicesOf("size", size("small"), size("large"))
	require.NoError(t, err)
	assert.Equal(t, []string{"small", "large"}, set.Keys())
	assert.True(t, set.Has("large"))
	assert.False(t, set.Has("medium"))
	assert.Equal(t, 2, set.Len())

	keys := set.Keys()
	keys[0] = "tiny"
	assert.Equal(t, "small", set.Keys()[0])

	_, err = NewChoiceSet("size")
	assert.ErrorIs(t, err, errs.ErrInvalidChoiceSet)
	_, err = NewChoiceSet("", "a")
	assert.ErrorIs(t, err, errs.ErrInvalidChoiceSet)
	_, err = NewChoiceSet("size", "a", "a")
	assert.ErrorIs(t, err, errs.ErrInvalidChoiceSet)
	assert.ErrorIs(t, err, errs.ErrDuplicateChoice)

	many := make([]string, MaxChoices+1)
	for i := range many {
		many[i] = string(rune('a' + i))
	}
	_, err = NewChoiceSet("letters", many...)
	assert.ErrorIs(t, err, errs.ErrInvalidChoiceSet)

	assert.Panics(t, func() { MustChoiceSet("") })
}

func mustInt(v, min, max int64) BoundedInt {
	b, err := NewBoundedInt(v, min, max)
	if err != nil {
		panic(err)
	}
	return b
}

func mustStr(v string, min, max int) BoundedString {
	b, err := NewBoundedString(v, min, max)
	if err != nil {
		panic(err)
	}
	return b
}

func intPtr(i int) *int {
	return &i
}
