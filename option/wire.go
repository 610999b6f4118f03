package option

import (
	"strconv"
	"time"
)

// Snowflake is a platform entity id.
type Snowflake uint64

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// ParseSnowflake parses the decimal form of an id.
func ParseSnowflake(s string) (Snowflake, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return Snowflake(v), err
}

// EntityKind tags the entity carried by a WireValue.
type EntityKind int

const (
	EntityUser EntityKind = iota + 1
	EntityRole
	EntityChannel
	EntityAttachment
)

func (k EntityKind) String() string {
	switch k {
	case EntityUser:
		return "user"
	case EntityRole:
		return "role"
	case EntityChannel:
		return "channel"
	case EntityAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// User is a resolved user.
type User struct {
	ID   Snowflake `json:"id,string"`
	Name string    `json:"username"`
	Bot  bool      `json:"bot,omitempty"`
}

// PartialMember is the server-specific data the platform sends alongside a
// user that is a member of the server the command was invoked in.
type PartialMember struct {
	Nick     string      `json:"nick,omitempty"`
	Roles    []Snowflake `json:"roles,omitempty"`
	JoinedAt time.Time   `json:"joined_at"`
}

// Member is a user together with its server membership.
type Member struct {
	User
	PartialMember
}

// Role is a resolved role.
type Role struct {
	ID   Snowflake `json:"id,string"`
	Name string    `json:"name"`
}

// Channel is a resolved partial channel.
type Channel struct {
	ID   Snowflake   `json:"id,string"`
	Name string      `json:"name"`
	Type ChannelType `json:"type"`
}

// Attachment is an uploaded file.
type Attachment struct {
	ID       Snowflake `json:"id,string"`
	Filename string    `json:"filename"`
	URL      string    `json:"url"`
	Size     int       `json:"size"`
}

// Mentionable is either a user or a role; exactly one of the pointers is set.
type Mentionable struct {
	User   *User
	Member *PartialMember
	Role   *Role
}

// Entity is the resolved entity payload of a wire value. Which fields are
// meaningful depends on Kind.
type Entity struct {
	Kind       EntityKind
	User       User
	Member     *PartialMember
	Role       Role
	Channel    Channel
	Attachment Attachment
}

// WireValue is the tagged value the platform sends for one option. Kind
// selects which payload field is meaningful. A focused value carries the raw
// text the user is still typing in Partial.
type WireValue struct {
	Kind    Kind
	Str     string
	Int     int64
	Num     float64
	Bool    bool
	Entity  *Entity
	Focused bool
	Partial string
}

// Slot is the wire value for one declared option, or an absent slot when the
// user left an optional option out.
type Slot struct {
	Present bool
	Value   WireValue
}

// Absent is the slot of an option the user did not fill in.
var Absent = Slot{}

// Present wraps v in a filled slot.
func Present(v WireValue) Slot {
	return Slot{Present: true, Value: v}
}

func StringValue(s string) WireValue {
	return WireValue{Kind: KindString, Str: s}
}

func IntegerValue(i int64) WireValue {
	return WireValue{Kind: KindInteger, Int: i}
}

func NumberValue(f float64) WireValue {
	return WireValue{Kind: KindNumber, Num: f}
}

func BooleanValue(b bool) WireValue {
	return WireValue{Kind: KindBoolean, Bool: b}
}

// UserValue is a user option value; member may be nil when the user is not
// part of the server.
func UserValue(u User, member *PartialMember) WireValue {
	return WireValue{Kind: KindUser, Entity: &Entity{Kind: EntityUser, User: u, Member: member}}
}

func RoleValue(r Role) WireValue {
	return WireValue{Kind: KindRole, Entity: &Entity{Kind: EntityRole, Role: r}}
}

func ChannelValue(c Channel) WireValue {
	return WireValue{Kind: KindChannel, Entity: &Entity{Kind: EntityChannel, Channel: c}}
}

func AttachmentValue(a Attachment) WireValue {
	return WireValue{Kind: KindAttachment, Entity: &Entity{Kind: EntityAttachment, Attachment: a}}
}

// MentionableValue retags a user or role value the way the platform sends
// mentionable options.
func MentionableValue(v WireValue) WireValue {
	v.Kind = KindMentionable
	return v
}

// FocusedValue is the value of the option the user is typing in during an
// autocomplete request. kind is the declared kind of the option.
func FocusedValue(kind Kind, partial string) WireValue {
	return WireValue{Kind: kind, Focused: true, Partial: partial}
}
