package option

import (
	"strings"
)

// Kind is the platform's numeric option type.
type Kind int

const (
	KindSubcommand      Kind = 1
	KindSubcommandGroup Kind = 2
	KindString          Kind = 3
	KindInteger         Kind = 4
	KindBoolean         Kind = 5
	KindUser            Kind = 6
	KindChannel         Kind = 7
	KindRole            Kind = 8
	KindMentionable     Kind = 9
	KindNumber          Kind = 10
	KindAttachment      Kind = 11
)

var kindNames = map[Kind]string{
	KindSubcommand:      "subcommand",
	KindSubcommandGroup: "group",
	KindString:          "string",
	KindInteger:         "integer",
	KindBoolean:         "boolean",
	KindUser:            "user",
	KindChannel:         "channel",
	KindRole:            "role",
	KindMentionable:     "mentionable",
	KindNumber:          "number",
	KindAttachment:      "attachment",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// IsValue reports whether k carries a value, i.e. is neither a subcommand nor
// a group.
func (k Kind) IsValue() bool {
	return k >= KindString && k <= KindAttachment
}

// The platform rejects integers outside the range a double can represent
// exactly.
const (
	MinInteger int64 = -9007199254740991
	MaxInteger int64 = 9007199254740991
)

// MaxStringLength bounds min_length and max_length of string options.
const MaxStringLength = 6000

// MaxChoices is the largest choice list an option may declare.
const MaxChoices = 25

// ChannelType narrows the channels a channel option accepts.
type ChannelType int

const (
	ChannelText          ChannelType = 0
	ChannelPrivate       ChannelType = 1
	ChannelVoice         ChannelType = 2
	ChannelCategory      ChannelType = 4
	ChannelNews          ChannelType = 5
	ChannelNewsThread    ChannelType = 10
	ChannelPublicThread  ChannelType = 11
	ChannelPrivateThread ChannelType = 12
	ChannelStage         ChannelType = 13
	ChannelDirectory     ChannelType = 14
	ChannelForum         ChannelType = 15
)

var channelNames = map[ChannelType]string{
	ChannelText:          "text",
	ChannelPrivate:       "private",
	ChannelVoice:         "voice",
	ChannelCategory:      "category",
	ChannelNews:          "news",
	ChannelNewsThread:    "news_thread",
	ChannelPublicThread:  "public_thread",
	ChannelPrivateThread: "private_thread",
	ChannelStage:         "stage",
	ChannelDirectory:     "directory",
	ChannelForum:         "forum",
}

// GuildChannels are all channel types that live in a server.
var GuildChannels = []ChannelType{
	ChannelText, ChannelVoice, ChannelNews, ChannelNewsThread, ChannelPublicThread,
	ChannelPrivateThread, ChannelStage, ChannelDirectory, ChannelForum,
}

func (c ChannelType) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}

	return "unknown"
}

// ParseChannelType accepts the names used in struct tags, e.g. "text" or
// "public-thread".
func ParseChannelType(name string) (ChannelType, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for c, n := range channelNames {
		if n == name {
			return c, true
		}
	}

	return 0, false
}
