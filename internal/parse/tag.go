// Package parse reads the `slash` struct tag grammar and splits invocation
// lines for the command line tools.
package parse

import (
	"strconv"
	"strings"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/internal/util"
)

// TagConfig is the parsed form of one `slash` struct tag. Pointer fields are
// nil when the attribute is absent.
type TagConfig struct {
	Name         string
	Type         string
	Min          *util.Number
	Max          *util.Number
	MinLength    *int
	MaxLength    *int
	Autocomplete bool
	Optional     bool
	Channels     []string
	Choices      string
}

// HasBounds reports whether any numeric or length bound is set.
func (c *TagConfig) HasBounds() bool {
	return c.Min != nil || c.Max != nil || c.MinLength != nil || c.MaxLength != nil
}

// UnmarshalTagFormat parses a tag of the form
// "name:count;min:1;max:10;autocomplete:true". field names the struct field
// or declaration the tag belongs to and is only used in errors.
func UnmarshalTagFormat(tag, field string) (*TagConfig, error) {
	config := &TagConfig{}
	if strings.TrimSpace(tag) == "" {
		return config, nil
	}

	seen := make(map[string]bool)
	for _, part := range strings.Split(tag, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		key, value, found := strings.Cut(part, ":")
		if !found {
			return nil, errs.ErrInvalidTagFormat.WithArgs(part)
		}
		key = strings.TrimSpace(key)
		if seen[key] {
			return nil, errs.ErrInvalidTagFormat.WithArgs(tag)
		}
		seen[key] = true

		var err error
		switch key {
		case "name":
			config.Name = strings.TrimSpace(value)
			if config.Name == "" {
				err = errs.ErrInvalidTagAttribute.WithArgs(value, key, field)
			}
		case "type":
			config.Type = strings.ToLower(strings.TrimSpace(value))
		case "min":
			config.Min, err = number(key, value, field)
		case "max":
			config.Max, err = number(key, value, field)
		case "minlen":
			config.MinLength, err = length(key, value, field)
		case "maxlen":
			config.MaxLength, err = length(key, value, field)
		case "autocomplete":
			config.Autocomplete, err = boolean(key, value, field)
		case "optional":
			config.Optional, err = boolean(key, value, field)
		case "channel":
			config.Channels, err = list(key, value, field)
		case "choices":
			config.Choices = strings.TrimSpace(value)
			if config.Choices == "" {
				err = errs.ErrInvalidTagAttribute.WithArgs(value, key, field)
			}
		default:
			err = errs.ErrUnknownTagAttribute.WithArgs(key, field)
		}
		if err != nil {
			return nil, err
		}
	}

	return config, nil
}

func number(key, value, field string) (*util.Number, error) {
	n, ok := util.ParseNumeric(strings.TrimSpace(value))
	if !ok {
		return nil, errs.ErrInvalidTagAttribute.WithArgs(value, key, field)
	}

	return &n, nil
}

func length(key, value, field string) (*int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return nil, errs.ErrInvalidTagAttribute.WithArgs(value, key, field)
	}

	return &n, nil
}

func boolean(key, value, field string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, errs.ErrInvalidTagAttribute.WithArgs(value, key, field)
	}

	return b, nil
}

func list(key, value, field string) ([]string, error) {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, strings.ToLower(item))
		}
	}
	if len(out) == 0 {
		return nil, errs.ErrInvalidTagAttribute.WithArgs(value, key, field)
	}

	return out, nil
}
