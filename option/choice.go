package option

import (
	"github.com/napalu/slashopt/errs"
)

// ChoiceSet is a named, ordered enumeration of stable keys. The name selects
// the set's entry in the localization store; each key is both the value sent
// back by the platform and the default display label.
type ChoiceSet struct {
	name  string
	keys  []string
	index map[string]struct{}
}

// NewChoiceSet needs a non-empty name and between 1 and MaxChoices distinct,
// non-empty keys of at most 100 bytes.
func NewChoiceSet(name string, keys ...string) (*ChoiceSet, error) {
	if name == "" || len(keys) == 0 || len(keys) > MaxChoices {
		return nil, errs.ErrInvalidChoiceSet.WithArgs(name)
	}

	set := &ChoiceSet{
		name:  name,
		keys:  make([]string, 0, len(keys)),
		index: make(map[string]struct{}, len(keys)),
	}
	for _, key := range keys {
		if key == "" || len(key) > 100 {
			return nil, errs.ErrInvalidChoiceSet.WithArgs(name)
		}
		if _, dup := set.index[key]; dup {
			return nil, errs.ErrInvalidChoiceSet.WithArgs(name).Wrap(errs.ErrDuplicateChoice.WithArgs(key))
		}
		set.index[key] = struct{}{}
		set.keys = append(set.keys, key)
	}

	return set, nil
}

// ChoicesOf builds a set from the values of a string enumeration type.
func ChoicesOf[T ~string](name string, values ...T) (*ChoiceSet, error) {
	keys := make([]string, len(values))
	for i, v := range values {
		keys[i] = string(v)
	}

	return NewChoiceSet(name, keys...)
}

func MustChoiceSet(name string, keys ...string) *ChoiceSet {
	set, err := NewChoiceSet(name, keys...)
	if err != nil {
		panic(err)
	}

	return set
}

func (c *ChoiceSet) Name() string {
	return c.name
}

// Keys returns the keys in declaration order.
func (c *ChoiceSet) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)

	return out
}

func (c *ChoiceSet) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

func (c *ChoiceSet) Len() int {
	return len(c.keys)
}
