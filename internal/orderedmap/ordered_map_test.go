package orderedmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOrderedMap(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		om := New[string, int]()

		om.Set("one", 1)
		om.Set("two", 2)
		om.Set("three", 3)

		val, exists := om.Get("two")
		assert.True(t, exists)
		assert.Equal(t, 2, val)

		// overwrite keeps position
		om.Set("two", 22)
		val, exists = om.Get("two")
		assert.True(t, exists)
		assert.Equal(t, 22, val)
		assert.Equal(t, []string{"one", "two", "three"}, om.Keys())

		val, exists = om.Get("four")
		assert.False(t, exists)
		assert.Equal(t, 0, val)
	})

	t.Run("set if absent", func(t *testing.T) {
		om := New[string, int]()
		assert.True(t, om.SetIfAbsent("one", 1))
		assert.False(t, om.SetIfAbsent("one", 2))

		val, _ := om.Get("one")
		assert.Equal(t, 1, val)
	})

	t.Run("iterators", func(t *testing.T) {
		om := New[string, int]()
		om.Set("one", 1)
		om.Set("two", 2)
		om.Set("three", 3)

		var forward []int
		for it := om.Front(); it != nil; it = it.Next() {
			forward = append(forward, it.Value())
		}
		assert.Equal(t, []int{1, 2, 3}, forward)
	})

	t.Run("nil and empty maps", func(t *testing.T) {
		var om *OrderedMap[string, int]
		assert.Nil(t, om.Front())
		assert.Equal(t, 0, om.Len())
		assert.False(t, om.Has("x"))
		assert.Nil(t, New[string, int]().Front())
	})
}

func TestOrderedMapYAML(t *testing.T) {
	type doc struct {
		Options *OrderedMap[string, string] `yaml:"options"`
	}

	t.Run("keeps document order", func(t *testing.T) {
		var d doc
		err := yaml.Unmarshal([]byte("options:\n  zeta: z\n  alpha: a\n  mid: m\n"), &d)
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, d.Options.Keys())

		out, err := yaml.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, "options:\n    zeta: z\n    alpha: a\n    mid: m\n", string(out))
	})

	t.Run("rejects duplicate keys", func(t *testing.T) {
		var d doc
		err := yaml.Unmarshal([]byte("options:\n  a: x\n  a: y\n"), &d)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("rejects sequences", func(t *testing.T) {
		var d doc
		err := yaml.Unmarshal([]byte("options:\n  - a\n"), &d)
		assert.ErrorIs(t, err, ErrNotAMapping)
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var om OrderedMap[string, string]
		assert.Equal(t, 0, om.Len())
		om.Set("a", "b")
		assert.Equal(t, []string{"a"}, om.Keys())
	})
}
