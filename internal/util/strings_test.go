package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kick", "kick", 0},
		{"kick", "kik", 1},
		{"kitten", "sitting", 3},
		{"größe", "grösse", 2},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"/"+tt.s2, func(t *testing.T) {
			assert.Equal(t, tt.want, LevenshteinDistance(tt.s1, tt.s2))
			assert.Equal(t, tt.want, LevenshteinDistance(tt.s2, tt.s1))
		})
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"kick", "ban", "ping"}

	got, ok := Closest("kik", candidates, 2)
	assert.True(t, ok)
	assert.Equal(t, "kick", got)

	_, ok = Closest("configure", candidates, 2)
	assert.False(t, ok)

	_, ok = Closest("kick", nil, 2)
	assert.False(t, ok)
}
