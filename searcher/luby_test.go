package searcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLuby(t *testing.T) {
	vals := []uint{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8, 1, 1, 2, 1, 1, 2, 4}
	for i, want := range vals {
		assert.Equal(t, want, luby(uint(i)+1), "luby(%d)", i+1)
	}
}
