package shortlink_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutme/internal/shortlink"
)

func TestNewGenerator(t *testing.T) {
	t.Run("generates codes of the requested length", func(t *testing.T) {
		gen, err := shortlink.NewGenerator(shortlink.DefaultCodeLength)

		require.NoError(t, err)
		assert.Len(t, string(gen()), shortlink.DefaultCodeLength)
	})

	t.Run("draws only from the alphabet", func(t *testing.T) {
		gen, err := shortlink.NewGenerator(10)
		require.NoError(t, err)

		for range 50 {
			code := string(gen())
			for _, r := range code {
				assert.True(t, strings.ContainsRune(shortlink.Alphabet, r),
					"code %q contains %q outside the alphabet", code, r)
			}
		}
	})

	t.Run("successive codes differ", func(t *testing.T) {
		gen, err := shortlink.NewGenerator(10)
		require.NoError(t, err)

		seen := make(map[shortlink.Code]bool)
		for range 100 {
			code := gen()
			assert.False(t, seen[code], "code %q generated twice", code)
			seen[code] = true
		}
	})

	t.Run("rejects invalid length", func(t *testing.T) {
		_, err := shortlink.NewGenerator(0)

		assert.Error(t, err)
	})
}
