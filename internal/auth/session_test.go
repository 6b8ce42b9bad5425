package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutme/internal/auth"
)

func TestStatic(t *testing.T) {
	authenticator := auth.NewStatic("admin", "secret")

	assert.True(t, authenticator.Authenticate(context.Background(), "admin", "secret"))
	assert.False(t, authenticator.Authenticate(context.Background(), "admin", "wrong"))
	assert.False(t, authenticator.Authenticate(context.Background(), "other", "secret"))
}

func TestMemorySessions(t *testing.T) {
	t.Run("issued tokens validate", func(t *testing.T) {
		sessions := auth.NewMemorySessions(time.Minute)

		token, err := sessions.Issue(context.Background(), "admin")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		valid, err := sessions.Validate(context.Background(), token)

		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("unknown tokens do not validate", func(t *testing.T) {
		sessions := auth.NewMemorySessions(time.Minute)

		valid, err := sessions.Validate(context.Background(), "bogus")

		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("tokens expire", func(t *testing.T) {
		sessions := auth.NewMemorySessions(10 * time.Millisecond)

		token, err := sessions.Issue(context.Background(), "admin")
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		valid, err := sessions.Validate(context.Background(), token)

		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("tokens are unique per issue", func(t *testing.T) {
		sessions := auth.NewMemorySessions(time.Minute)

		first, err := sessions.Issue(context.Background(), "admin")
		require.NoError(t, err)

		second, err := sessions.Issue(context.Background(), "admin")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
