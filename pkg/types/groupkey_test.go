package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupKey(t *testing.T) {
	t.Run("NewGroupKey", func(t *testing.T) {
		a := NewGroupKey()
		b := NewGroupKey()

		require.NoError(t, a.Validate())
		assert.NotEqual(t, a, b, "每次分配的组标识应不同")
		assert.True(t, strings.HasPrefix(a.String(), groupKeyPrefix))
	})

	t.Run("GroupKeyOf", func(t *testing.T) {
		assert.Equal(t, GroupKey("store-1"), GroupKeyOf("  store-1 "))
		assert.Equal(t, GroupKeyOf("store-1"), GroupKeyOf("store-1"), "相同输入应得到相同组标识")
	})

	t.Run("Validate", func(t *testing.T) {
		assert.ErrorIs(t, GroupKey("").Validate(), ErrInvalidGroupKey)
		assert.ErrorIs(t, GroupKeyOf("   ").Validate(), ErrInvalidGroupKey)
	})

	t.Run("ShortString", func(t *testing.T) {
		assert.Equal(t, "abc", GroupKey("abc").ShortString())
		assert.Len(t, NewGroupKey().ShortString(), 8)
	})
}
