package kernel_test

import (
	"testing"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("should create ID from positive value", func(t *testing.T) {
		id, err := kernel.NewID(7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), id.Int64())
		assert.Equal(t, "7", id.String())
		assert.False(t, id.IsZero())
		require.NoError(t, id.Validate())
	})

	t.Run("should reject zero and negative values", func(t *testing.T) {
		for _, v := range []int64{0, -1, -100} {
			id, err := kernel.NewID(v)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.True(t, id.IsZero())
		}
	})
}

func TestParseID(t *testing.T) {
	t.Run("should parse decimal string", func(t *testing.T) {
		id, err := kernel.ParseID("1024")

		require.NoError(t, err)
		assert.Equal(t, int64(1024), id.Int64())
	})

	t.Run("should reject non numeric input", func(t *testing.T) {
		_, err := kernel.ParseID("abc")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero", func(t *testing.T) {
		_, err := kernel.ParseID("0")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestID_Validate(t *testing.T) {
	var zero kernel.ID

	assert.Equal(t, kernel.ErrIDIsNotConstructed, zero.Validate())
}

func TestID_IsEqual(t *testing.T) {
	a, _ := kernel.NewID(3)
	b, _ := kernel.NewID(3)
	c, _ := kernel.NewID(4)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
