package menu_test

import (
	"testing"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreMenuItem(t *testing.T) {
	t.Run("should restore catalog entry", func(t *testing.T) {
		id := kernel.NewUUID()
		price, err := kernel.NewMoneyFromString("165.00")
		require.NoError(t, err)

		item, err := menu.RestoreMenuItem(id, "Paneer Tikka", "Char-grilled cottage cheese", "starters", price, true)

		require.NoError(t, err)
		assert.True(t, item.ID().IsEqual(id))
		assert.Equal(t, "Paneer Tikka", item.Name())
		assert.Equal(t, "starters", item.Category())
		assert.True(t, item.Price().IsEqual(price))
		assert.True(t, item.IsAvailable())
		require.NoError(t, item.Validate())
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := menu.RestoreMenuItem(kernel.NewUUID(), "", "", "", kernel.ZeroMoney(), true)

		require.Error(t, err)
	})

	t.Run("should reject empty id", func(t *testing.T) {
		_, err := menu.RestoreMenuItem(kernel.UUID{}, "Paneer Tikka", "", "", kernel.ZeroMoney(), true)

		require.Error(t, err)
	})
}

func TestMenuItem_Validate(t *testing.T) {
	t.Run("should reject zero-value item", func(t *testing.T) {
		var item menu.MenuItem

		require.Error(t, item.Validate())
	})
}
