package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront/catalog"
)

func newCart() *Cart {
	return New(catalog.Default())
}

func TestAdd_RepeatedCallsMergeIntoOneLine(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		c := newCart()
		for i := 0; i < n; i++ {
			require.True(t, c.Add(3))
		}

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].ID)
		assert.Equal(t, n, lines[0].Quantity)
	}
}

func TestAdd_UnknownProductIsNoOp(t *testing.T) {
	c := newCart()
	assert.False(t, c.Add(999))
	assert.True(t, c.IsEmpty())
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	c := newCart()
	c.Add(5)
	c.Add(1)
	c.Add(5)
	c.Add(2)

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []int{5, 1, 2}, []int{lines[0].ID, lines[1].ID, lines[2].ID})
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	c := newCart()
	c.Add(1)

	require.NoError(t, c.UpdateQuantity(1, 4))
	assert.Equal(t, 4, c.Lines()[0].Quantity)
}

func TestUpdateQuantity_RejectsBelowOne(t *testing.T) {
	c := newCart()
	c.Add(1)
	c.Add(1)

	for _, q := range []int{0, -1, -100} {
		err := c.UpdateQuantity(1, q)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 2, c.Lines()[0].Quantity)
	}
}

func TestUpdateQuantity_UnknownIDLeavesCartUnchanged(t *testing.T) {
	c := newCart()
	c.Add(1)
	c.Add(2)
	before := c.Lines()

	require.NoError(t, c.UpdateQuantity(6, 3))
	assert.Equal(t, before, c.Lines())
}

func TestRemove(t *testing.T) {
	c := newCart()
	c.Add(1)
	c.Add(2)
	c.Add(3)

	c.Remove(2)
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].ID)
	assert.Equal(t, 3, lines[1].ID)

	c.Remove(42)
	assert.Len(t, c.Lines(), 2)
}

func TestTotalItemCount(t *testing.T) {
	c := newCart()
	assert.Equal(t, 0, c.TotalItemCount())

	c.Add(1)
	c.Add(1)
	c.Add(4)
	require.NoError(t, c.UpdateQuantity(4, 5))
	assert.Equal(t, 7, c.TotalItemCount())

	c.Clear()
	assert.Equal(t, 0, c.TotalItemCount())
	assert.True(t, c.IsEmpty())
}

func TestLinesReturnsCopy(t *testing.T) {
	c := newCart()
	c.Add(1)
	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}
