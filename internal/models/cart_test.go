package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartDataAddCreatesAndIncrements(t *testing.T) {
	cart := CartData{}

	cart.Add("p1", "M")
	cart.Add("p1", "M")
	cart.Add("p1", "L")
	cart.Add("p2", "S")

	assert.Equal(t, CartData{
		"p1": {"M": 2, "L": 1},
		"p2": {"S": 1},
	}, cart)
	assert.Equal(t, 4, cart.ItemCount())
}

func TestCartDataRemoveDropsEmptyProduct(t *testing.T) {
	cart := CartData{"p1": {"M": 2, "L": 1}}

	require.NoError(t, cart.Remove("p1", "M"))
	assert.Equal(t, CartData{"p1": {"L": 1}}, cart)

	require.NoError(t, cart.Remove("p1", "L"))
	assert.Empty(t, cart)
}

func TestCartDataRemoveMissingIsNotFound(t *testing.T) {
	tests := []struct {
		name      string
		cart      CartData
		productID string
		size      string
	}{
		{name: "empty cart", cart: CartData{}, productID: "p1", size: "M"},
		{name: "missing size", cart: CartData{"p1": {"L": 1}}, productID: "p1", size: "M"},
		{name: "missing product", cart: CartData{"p2": {"M": 1}}, productID: "p1", size: "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.cart.Clone()
			err := tt.cart.Remove(tt.productID, tt.size)
			assert.ErrorIs(t, err, ErrCartItemNotFound)
			assert.Equal(t, before, tt.cart)
		})
	}
}

func TestCartDataSetQuantity(t *testing.T) {
	cart := CartData{"p1": {"M": 1, "S": 4}}

	require.NoError(t, cart.SetQuantity("p1", "M", 3))
	assert.Equal(t, 3, cart["p1"]["M"])

	require.NoError(t, cart.SetQuantity("p1", "S", 0))
	assert.Equal(t, CartData{"p1": {"M": 3}}, cart)

	assert.ErrorIs(t, cart.SetQuantity("p1", "XL", 2), ErrCartItemNotFound)
	assert.ErrorIs(t, cart.SetQuantity("p9", "M", 2), ErrCartItemNotFound)
}

func TestCartDataCloneIsDeep(t *testing.T) {
	cart := CartData{"p1": {"M": 1}}
	clone := cart.Clone()

	clone.Add("p1", "M")

	assert.Equal(t, 1, cart["p1"]["M"])
	assert.Equal(t, 2, clone["p1"]["M"])
}
