package models

import "errors"

var ErrCartItemNotFound = errors.New("item not found in cart")

// CartData maps product id to size to quantity.
type CartData map[string]map[string]int

// Add increments the quantity of (productID, size) by one.
func (c CartData) Add(productID, size string) {
	sizes, ok := c[productID]
	if !ok {
		sizes = map[string]int{}
		c[productID] = sizes
	}
	sizes[size]++
}

// SetQuantity overwrites an existing entry. A quantity of zero removes it.
func (c CartData) SetQuantity(productID, size string, quantity int) error {
	if _, ok := c[productID][size]; !ok {
		return ErrCartItemNotFound
	}
	if quantity == 0 {
		return c.Remove(productID, size)
	}
	c[productID][size] = quantity
	return nil
}

// Remove deletes (productID, size) and drops the product entry once it has
// no sizes left.
func (c CartData) Remove(productID, size string) error {
	sizes, ok := c[productID]
	if !ok {
		return ErrCartItemNotFound
	}
	if _, ok := sizes[size]; !ok {
		return ErrCartItemNotFound
	}
	delete(sizes, size)
	if len(sizes) == 0 {
		delete(c, productID)
	}
	return nil
}

func (c CartData) ItemCount() int {
	total := 0
	for _, sizes := range c {
		for _, qty := range sizes {
			total += qty
		}
	}
	return total
}

func (c CartData) Clone() CartData {
	out := make(CartData, len(c))
	for id, sizes := range c {
		copied := make(map[string]int, len(sizes))
		for size, qty := range sizes {
			copied[size] = qty
		}
		out[id] = copied
	}
	return out
}
