package models

import "fmt"

var (
	Categories    = []string{"topwear", "bottomwear", "winterwear", "shirt", "pant", "jacket"}
	Sizes         = []string{"XS", "S", "M", "L", "XL", "XXL"}
	AgeCategories = []string{"Baby", "Kids", "Men", "Women", "Unisex"}
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

var OrderStatuses = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func IsOrderStatus(status string) bool {
	return contains(OrderStatuses, status)
}

func IsSize(size string) bool {
	return contains(Sizes, size)
}

// CheckEnum returns an error naming the first value not in allowed.
func CheckEnum(field string, values []string, allowed []string) error {
	for _, v := range values {
		if !contains(allowed, v) {
			return fmt.Errorf("invalid %s value: %s", field, v)
		}
	}
	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
