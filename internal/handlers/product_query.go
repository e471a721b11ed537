package handlers

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"storefront/internal/models"
)

var productSorts = map[string]bson.D{
	"price":      {{Key: "price", Value: 1}},
	"-price":     {{Key: "price", Value: -1}},
	"createdAt":  {{Key: "createdAt", Value: 1}},
	"-createdAt": {{Key: "createdAt", Value: -1}},
	"name":       {{Key: "name", Value: 1}},
	"-name":      {{Key: "name", Value: -1}},
}

// productSort maps a sort key from the query string to a mongo sort.
// Unknown keys fall back to newest first.
func productSort(raw string) bson.D {
	if sort, ok := productSorts[strings.TrimSpace(raw)]; ok {
		return sort
	}
	return productSorts["-createdAt"]
}

// catalogFilter builds the storefront filter. With offersOnly set, only
// products whose offer window contains now match and the price bounds
// apply to offerPrice.
func catalogFilter(query url.Values, offersOnly bool, now time.Time) (bson.M, error) {
	filter := bson.M{"isActive": true}

	for _, field := range []string{"category", "ageCategory", "size"} {
		if values := models.ParseStringList(query[field]...); len(values) > 0 {
			filter[field] = bson.M{"$in": []string(values)}
		}
	}

	priceField := "price"
	priceRange := bson.M{}
	if offersOnly {
		priceField = "offerPrice"
		priceRange["$gt"] = 0
		filter["offerStartDate"] = bson.M{"$lte": now}
		filter["offerEndDate"] = bson.M{"$gte": now}
	}
	for param, op := range map[string]string{"minPrice": "$gte", "maxPrice": "$lte"} {
		raw := strings.TrimSpace(query.Get(param))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			return nil, fmt.Errorf("invalid %s value: %s", param, raw)
		}
		priceRange[op] = value
	}
	if len(priceRange) > 0 {
		filter[priceField] = priceRange
	}

	if raw := strings.TrimSpace(query.Get("bestSeller")); raw != "" {
		bestSeller, err := parseBoolValue(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bestSeller value: %s", raw)
		}
		filter["bestSeller"] = bestSeller
	}

	if search := searchFilter(query.Get("search")); search != nil {
		filter["$or"] = search
	}

	return filter, nil
}

// dashboardFilter covers inactive products too; isActive narrows it when
// given.
func dashboardFilter(query url.Values) (bson.M, error) {
	filter := bson.M{}
	if raw := strings.TrimSpace(query.Get("isActive")); raw != "" {
		active, err := parseBoolValue(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid isActive value: %s", raw)
		}
		filter["isActive"] = active
	}
	if search := searchFilter(query.Get("search")); search != nil {
		filter["$or"] = search
	}
	return filter, nil
}

// searchFilter matches the term literally, case-insensitive, against the
// text fields of a product.
func searchFilter(term string) bson.A {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	pattern := bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
	return bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
		bson.M{"category": pattern},
		bson.M{"ageCategory": pattern},
		bson.M{"tags": pattern},
	}
}
