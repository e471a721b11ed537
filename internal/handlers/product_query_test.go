package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCatalogFilterDefaults(t *testing.T) {
	filter, err := catalogFilter(url.Values{"unknown": {"x"}}, false, time.Now())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"isActive": true}, filter)
}

func TestCatalogFilterFields(t *testing.T) {
	query := url.Values{
		"category":   {"shirt"},
		"size":       {"S, M"},
		"minPrice":   {"10"},
		"maxPrice":   {"50.5"},
		"bestSeller": {"true"},
	}

	filter, err := catalogFilter(query, false, time.Now())
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$in": []string{"shirt"}}, filter["category"])
	assert.Equal(t, bson.M{"$in": []string{"S", "M"}}, filter["size"])
	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 50.5}, filter["price"])
	assert.Equal(t, true, filter["bestSeller"])
	assert.NotContains(t, filter, "ageCategory")
}

func TestCatalogFilterOffersUseOfferPrice(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	filter, err := catalogFilter(url.Values{"maxPrice": {"20"}}, true, now)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$gt": 0, "$lte": 20.0}, filter["offerPrice"])
	assert.Equal(t, bson.M{"$lte": now}, filter["offerStartDate"])
	assert.Equal(t, bson.M{"$gte": now}, filter["offerEndDate"])
	assert.NotContains(t, filter, "price")
}

func TestCatalogFilterRejectsBadNumbers(t *testing.T) {
	_, err := catalogFilter(url.Values{"minPrice": {"cheap"}}, false, time.Now())
	assert.EqualError(t, err, "invalid minPrice value: cheap")

	_, err = catalogFilter(url.Values{"bestSeller": {"maybe"}}, false, time.Now())
	assert.Error(t, err)
}

func TestSearchFilterEscapesRegex(t *testing.T) {
	search := searchFilter("  a+b (c) ")
	require.Len(t, search, 5)
	assert.Equal(t, bson.M{"name": bson.M{"$regex": `a\+b \(c\)`, "$options": "i"}}, search[0])

	assert.Nil(t, searchFilter("   "))
}

func TestProductSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, productSort("-price"))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, productSort(""))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, productSort("password"))
}

func TestDashboardFilter(t *testing.T) {
	filter, err := dashboardFilter(url.Values{})
	require.NoError(t, err)
	assert.Empty(t, filter)

	filter, err = dashboardFilter(url.Values{"isActive": {"false"}, "search": {"coat"}})
	require.NoError(t, err)
	assert.Equal(t, false, filter["isActive"])
	assert.Len(t, filter["$or"], 5)
}
