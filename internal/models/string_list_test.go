package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStringListDecodesLegacyString(t *testing.T) {
	data, err := bson.Marshal(bson.M{"category": " shirt "})
	require.NoError(t, err)

	var doc struct {
		Category StringList `bson:"category"`
	}
	require.NoError(t, bson.Unmarshal(data, &doc))
	assert.Equal(t, StringList{"shirt"}, doc.Category)
}

func TestStringListNilStoredAsEmptyArray(t *testing.T) {
	data, err := bson.Marshal(struct {
		Tags StringList `bson:"tags"`
	}{})
	require.NoError(t, err)

	var raw bson.M
	require.NoError(t, bson.Unmarshal(data, &raw))
	assert.IsType(t, bson.A{}, raw["tags"])
	assert.Len(t, raw["tags"], 0)
}

func TestParseStringList(t *testing.T) {
	assert.Equal(t, StringList{"S", "M", "L"}, ParseStringList("S, M,,L "))
	assert.Equal(t, StringList{"S", "M"}, ParseStringList("S", " M"))
	assert.Equal(t, StringList{}, ParseStringList(""))
}

func TestCheckEnum(t *testing.T) {
	assert.NoError(t, CheckEnum("size", []string{"S", "XXL"}, Sizes))
	assert.EqualError(t, CheckEnum("size", []string{"S", "XXXL"}, Sizes), "invalid size value: XXXL")
	assert.True(t, IsOrderStatus("shipped"))
	assert.False(t, IsOrderStatus("returned"))
}
