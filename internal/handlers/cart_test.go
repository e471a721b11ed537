package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func TestRespondCartErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err     error
		status  int
		message string
	}{
		{models.ErrCartItemNotFound, http.StatusNotFound, "Item not found in cart"},
		{errUserNotFound, http.StatusNotFound, "User not found"},
		{errors.New("socket closed"), http.StatusInternalServerError, "Server Error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		respondCartError(c, "POST /cart/removeItem", tc.err)

		assert.Equal(t, tc.status, rec.Code, tc.message)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.message, body["message"])
	}
}

func TestRemovingAbsentCartItemIsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cart := models.CartData{}
	cart.Add(primitive.NewObjectID().Hex(), "M")

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondCartError(c, "POST /cart/removeItem", cart.Remove(primitive.NewObjectID().Hex(), "M"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Item not found in cart"}`, rec.Body.String())
}

func TestCartItemIDIsCaseInsensitive(t *testing.T) {
	id := primitive.NewObjectID()
	upper := strings.ToUpper(id.Hex())

	parsed, err := cartItemRequest{ItemID: " " + upper + " ", Size: "M"}.validate()
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	cart := models.CartData{}
	cart.Add(id.Hex(), "M")
	require.NoError(t, cart.SetQuantity(parsed.Hex(), "M", 3))
	assert.Equal(t, 3, cart[id.Hex()]["M"])
	require.NoError(t, cart.Remove(parsed.Hex(), "M"))
	assert.Zero(t, cart.ItemCount())
}
