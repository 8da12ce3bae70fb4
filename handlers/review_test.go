package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desidine-api/models"
)

func TestAddReviewAndAverageRating(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	other := env.createUser(t, "9000000000", "ravi@example.com", models.RoleUser)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	orderA := env.createOrder(t, user.ID, rest.ID, models.StatusDelivered)
	orderB := env.createOrder(t, other.ID, rest.ID, models.StatusDelivered)

	w := env.request(t, http.MethodPost, "/api/review", map[string]interface{}{
		"order":      orderA.ID,
		"restaurant": rest.ID,
		"rating":     5,
		"comment":    "Great biryani",
	}, env.token(t, user))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/review", map[string]interface{}{
		"order":      orderB.ID,
		"restaurant": rest.ID,
		"rating":     3,
	}, env.token(t, other))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/review/%d", rest.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeBody(t, w)["count"])

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/review/%d/average", rest.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, decodeBody(t, w)["avgRating"])
}

func TestAverageRatingZeroWithoutReviews(t *testing.T) {
	env := newTestEnv(t)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/review/%d/average", rest.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["avgRating"])
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	order := env.createOrder(t, user.ID, rest.ID, models.StatusDelivered)

	w := env.request(t, http.MethodPost, "/api/review", map[string]interface{}{
		"order":      order.ID,
		"restaurant": rest.ID,
		"rating":     6,
	}, env.token(t, user))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateOffer(t *testing.T) {
	env := newTestEnv(t)

	live := models.Offer{Code: "WELCOME50", Type: models.OfferPercent, Value: 50, Expiry: time.Now().Add(24 * time.Hour)}
	stale := models.Offer{Code: "OLD10", Type: models.OfferAmount, Value: 10, Expiry: time.Now().Add(-time.Hour)}
	require.NoError(t, env.db.Create(&live).Error)
	require.NoError(t, env.db.Create(&stale).Error)

	w := env.request(t, http.MethodPost, "/api/offer/validate", map[string]interface{}{"code": "WELCOME50"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/offer/validate", map[string]interface{}{"code": "OLD10"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Offer expired", decodeBody(t, w)["message"])

	w = env.request(t, http.MethodPost, "/api/offer/validate", map[string]interface{}{"code": "NOPE"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
