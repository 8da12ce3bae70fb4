package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desidine-api/models"
)

func TestAddMenuItemRequiresRestaurant(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "9111111111", "admin@example.com", models.RoleAdmin)

	w := env.request(t, http.MethodPost, "/api/menu", map[string]interface{}{
		"restaurant_id": 9999,
		"name":          "Paneer Tikka",
		"price":         240,
	}, env.token(t, admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMenuItemPartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "9111111111", "admin@example.com", models.RoleAdmin)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	item := env.createMenuItem(t, rest.ID, "Paneer Tikka", 240)

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/menu/%d", item.ID),
		map[string]interface{}{"price": 260}, env.token(t, admin))
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.MenuItem
	require.NoError(t, env.db.First(&updated, item.ID).Error)
	assert.Equal(t, 260.0, updated.Price)
	// untouched fields survive a partial update
	assert.Equal(t, "Paneer Tikka", updated.Name)
	assert.Equal(t, "Mains", updated.Section)
}

func TestDeleteMenuItem(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "9111111111", "admin@example.com", models.RoleAdmin)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	item := env.createMenuItem(t, rest.ID, "Paneer Tikka", 240)

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/menu/%d", item.ID), nil, env.token(t, admin))
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.db.Model(&models.MenuItem{}).Count(&count)
	assert.EqualValues(t, 0, count)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/menu/%d", item.ID), nil, env.token(t, admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMenuMutationAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	item := env.createMenuItem(t, rest.ID, "Paneer Tikka", 240)
	token := env.token(t, user)

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/menu/%d", item.ID),
		map[string]interface{}{"price": 1}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/menu/%d", item.ID), nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListMenuItemsFilteredByRestaurant(t *testing.T) {
	env := newTestEnv(t)
	restA := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	restB := env.createRestaurant(t, "Dosa Corner", 12.9716, 77.5946)
	env.createMenuItem(t, restA.ID, "Paneer Tikka", 240)
	env.createMenuItem(t, restB.ID, "Masala Dosa", 90)

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/menu?restaurant=%d", restA.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"])

	w = env.request(t, http.MethodGet, "/api/menu", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeBody(t, w)["count"])
}
