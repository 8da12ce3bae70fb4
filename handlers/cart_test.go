package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desidine-api/models"
)

type cartFixture struct {
	env   *testEnv
	token string
	user  *models.User
	rest  *models.Restaurant
	item  *models.MenuItem
}

func newCartFixture(t *testing.T) *cartFixture {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	item := env.createMenuItem(t, rest.ID, "Paneer Tikka", 240)
	return &cartFixture{env: env, token: env.token(t, user), user: user, rest: rest, item: item}
}

func (f *cartFixture) add(t *testing.T, itemID uint, qty int) *httptest.ResponseRecorder {
	t.Helper()
	return f.env.request(t, http.MethodPost, "/api/cart/add", map[string]interface{}{
		"restaurant": f.rest.ID,
		"menuItem":   itemID,
		"quantity":   qty,
	}, f.token)
}

func TestGetCartEmptyWhenNoneExists(t *testing.T) {
	f := newCartFixture(t)

	w := f.env.request(t, http.MethodGet, "/api/cart", nil, f.token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestAddToCartIsAdditive(t *testing.T) {
	f := newCartFixture(t)

	w := f.add(t, f.item.ID, 1)
	require.Equal(t, http.StatusOK, w.Code)
	w = f.add(t, f.item.ID, 1)
	require.Equal(t, http.StatusOK, w.Code)

	var lines []models.CartItem
	require.NoError(t, f.env.db.Where("menu_item_id = ?", f.item.ID).Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	var carts int64
	f.env.db.Model(&models.Cart{}).Where("user_id = ?", f.user.ID).Count(&carts)
	assert.EqualValues(t, 1, carts)
}

func TestAddToCartUnknownMenuItem(t *testing.T) {
	f := newCartFixture(t)
	w := f.add(t, 9999, 1)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemZeroQuantityRemovesLine(t *testing.T) {
	f := newCartFixture(t)
	f.add(t, f.item.ID, 3)

	w := f.env.request(t, http.MethodPut, "/api/cart/update", map[string]interface{}{
		"menuItem": f.item.ID,
		"quantity": 0,
	}, f.token)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	f.env.db.Model(&models.CartItem{}).Where("menu_item_id = ?", f.item.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestUpdateCartItemReplacesQuantity(t *testing.T) {
	f := newCartFixture(t)
	f.add(t, f.item.ID, 3)

	w := f.env.request(t, http.MethodPut, "/api/cart/update", map[string]interface{}{
		"menuItem": f.item.ID,
		"quantity": 5,
	}, f.token)
	require.Equal(t, http.StatusOK, w.Code)

	var line models.CartItem
	require.NoError(t, f.env.db.Where("menu_item_id = ?", f.item.ID).First(&line).Error)
	assert.Equal(t, 5, line.Quantity)
}

func TestRemoveCartItem(t *testing.T) {
	f := newCartFixture(t)
	second := f.env.createMenuItem(t, f.rest.ID, "Garlic Naan", 60)
	f.add(t, f.item.ID, 1)
	f.add(t, second.ID, 2)

	w := f.env.request(t, http.MethodDelete, "/api/cart/remove", map[string]interface{}{
		"menuItem": f.item.ID,
	}, f.token)
	require.Equal(t, http.StatusOK, w.Code)

	var lines []models.CartItem
	require.NoError(t, f.env.db.Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, second.ID, lines[0].MenuItemID)
}

func TestClearCart(t *testing.T) {
	f := newCartFixture(t)
	second := f.env.createMenuItem(t, f.rest.ID, "Garlic Naan", 60)
	f.add(t, f.item.ID, 1)
	f.add(t, second.ID, 2)

	w := f.env.request(t, http.MethodDelete, "/api/cart/clear", nil, f.token)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	f.env.db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCartRequiresAuth(t *testing.T) {
	f := newCartFixture(t)
	w := f.env.request(t, http.MethodGet, "/api/cart", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
