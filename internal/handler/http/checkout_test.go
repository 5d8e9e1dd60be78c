package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutBody() map[string]any {
	return map[string]any{
		"email":        "buyer@example.com",
		"first_name":   "Thandi",
		"last_name":    "M",
		"card_number":  "4242424242424242",
		"expiry_date":  "12/30",
		"cvv":          "123",
		"name_on_card": "Thandi M",
	}
}

func TestCheckoutSuccess(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1", map[string]any{"pack_id": "1"})

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/checkout", "sess-1", checkoutBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	order := dataOf(t, body)
	assert.NotEmpty(t, order["id"])
	assert.EqualValues(t, 53145, order["total_amount"])
	assert.Equal(t, "usd", order["currency"])
	assert.Contains(t, order["charge_id"], "ch_")

	// The cart is empty afterwards.
	_, cartBody := doJSON(t, srv, http.MethodGet, "/api/v1/cart", "sess-1", nil)
	assert.EqualValues(t, 0, dataOf(t, cartBody)["item_count"])
}

func TestCheckoutEmptyCart(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/checkout", "sess-1", checkoutBody())
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errObj := body["error"].(map[string]any)
	assert.Equal(t, "INVALID_INPUT", errObj["code"])
}

func TestCheckoutDeclinedCardLeavesCart(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1", map[string]any{"pack_id": "1"})

	declined := checkoutBody()
	declined["card_number"] = "4242424242424241"

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/checkout", "sess-1", declined)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errObj := body["error"].(map[string]any)
	assert.Equal(t, "PAYMENT_FAILED", errObj["code"])

	_, cartBody := doJSON(t, srv, http.MethodGet, "/api/v1/cart", "sess-1", nil)
	assert.EqualValues(t, 1, dataOf(t, cartBody)["item_count"])
}

func TestCheckoutValidation(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1", map[string]any{"pack_id": "1"})

	invalid := checkoutBody()
	invalid["email"] = "not-an-email"
	delete(invalid, "cvv")

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/checkout", "sess-1", invalid)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])

	fields := errObj["fields"].(map[string]any)
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "CVV")
}

func TestCheckoutRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, srv, http.MethodPost, "/api/v1/checkout", "", checkoutBody())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
