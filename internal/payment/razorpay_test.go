package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureIsDeterministic(t *testing.T) {
	c := NewClient(Config{KeyID: "rzp_test_key", KeySecret: "secret"})

	first := c.Signature("order_ABC", "pay_XYZ")
	second := c.Signature("order_ABC", "pay_XYZ")
	assert.Equal(t, first, second)

	// Cross-check against a direct HMAC computation.
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_ABC|pay_XYZ"))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), first)
}

func TestVerifySignature(t *testing.T) {
	c := NewClient(Config{KeyID: "rzp_test_key", KeySecret: "secret"})
	sig := c.Signature("order_ABC", "pay_XYZ")

	assert.True(t, c.VerifySignature("order_ABC", "pay_XYZ", sig))

	// Flipping any single character must break verification.
	for i := 0; i < len(sig); i++ {
		flipped := []byte(sig)
		if flipped[i] == 'a' {
			flipped[i] = 'b'
		} else {
			flipped[i] = 'a'
		}
		assert.False(t, c.VerifySignature("order_ABC", "pay_XYZ", string(flipped)),
			"flipped char at %d should fail", i)
	}

	assert.False(t, c.VerifySignature("order_ABC", "pay_OTHER", sig))
	assert.False(t, c.VerifySignature("order_ABC", "pay_XYZ", ""))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "rzp_test_key", user)
		require.Equal(t, "secret", pass)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_123","amount":40000,"currency":"INR","receipt":"bk-1","status":"created"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{KeyID: "rzp_test_key", KeySecret: "secret", BaseURL: srv.URL})
	order, err := c.CreateOrder(context.Background(), 400, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, "order_123", order.ID)
	assert.Equal(t, int64(40000), order.Amount) // paise
	assert.Equal(t, "INR", order.Currency)
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"Authentication failed"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(Config{KeyID: "bad", KeySecret: "bad", BaseURL: srv.URL})
	_, err := c.CreateOrder(context.Background(), 400, "bk-1")
	require.Error(t, err)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "create order", gwErr.Op)
}
