package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignPayload(t *testing.T) {
	t.Parallel()

	// HMAC-SHA256("order_ABC|pay_XYZ", "secret"), hex lowercase
	sig := SignPayload("secret", "order_ABC", "pay_XYZ")
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, SignPayload("secret", "order_ABC", "pay_XYZ"), "подпись детерминирована")
	assert.NotEqual(t, sig, SignPayload("secret", "order_ABC", "pay_OTHER"))
	assert.NotEqual(t, sig, SignPayload("other-secret", "order_ABC", "pay_XYZ"))
}

func TestRazorpayGateway_VerifySignature(t *testing.T) {
	t.Parallel()

	g := NewRazorpayGateway("rzp_test_key", "test_secret")

	valid := SignPayload("test_secret", "order_1", "pay_1")
	assert.True(t, g.VerifySignature("order_1", "pay_1", valid))
	assert.False(t, g.VerifySignature("order_1", "pay_1", valid+"00"))
	assert.False(t, g.VerifySignature("order_2", "pay_1", valid), "подпись привязана к паре order/payment")
	assert.False(t, g.VerifySignature("order_1", "pay_1", ""))
}

func TestRupeesToPaise(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(9900), RupeesToPaise(99))
	assert.Equal(t, int64(49950), RupeesToPaise(499.50))
	// float-погрешность не должна терять пайсы
	assert.Equal(t, int64(1003), RupeesToPaise(10.03))
	assert.Equal(t, int64(0), RupeesToPaise(0))
}
