package service

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(parts ...string) string {
	joined := ""
	for _, p := range parts {
		joined += p
	}
	sum := sha512.Sum512([]byte(joined))
	return hex.EncodeToString(sum[:])
}

func TestVerifyConfirmSignature(t *testing.T) {
	key := "server-key"
	sig := sign("ORDER-1", "pay_123", key)

	assert.True(t, VerifyConfirmSignature("ORDER-1", "pay_123", sig, key))
	assert.False(t, VerifyConfirmSignature("ORDER-1", "pay_123", sig, "other-key"))
	assert.False(t, VerifyConfirmSignature("ORDER-2", "pay_123", sig, key))
	assert.False(t, VerifyConfirmSignature("ORDER-1", "pay_123", "", key))
}

func TestVerifyWebhookSignature(t *testing.T) {
	key := "server-key"
	sig := sign("ORDER-1", "200", "1200.00", key)

	assert.True(t, VerifyWebhookSignature("ORDER-1", "200", "1200.00", sig, key))
	assert.False(t, VerifyWebhookSignature("ORDER-1", "200", "1300.00", sig, key))
	assert.False(t, VerifyWebhookSignature("ORDER-1", "201", "1200.00", sig, key))
}

func TestVerifySignature_CaseAndWhitespaceTolerant(t *testing.T) {
	key := "server-key"
	sig := sign("ORDER-1", "pay_123", key)

	assert.True(t, VerifyConfirmSignature("ORDER-1", "pay_123", "  "+sig+"\n", key))
}
