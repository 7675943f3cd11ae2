package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "schoolfeesku_backend/internals/features/finance/payments/model"
)

func TestMapGatewayStatus(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name       string
		ts         string
		fraud      string
		want       string
		wantPaidAt bool
	}{
		{"settlement", "settlement", "", model.PaymentStatusPaid, true},
		{"capture accepted", "capture", "accept", model.PaymentStatusPaid, true},
		{"capture challenged", "capture", "challenge", model.PaymentStatusAwaitingCallback, false},
		{"capture denied fraud", "capture", "deny", model.PaymentStatusFailed, false},
		{"pending", "pending", "", model.PaymentStatusPending, false},
		{"deny", "deny", "", model.PaymentStatusFailed, false},
		{"cancel", "cancel", "", model.PaymentStatusCanceled, false},
		{"expire", "expire", "", model.PaymentStatusExpired, false},
		{"refund", "refund", "", model.PaymentStatusRefunded, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, fields := MapGatewayStatus(model.PaymentStatusPending, tc.ts, tc.fraud, now)
			assert.Equal(t, tc.want, got)
			if tc.wantPaidAt {
				require.NotNil(t, fields.PaidAt)
				assert.Equal(t, now, *fields.PaidAt)
			} else {
				assert.Nil(t, fields.PaidAt)
			}
		})
	}
}

func TestMapGatewayStatus_UnknownKeepsCurrent(t *testing.T) {
	got, fields := MapGatewayStatus(model.PaymentStatusAwaitingCallback, "weird_status", "", time.Now())
	assert.Equal(t, model.PaymentStatusAwaitingCallback, got)
	assert.Nil(t, fields.PaidAt)
	assert.Nil(t, fields.FailedAt)
}

func TestGenOrderID(t *testing.T) {
	id := GenOrderID("FEE")

	assert.True(t, strings.HasPrefix(id, "FEE-"))
	parts := strings.Split(id, "-")
	// FEE-YYYYMMDD-HHMMSS-XXXXXXXX
	require.Len(t, parts, 4)
	assert.Len(t, parts[3], 8)
	assert.Equal(t, strings.ToUpper(parts[3]), parts[3])

	other := GenOrderID("FEE")
	assert.NotEqual(t, id, other)
}
