package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counter pembayaran per metode & hasil; dipakai controller payments.
var (
	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "schoolfeesku_payments_total",
		Help: "Payment submissions grouped by method and outcome.",
	}, []string{"method", "outcome"})

	GatewayEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "schoolfeesku_gateway_events_total",
		Help: "Gateway notifications grouped by transaction status.",
	}, []string{"transaction_status"})

	AllocationRemainder = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schoolfeesku_allocation_remainder_rejections_total",
		Help: "Submissions rejected because the entered amount exceeded total due.",
	})
)
