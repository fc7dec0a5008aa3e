package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(webhookEvents.WithLabelValues("checkout.session.completed", "processed"))
	WebhookEvent("checkout.session.completed", "processed")
	after := testutil.ToFloat64(webhookEvents.WithLabelValues("checkout.session.completed", "processed"))
	assert.Equal(t, before+1, after)

	before = testutil.ToFloat64(webhookEvents.WithLabelValues("unknown", "ignored"))
	WebhookEvent("", "ignored")
	assert.Equal(t, before+1, testutil.ToFloat64(webhookEvents.WithLabelValues("unknown", "ignored")))

	before = testutil.ToFloat64(paidAfterCancel)
	PaidAfterCancel()
	assert.Equal(t, before+1, testutil.ToFloat64(paidAfterCancel))

	before = testutil.ToFloat64(unpaidSwept)
	UnpaidSwept(3)
	assert.Equal(t, before+3, testutil.ToFloat64(unpaidSwept))
}

func TestHandler(t *testing.T) {
	OrderCreated()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "mamba_orders_created_total"))
}
