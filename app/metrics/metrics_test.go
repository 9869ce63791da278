package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CartMutation("add")
		m.StorageRecovered("corrupt")
		m.PersistFailed()
		m.OrderPlaced()
	})
}

func TestCounters(t *testing.T) {
	m := New()
	m.CartMutation("add")
	m.CartMutation("add")
	m.StorageRecovered("not_array")
	m.OrderPlaced()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cartMutations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storageRecovered.WithLabelValues("not_array")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersPlaced))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cart_mutations_total")
}
