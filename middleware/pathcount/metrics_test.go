package pathcount

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"middleware-counter/middleware/pathcount/infra"
)

func TestMetrics_CountsIncrementsFaultsAndFallbacks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	nop := zerolog.Nop()

	ok := Wrap(Route(Hello, CountFallbacks(m, Recovered)), Options{Store: infra.NewMemoryStore(), Logger: &nop, Metrics: m})
	recovered := Wrap(Route(failing, CountFallbacks(m, Recovered)), Options{Store: infra.NewMemoryStore(), Logger: &nop, Metrics: m})
	faulty := Wrap(Route(Hello, CountFallbacks(m, Recovered)), Options{Store: faultyStore{}, Logger: &nop, Metrics: m})

	r := httptest.NewRequest(http.MethodGet, "http://example/foo", nil)
	_, err := ok(r)
	require.NoError(t, err)
	_, err = recovered(r)
	require.NoError(t, err)
	_, err = faulty(r)
	require.Error(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.increments))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fallbacks))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.storeFaults))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.incIncrements()
		m.incStoreFaults()
		m.incFallbacks()
	})
}
