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

func TestRegisterIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	Register()

	before := testutil.ToFloat64(httpRequests.WithLabelValues("backend", "/api/items", "GET", "200"))
	ObserveRequest("backend", "/api/items", "GET", 200)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("backend", "/api/items", "GET", "200"))
	assert.Equal(t, before+1, after)

	IncRelayOutcome("list", "unreachable")
	assert.GreaterOrEqual(t, testutil.ToFloat64(relayOutcomes.WithLabelValues("list", "unreachable")), 1.0)
}

func TestHandlerExposesCounters(t *testing.T) {
	IncRelayOutcome("delete", "success")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "storemanager_relay_outcomes_total"))
}
