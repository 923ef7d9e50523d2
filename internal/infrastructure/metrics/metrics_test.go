package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInitMetricsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() { InitMetrics() })
	assert.NotPanics(t, func() { InitMetrics() })
}

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	RecordAppend("handler-probe", "written")

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sensorlog_appends_total")
}

func TestRecordAppendCountsPerStatus(t *testing.T) {
	before := testutil.ToFloat64(AppendsTotal.WithLabelValues("counter-probe", "recreated"))

	RecordAppend("counter-probe", "recreated")
	RecordAppend("counter-probe", "recreated")

	after := testutil.ToFloat64(AppendsTotal.WithLabelValues("counter-probe", "recreated"))
	assert.Equal(t, before+2, after)
}

func TestObserveQueryCountsFormatErrors(t *testing.T) {
	before := testutil.ToFloat64(QueryFormatErrorsTotal.WithLabelValues("query-probe"))

	ObserveQuery("query-probe", time.Millisecond, false)
	ObserveQuery("query-probe", -time.Second, true)

	assert.Equal(t, before+1, testutil.ToFloat64(QueryFormatErrorsTotal.WithLabelValues("query-probe")))
}

func TestHTTPMiddlewareRecordsErrors(t *testing.T) {
	beforeRequests := testutil.ToFloat64(HTTPRequestsTotal)
	beforeErrors := testutil.ToFloat64(HTTPRequestErrorsTotal)

	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, beforeRequests+1, testutil.ToFloat64(HTTPRequestsTotal))
	assert.Equal(t, beforeErrors+1, testutil.ToFloat64(HTTPRequestErrorsTotal))
}
