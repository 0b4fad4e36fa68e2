package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks that the Prometheus output contains a metric line
// matching the given name, partial label pattern, and value. A regex handles
// the extra OTel scope labels injected by the exporter.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	return string(body)
}

func TestProvider(t *testing.T) {
	provider, err := NewProvider("trustplane")
	require.NoError(t, err)
	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("trustplane")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "trustplane")
	require.NoError(t, err)
	ctx := context.Background()

	bm.RecordOperation(ctx, "otp", "otp_verify", "success")
	bm.RecordOperation(ctx, "otp", "otp_verify", "success")
	bm.RecordOperation(ctx, "pii", "pii_encrypt", "error")
	bm.RecordDuration(ctx, "pii", "pii_encrypt", 25*time.Millisecond, "success")
	bm.RecordTrustDecision(ctx, "ANALYST", "admit")
	bm.RecordTrustDecision(ctx, "CITIZEN", "deny")

	output := scrape(t, provider)
	assertMetricLine(t, output, "trustplane_operations_total",
		`domain="otp",operation="otp_verify",status="success"`, "2")
	assertMetricLine(t, output, "trustplane_operations_total",
		`domain="pii",operation="pii_encrypt",status="error"`, "1")
	assertMetricLine(t, output, "trustplane_operation_duration_seconds_count",
		`domain="pii"`, "1")
	assertMetricLine(t, output, "trustplane_trust_decisions_total",
		`outcome="admit",role="ANALYST"`, "1")
	assertMetricLine(t, output, "trustplane_trust_decisions_total",
		`outcome="deny",role="CITIZEN"`, "1")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()
	noOp.RecordOperation(context.Background(), "otp", "otp_verify", "success")
	noOp.RecordDuration(context.Background(), "pii", "pii_encrypt", time.Millisecond, "success")
	noOp.RecordTrustDecision(context.Background(), "ADMIN", "admit")
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("trustplane")
	require.NoError(t, err)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "trustplane"))
	router.GET("/staff/cases/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, id := range []string{"1", "2", "3"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/staff/cases/"+id, nil))
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	output := scrape(t, provider)
	// The metric label carries the route pattern, never the raw path.
	assertMetricLine(t, output, "trustplane_http_requests_total",
		`path="/staff/cases/:id"`, "3")
	assert.NotContains(t, output, `path="/staff/cases/1"`)
	assertMetricLine(t, output, "trustplane_http_requests_total",
		`path="unknown",status_code="404"`, "1")
}

func TestRoutePattern(t *testing.T) {
	assert.Equal(t, "unknown", routePattern(""))
	assert.Equal(t, "/v1/pii/encrypt", routePattern("/v1/pii/encrypt"))
}
