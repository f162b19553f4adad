package wire

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"box-office/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testApp(t *testing.T) *App {
	t.Helper()
	config := &utils.Config{
		App:  utils.AppConfig{Name: "box-office"},
		HTTP: utils.HTTPConfig{AllowedOrigins: []string{"https://tickets.example.org"}, MetricsNamespace: "box_office"},
	}
	return Wiring(Deps{Registry: prometheus.NewRegistry()}, config, zap.NewNop())
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	app := testApp(t)

	assert.Equal(t, http.StatusOK, serve(app, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(app, httptest.NewRequest(http.MethodGet, "/api/unknown", nil)).Code)

	// id parsing fails before any store is touched
	for _, path := range []string{
		"/api/bookings/nope",
		"/api/bookings/nope/payments",
		"/api/performances/nope",
		"/api/performances/nope/discounts",
		"/api/venues/nope",
		"/api/productions/nope",
	} {
		rec := serve(app, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := testApp(t)
	serve(app, httptest.NewRequest(http.MethodGet, "/api/bookings/nope", nil))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `box_office_http_requests_total{method="GET",route="/api/bookings/{id}",status="400"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	app := testApp(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "https://tickets.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := serve(app, req)
	assert.Equal(t, "https://tickets.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}
