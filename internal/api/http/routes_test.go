package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/i474232898/meteo-dashboard/internal/consult"
	"github.com/i474232898/meteo-dashboard/internal/observability"
	"github.com/i474232898/meteo-dashboard/internal/store"
	"github.com/i474232898/meteo-dashboard/internal/weather"
)

type stubWeather struct {
	payload weather.CanonicalWeather
	err     error
	lastLoc weather.Location
}

func (s *stubWeather) Current(_ context.Context, loc weather.Location) (weather.CanonicalWeather, error) {
	s.lastLoc = loc
	return s.payload, s.err
}

func (s *stubWeather) Fetch(ctx context.Context, loc weather.Location) (weather.CanonicalWeather, error) {
	return s.Current(ctx, loc)
}

type stubGeocoder struct {
	place weather.Place
	err   error
}

func (g stubGeocoder) Search(context.Context, string) (weather.Place, error) {
	return g.place, g.err
}

type stubPDF struct{}

func (stubPDF) Render([]string) ([]byte, error) { return []byte("%PDF-1.3 stub"), nil }

func samplePayload() weather.CanonicalWeather {
	temp, wind, hum := 21.5, 3.2, 60.0
	return weather.CanonicalWeather{
		Current: weather.Current{Temperature: &temp, FeelsLike: &temp, WindSpeed: &wind, Humidity: &hum,
			Weather: []weather.Condition{{Description: "code:null"}}},
		Hourly: []weather.HourlySample{},
		Daily:  []weather.DailySample{},
		Alerts: []weather.Alert{},
	}
}

type testEnv struct {
	app     *fiber.App
	weather *stubWeather
}

func newTestApp(t *testing.T, pdf consult.PDFRenderer) testEnv {
	t.Helper()
	w := &stubWeather{payload: samplePayload()}
	svc := consult.NewService(store.NewConsultationStore(), w, consult.Options{
		Clock: clockwork.NewFakeClock(),
		PDF:   pdf,
	}, observability.NewMetricsForTesting(), zap.NewNop())

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, Deps{
		Weather:       w,
		Geocoder:      stubGeocoder{place: weather.Place{Name: "Berlin", Label: "Berlin, Land Berlin, DE", Lat: 52.52, Lon: 13.41}},
		Consultations: svc,
		Logger:        zap.NewNop(),
	})
	return testEnv{app: app, weather: w}
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		_ = json.Unmarshal(body, &out)
	}
	return resp, out
}

func postConsult(t *testing.T, app *fiber.App, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/consult", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return doRequest(t, app, req)
}

func TestIndexServesDashboard(t *testing.T) {
	env := newTestApp(t, nil)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
}

func TestWeather_RequiresCoordinates(t *testing.T) {
	env := newTestApp(t, nil)

	for _, target := range []string{"/api/weather", "/api/weather?lat=1", "/api/weather?lat=abc&lon=2"} {
		resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
		assert.Equal(t, "lat and lon required", body["error"], target)
	}
}

func TestWeather_Success(t *testing.T) {
	env := newTestApp(t, nil)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/api/weather?lat=52.52&lon=13.405", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, weather.Location{Lat: 52.52, Lon: 13.405}, env.weather.lastLoc)
	current, ok := body["current"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 21.5, current["temp"])
	assert.Equal(t, []any{}, body["alerts"])
}

func TestWeather_UpstreamFailure(t *testing.T) {
	env := newTestApp(t, nil)
	env.weather.err = fmt.Errorf("%w: status 503", weather.ErrUpstreamFetch)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/api/weather?lat=1&lon=2", nil))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Failed to fetch weather", body["error"])
	assert.Contains(t, body["details"], "status 503")
}

func TestGeocode(t *testing.T) {
	env := newTestApp(t, nil)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/api/geocode", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "q required", body["error"])

	resp, body = doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/api/geocode?q=Berlin", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Berlin, Land Berlin, DE", body["label"])
}

func TestConsult_CreateAndList(t *testing.T) {
	env := newTestApp(t, nil)

	resp, body := postConsult(t, env.app, `{"name":"Ada","email":"ada@example.com","lat":"52.52","lon":13.405,"industry":"Energy"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])

	rec, ok := body["consultation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.0, rec["id"])
	assert.Equal(t, "Energy", rec["industry"])
	assert.Equal(t, "", rec["notes"])
	assert.Contains(t, rec["report"], "Location: 52.52, 13.405\n")

	_, _ = postConsult(t, env.app, `{"name":"Bob","email":"bob@example.com","lat":1,"lon":2}`)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/consultations", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []consult.Consultation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].ID)
	assert.Equal(t, "Bob", list[0].Name)
	assert.Equal(t, consult.DefaultIndustry, list[0].Industry)
}

func TestConsult_ListEmptyIsArray(t *testing.T) {
	env := newTestApp(t, nil)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/consultations", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestConsult_ValidationErrors(t *testing.T) {
	env := newTestApp(t, nil)

	tests := []struct {
		body string
		want string
	}{
		{``, "name and email required"},
		{`{"email":"a@b.c","lat":1,"lon":2}`, "name and email required"},
		{`{"name":"Ada","email":"a@b.c","lat":"north","lon":2}`, "lat/lon must be numbers"},
		{`{"name":"Ada","email":"a@b.c"}`, "lat/lon must be numbers"},
		{`{"name":`, "invalid JSON body"},
	}
	for _, tt := range tests {
		resp, body := postConsult(t, env.app, tt.body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tt.body)
		assert.Equal(t, tt.want, body["error"], tt.body)
	}

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/consultations", nil))
	require.NoError(t, err)
	var list []consult.Consultation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list)
}

func TestConsult_UpstreamFailure(t *testing.T) {
	env := newTestApp(t, nil)
	env.weather.err = fmt.Errorf("%w: timeout", weather.ErrUpstreamFetch)

	resp, body := postConsult(t, env.app, `{"name":"Ada","email":"a@b.c","lat":1,"lon":2}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Failed to fetch weather", body["error"])
}

func TestReportPDF_Unavailable(t *testing.T) {
	env := newTestApp(t, nil)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/api/report_pdf?id=1", nil))
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	assert.Equal(t, "PDF unavailable", body["error"])
}

func TestReportPDF_NotFound(t *testing.T) {
	env := newTestApp(t, stubPDF{})

	for _, target := range []string{"/api/report_pdf?id=9", "/api/report_pdf?id=abc", "/api/report_pdf"} {
		resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)
		assert.Equal(t, "not found", body["error"], target)
	}
}

func TestReportPDF_Success(t *testing.T) {
	env := newTestApp(t, stubPDF{})
	resp, _ := postConsult(t, env.app, `{"name":"Ada","email":"a@b.c","lat":1,"lon":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/report_pdf?id=1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `consult_1.pdf`)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestNewApp_HealthAndRequestID(t *testing.T) {
	env := newTestApp(t, nil)
	app := NewApp("meteo-dashboard-test", Deps{
		Weather:       env.weather,
		Geocoder:      stubGeocoder{},
		Consultations: consult.NewService(store.NewConsultationStore(), env.weather, consult.Options{}, observability.NewMetricsForTesting(), zap.NewNop()),
		Logger:        zap.NewNop(),
	})

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "meteo-dashboard-test", body["service"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}
