package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/meteo-dashboard/internal/weather"
)

func TestOpenMeteoGeocoder_Search_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Berlin", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"results": [{"name": "Berlin", "latitude": 52.52437, "longitude": 13.41053, "admin1": "Land Berlin", "country_code": "DE"}]}`))
	}))
	defer srv.Close()

	g := NewOpenMeteoGeocoder(testHTTPClient(), srv.URL)
	place, err := g.Search(context.Background(), "Berlin")
	require.NoError(t, err)

	assert.Equal(t, "Berlin", place.Name)
	assert.Equal(t, "Berlin, Land Berlin, DE", place.Label)
	assert.Equal(t, 52.52437, place.Lat)
	assert.Equal(t, 13.41053, place.Lon)
}

func TestOpenMeteoGeocoder_Search_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"generationtime_ms": 0.5}`))
	}))
	defer srv.Close()

	g := NewOpenMeteoGeocoder(testHTTPClient(), srv.URL)
	_, err := g.Search(context.Background(), "Nowhereville")
	assert.ErrorIs(t, err, weather.ErrPlaceNotFound)
}

func TestOpenMeteoGeocoder_Search_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewOpenMeteoGeocoder(testHTTPClient(), srv.URL)
	_, err := g.Search(context.Background(), "Berlin")
	assert.ErrorIs(t, err, weather.ErrUpstreamFetch)
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a, c", joinNonEmpty(", ", "a", " ", "c"))
	assert.Equal(t, "", joinNonEmpty(", ", "", ""))
}
