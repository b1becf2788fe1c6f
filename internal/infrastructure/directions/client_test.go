package directions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/map-layout-service/internal/config"
	"github.com/map-layout-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	from = domain.LatLng{Lat: -6.9147, Lng: 107.6098}
	to   = domain.LatLng{Lat: -6.9175, Lng: 107.6191}
)

func okBody() domain.DirectionsResponse {
	return domain.DirectionsResponse{
		Code: "Ok",
		Routes: []domain.DirectionsRoute{{
			Distance: 1530.4,
			Duration: 240.1,
			Geometry: geojson.NewGeometry(orb.LineString{{107.6098, -6.9147}, {107.6191, -6.9175}}),
		}},
		Waypoints: []domain.DirectionsWaypoint{
			{Name: "Jalan Asia Afrika", Location: []float64{107.6098, -6.9147}},
			{Name: "Jalan Braga", Location: []float64{107.6191, -6.9175}},
		},
	}
}

func osrmClient(url string) interface {
	GetRoute(ctx context.Context, from, to domain.LatLng) (*domain.DirectionsResponse, error)
} {
	return NewClient(&config.RouterConfig{
		Provider:       ProviderOSRM,
		BaseURL:        url,
		Profile:        "driving",
		RequestTimeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestClient_GetRoute(t *testing.T) {
	t.Run("osrm request", func(t *testing.T) {
		var gotPath string
		var gotQuery map[string][]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(okBody())
		}))
		defer server.Close()

		resp, err := osrmClient(server.URL+"/").GetRoute(context.Background(), from, to)
		require.NoError(t, err)
		require.Len(t, resp.Routes, 1)
		assert.Equal(t, 1530.4, resp.Routes[0].Distance)

		line, ok := resp.Routes[0].Geometry.Geometry().(orb.LineString)
		require.True(t, ok)
		assert.Len(t, line, 2)

		assert.Equal(t, "/route/v1/driving/107.609800,-6.914700;107.619100,-6.917500", gotPath)
		assert.Equal(t, []string{"false"}, gotQuery["alternatives"])
		assert.Equal(t, []string{"false"}, gotQuery["steps"])
		assert.Equal(t, []string{"geojson"}, gotQuery["geometries"])
		assert.Equal(t, []string{"full"}, gotQuery["overview"])
		assert.NotContains(t, gotQuery, "access_token")
	})

	t.Run("mapbox request", func(t *testing.T) {
		var gotPath, gotToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotToken = r.URL.Query().Get("access_token")
			json.NewEncoder(w).Encode(okBody())
		}))
		defer server.Close()

		c := NewClient(&config.RouterConfig{
			Provider:       ProviderMapbox,
			BaseURL:        server.URL,
			Profile:        "mapbox/driving",
			AccessToken:    "test_token",
			RequestTimeout: 5 * time.Second,
		}, zap.NewNop())

		_, err := c.GetRoute(context.Background(), from, to)
		require.NoError(t, err)
		assert.Equal(t, "/directions/v5/mapbox/driving/107.609800,-6.914700;107.619100,-6.917500", gotPath)
		assert.Equal(t, "test_token", gotToken)
	})

	errorCases := []struct {
		name     string
		status   int
		body     string
		contains string
	}{
		{"no route code", http.StatusBadRequest, `{"code":"NoRoute","message":"Impossible route between points"}`, "NoRoute"},
		{"server error", http.StatusInternalServerError, `upstream down`, "status 500"},
		{"non ok code with 200", http.StatusOK, `{"code":"InvalidQuery","routes":[]}`, "InvalidQuery"},
		{"empty routes", http.StatusOK, `{"code":"Ok","routes":[]}`, "no routes"},
		{"malformed body", http.StatusOK, `not json`, "decode"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := osrmClient(server.URL).GetRoute(context.Background(), from, to)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	t.Run("context cancelled", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := osrmClient(server.URL).GetRoute(ctx, from, to)
		assert.Error(t, err)
	})
}
