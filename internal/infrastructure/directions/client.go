// Package directions - клиент OSRM-совместимого сервиса маршрутов
// (публичный OSRM или Mapbox Directions).
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/map-layout-service/internal/config"
	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	ProviderOSRM   = "osrm"
	ProviderMapbox = "mapbox"
)

type client struct {
	httpClient  *http.Client
	provider    string
	baseURL     string
	profile     string
	accessToken string
	logger      *zap.Logger
}

// NewClient создает клиент сервиса маршрутов по настройкам роутера
func NewClient(cfg *config.RouterConfig, logger *zap.Logger) repository.DirectionsRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		provider:    cfg.Provider,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		profile:     cfg.Profile,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

// GetRoute запрашивает один маршрут без альтернатив и шагов, геометрия в GeoJSON
func (c *client) GetRoute(ctx context.Context, from, to domain.LatLng) (*domain.DirectionsResponse, error) {
	endpoint := c.routeURL(from, to)

	c.logger.Debug("Calling directions API",
		zap.String("provider", c.provider),
		zap.String("profile", c.profile))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute directions request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// OSRM отдаёт code/message и при 4xx
		var failed domain.DirectionsResponse
		if json.Unmarshal(body, &failed) == nil && failed.Code != "" {
			c.logger.Warn("Directions API returned error",
				zap.Int("status_code", resp.StatusCode),
				zap.String("code", failed.Code),
				zap.String("message", failed.Message))
			return nil, fmt.Errorf("directions API error: status %d, code %s: %s",
				resp.StatusCode, failed.Code, failed.Message)
		}
		c.logger.Error("Directions API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("directions API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var routeResp domain.DirectionsResponse
	if err := json.Unmarshal(body, &routeResp); err != nil {
		c.logger.Error("Failed to decode directions response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if routeResp.Code != "Ok" {
		c.logger.Warn("Directions API returned non-OK code",
			zap.String("code", routeResp.Code),
			zap.String("message", routeResp.Message))
		return nil, fmt.Errorf("directions API returned code: %s", routeResp.Code)
	}
	if len(routeResp.Routes) == 0 {
		return nil, fmt.Errorf("directions API returned no routes")
	}

	c.logger.Debug("Directions API call successful",
		zap.Float64("distance_m", routeResp.Routes[0].Distance),
		zap.Float64("duration_s", routeResp.Routes[0].Duration))

	return &routeResp, nil
}

func (c *client) routeURL(from, to domain.LatLng) string {
	coords := fmt.Sprintf("%f,%f;%f,%f", from.Lng, from.Lat, to.Lng, to.Lat)

	query := url.Values{}
	query.Set("alternatives", "false")
	query.Set("steps", "false")
	query.Set("geometries", "geojson")
	query.Set("overview", "full")

	path := "route/v1"
	if c.provider == ProviderMapbox {
		path = "directions/v5"
		query.Set("access_token", c.accessToken)
	}

	return fmt.Sprintf("%s/%s/%s/%s?%s", c.baseURL, path, c.profile, coords, query.Encode())
}
