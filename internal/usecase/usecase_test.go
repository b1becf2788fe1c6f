package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/layout"
	"github.com/map-layout-service/internal/location"
	"github.com/map-layout-service/internal/notice"
	"github.com/map-layout-service/internal/pkg/errors"
	"github.com/map-layout-service/internal/repository/cache"
	"github.com/map-layout-service/internal/session"
	"github.com/map-layout-service/internal/usecase"
	"github.com/map-layout-service/internal/usecase/dto"
)

// MockDirectionsRepository is a mock of DirectionsRepository
type MockDirectionsRepository struct {
	mock.Mock
}

func (m *MockDirectionsRepository) GetRoute(ctx context.Context, from, to domain.LatLng) (*domain.DirectionsResponse, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectionsResponse), args.Error(1)
}

type fixture struct {
	router   *MockDirectionsRepository
	tracker  *location.Tracker
	manager  *session.Manager
	sessions *usecase.SessionUseCase
	maps     *usecase.MapUseCase
	analysis *usecase.AnalysisUseCase
	layouts  *usecase.LayoutUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()

	kv := cache.NewMemoryRepository(logger)
	exporter, err := layout.NewExporter(kv, layout.Options{TTL: time.Hour}, logger)
	require.NoError(t, err)

	router := &MockDirectionsRepository{}
	tracker := location.NewTracker(200*time.Millisecond, time.Minute, logger)
	manager := session.NewManager(session.Deps{
		Tracker:     tracker,
		Router:      router,
		Purger:      exporter,
		TTL:         time.Hour,
		NoticeLimit: 20,
	}, logger)

	return &fixture{
		router:   router,
		tracker:  tracker,
		manager:  manager,
		sessions: usecase.NewSessionUseCase(manager, logger),
		maps:     usecase.NewMapUseCase(manager, logger),
		analysis: usecase.NewAnalysisUseCase(manager, tracker, logger),
		layouts:  usecase.NewLayoutUseCase(manager, exporter, logger),
	}
}

// addFeature рисует и сохраняет объект через черновик
func (f *fixture) addFeature(t *testing.T, sessionID string, g orb.Geometry, name, color string) string {
	t.Helper()
	draft, err := f.maps.OpenDraft(sessionID, dto.OpenDraftRequest{Geometry: geojson.NewGeometry(g)})
	require.NoError(t, err)
	feat, err := f.maps.SaveDraft(sessionID, draft.ID, dto.SaveDraftRequest{LayerName: name, Color: color})
	require.NoError(t, err)
	return feat.ID.(string)
}

func messages(ns []notice.Notice) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Message)
	}
	return out
}

func TestSessionUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s := f.sessions.Create(dto.CreateSessionRequest{Geolocation: true})
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "idle", s.Mode)
	assert.True(t, f.tracker.Enabled(s.ID))

	require.NoError(t, f.sessions.Close(ctx, s.ID))
	assert.ErrorIs(t, f.sessions.Close(ctx, s.ID), errors.ErrSessionNotFound)

	_, err := f.maps.State(s.ID)
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestMapUseCase_Drafts(t *testing.T) {
	f := newFixture(t)
	id := f.sessions.Create(dto.CreateSessionRequest{}).ID

	t.Run("open shows defaults and does not commit", func(t *testing.T) {
		draft, err := f.maps.OpenDraft(id, dto.OpenDraftRequest{
			Geometry: geojson.NewGeometry(orb.LineString{{107.60, -6.91}, {107.62, -6.93}}),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultLayerMeta(), draft.Defaults)
		assert.InDelta(t, -6.92, draft.Anchor.Lat, 1e-9)

		list, err := f.maps.Features(id)
		require.NoError(t, err)
		assert.Equal(t, 0, list.Total)

		require.NoError(t, f.maps.DiscardDraft(id, draft.ID))
		assert.ErrorIs(t, f.maps.DiscardDraft(id, draft.ID), errors.ErrDraftNotFound)
	})

	t.Run("save commits once", func(t *testing.T) {
		draft, err := f.maps.OpenDraft(id, dto.OpenDraftRequest{Geometry: geojson.NewGeometry(orb.Point{107.61, -6.91})})
		require.NoError(t, err)

		feat, err := f.maps.SaveDraft(id, draft.ID, dto.SaveDraftRequest{LayerName: "Sekolah", Color: "#00F"})
		require.NoError(t, err)
		assert.Equal(t, "Sekolah", feat.Properties["layerName"])
		assert.Equal(t, "#0000ff", feat.Properties["color"])

		_, err = f.maps.SaveDraft(id, draft.ID, dto.SaveDraftRequest{LayerName: "Sekolah", Color: "#00F"})
		assert.Error(t, err)

		list, err := f.maps.Features(id)
		require.NoError(t, err)
		assert.Equal(t, 1, list.Total)
	})

	t.Run("invalid metadata is rejected", func(t *testing.T) {
		draft, err := f.maps.OpenDraft(id, dto.OpenDraftRequest{Geometry: geojson.NewGeometry(orb.Point{107.61, -6.91})})
		require.NoError(t, err)

		_, err = f.maps.SaveDraft(id, draft.ID, dto.SaveDraftRequest{LayerName: "  ", Color: "#ff0000"})
		assert.ErrorIs(t, err, errors.ErrInvalidFeature)
		_, err = f.maps.SaveDraft(id, draft.ID, dto.SaveDraftRequest{LayerName: "X", Color: "merah"})
		assert.ErrorIs(t, err, errors.ErrInvalidFeature)
	})

	t.Run("invalid geometry", func(t *testing.T) {
		_, err := f.maps.OpenDraft(id, dto.OpenDraftRequest{})
		assert.ErrorIs(t, err, errors.ErrInvalidFeature)

		_, err = f.maps.OpenDraft(id, dto.OpenDraftRequest{Geometry: geojson.NewGeometry(orb.LineString{{1, 1}})})
		assert.ErrorIs(t, err, errors.ErrInvalidFeature)
	})
}

func TestMapUseCase_View(t *testing.T) {
	f := newFixture(t)
	id := f.sessions.Create(dto.CreateSessionRequest{}).ID

	state, err := f.maps.State(id)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCenter, state.View.Center)
	assert.Equal(t, "osm", state.View.Basemap.Name)
	assert.Empty(t, state.Overlays)

	view, err := f.maps.SetView(id, dto.SetViewRequest{Lat: -6.95, Lng: 107.6, Zoom: 14})
	require.NoError(t, err)
	assert.Equal(t, 14.0, view.Zoom)

	view, err = f.maps.ChangeBasemap(id, dto.BasemapRequest{Name: "esri"})
	require.NoError(t, err)
	assert.Equal(t, "esri", view.Basemap.Name)

	_, err = f.maps.ChangeBasemap(id, dto.BasemapRequest{Name: "bing"})
	assert.ErrorIs(t, err, errors.ErrUnknownBasemap)

	zoom, err := f.maps.ApplyZoomPercent(id, dto.ZoomPercentRequest{Percent: 200})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, zoom.Zoom, 1e-9)
	zoom, err = f.maps.ApplyZoomPercent(id, dto.ZoomPercentRequest{Percent: 50})
	require.NoError(t, err)
	assert.InDelta(t, 13.0, zoom.Zoom, 1e-9)
}

func TestAnalysisUseCase_Buffer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.sessions.Create(dto.CreateSessionRequest{}).ID
	marker := f.addFeature(t, id, orb.Point{107.6191, -6.9175}, "Pasar", "#ff0000")
	line := f.addFeature(t, id, orb.LineString{{107.60, -6.91}, {107.62, -6.93}}, "Jalan", "#00ff00")

	radius := func(s string) dto.ClickRequest {
		r := dto.RadiusInput(s)
		return dto.ClickRequest{Radius: &r}
	}

	// idle: клик игнорируется
	res, err := f.analysis.Click(ctx, id, marker, radius("500"))
	require.NoError(t, err)
	assert.Equal(t, "ignored", res.Outcome)

	mode, err := f.analysis.ArmBuffer(id)
	require.NoError(t, err)
	assert.Equal(t, "buffering", mode.Mode)

	res, err = f.analysis.Click(ctx, id, line, radius("500"))
	require.NoError(t, err)
	assert.Equal(t, "ignored", res.Outcome)

	res, err = f.analysis.Click(ctx, id, marker, dto.ClickRequest{})
	require.NoError(t, err)
	assert.Equal(t, "declined", res.Outcome)
	assert.Equal(t, "buffering", res.Mode)

	_, err = f.analysis.Click(ctx, id, marker, radius("-1"))
	assert.ErrorIs(t, err, errors.ErrInvalidRadius)

	res, err = f.analysis.Click(ctx, id, marker, radius("500"))
	require.NoError(t, err)
	assert.Equal(t, "buffered", res.Outcome)
	assert.Equal(t, "idle", res.Mode)
	require.NotNil(t, res.Buffer)
	assert.Equal(t, 500.0, res.Buffer.Properties["radius_m"])

	state, err := f.maps.State(id)
	require.NoError(t, err)
	assert.True(t, state.BufferVisible)
	assert.Len(t, state.Overlays, 1)
	assert.Equal(t, 2, len(state.DrawnItems.Features))

	require.NoError(t, f.analysis.ClearBuffer(id))
	state, _ = f.maps.State(id)
	assert.False(t, state.BufferVisible)
	assert.Empty(t, state.Overlays)

	_, err = f.analysis.Click(ctx, id, "missing", radius("500"))
	assert.ErrorIs(t, err, errors.ErrFeatureNotFound)

	notices, err := f.analysis.Notices(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Klik marker untuk membuat buffer"}, messages(notices.Notices))
}

func TestAnalysisUseCase_Route(t *testing.T) {
	ctx := context.Background()
	dest := domain.LatLng{Lat: -6.9175, Lng: 107.6191}
	user := domain.LatLng{Lat: -6.9147, Lng: 107.6098}

	t.Run("success after position report", func(t *testing.T) {
		f := newFixture(t)
		id := f.sessions.Create(dto.CreateSessionRequest{Geolocation: true}).ID
		marker := f.addFeature(t, id, dest.Point(), "Tujuan", "#ff0000")

		f.router.On("GetRoute", mock.Anything, user, dest).Return(&domain.DirectionsResponse{
			Code: "Ok",
			Routes: []domain.DirectionsRoute{{
				Distance: 1200,
				Duration: 180,
				Geometry: geojson.NewGeometry(orb.LineString{user.Point(), dest.Point()}),
			}},
		}, nil)

		require.NoError(t, f.analysis.ReportPosition(id, dto.PositionRequest{Lat: user.Lat, Lng: user.Lng}))
		_, err := f.analysis.ArmRoute(id)
		require.NoError(t, err)

		res, err := f.analysis.Click(ctx, id, marker, dto.ClickRequest{})
		require.NoError(t, err)
		assert.Equal(t, "routed", res.Outcome)
		assert.Equal(t, "idle", res.Mode)
		require.NotNil(t, res.Route)
		assert.Equal(t, []domain.LatLng{user, dest}, res.Route.Waypoints)
		assert.Equal(t, 1200.0, res.Route.DistanceM)

		state, _ := f.maps.State(id)
		assert.True(t, state.RouteVisible)

		require.NoError(t, f.analysis.ClearRoute(id))
		state, _ = f.maps.State(id)
		assert.False(t, state.RouteVisible)
	})

	t.Run("capability unavailable resets mode", func(t *testing.T) {
		f := newFixture(t)
		id := f.sessions.Create(dto.CreateSessionRequest{}).ID
		marker := f.addFeature(t, id, dest.Point(), "Tujuan", "#ff0000")

		_, err := f.analysis.ArmRoute(id)
		require.NoError(t, err)

		_, err = f.analysis.Click(ctx, id, marker, dto.ClickRequest{})
		assert.ErrorIs(t, err, errors.ErrLocationUnavailable)

		state, _ := f.maps.State(id)
		assert.Equal(t, "idle", state.Mode)
		assert.False(t, state.RouteVisible)

		notices, _ := f.analysis.Notices(id)
		assert.Equal(t, []string{"Klik marker untuk membuat rute", "Geolocation tidak tersedia"}, messages(notices.Notices))

		assert.ErrorIs(t, f.analysis.ReportPosition(id, dto.PositionRequest{Lat: 1, Lng: 1}), errors.ErrLocationUnavailable)
	})

	t.Run("location timeout resets mode", func(t *testing.T) {
		f := newFixture(t)
		id := f.sessions.Create(dto.CreateSessionRequest{Geolocation: true}).ID
		marker := f.addFeature(t, id, dest.Point(), "Tujuan", "#ff0000")

		_, err := f.analysis.ArmRoute(id)
		require.NoError(t, err)

		_, err = f.analysis.Click(ctx, id, marker, dto.ClickRequest{})
		assert.ErrorIs(t, err, errors.ErrLocationFailed)

		state, _ := f.maps.State(id)
		assert.Equal(t, "idle", state.Mode)
		f.router.AssertNotCalled(t, "GetRoute", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLayoutUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.sessions.Create(dto.CreateSessionRequest{}).ID

	_, err := f.layouts.Snapshot(ctx, id)
	assert.ErrorIs(t, err, errors.ErrLayoutNotFound)

	f.addFeature(t, id, orb.Point{107.61, -6.91}, "A", "#ff0000")
	f.addFeature(t, id, orb.Point{107.62, -6.92}, "B", "#00ff00")

	require.NoError(t, f.layouts.SaveMeta(ctx, id, dto.LayoutMetaRequest{LayoutTitle: "Peta Sekolah"}))

	res, err := f.layouts.Export(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "layout.html", res.Target)
	assert.Equal(t, "Peta Sekolah", res.Snapshot.Title)
	assert.Len(t, res.Snapshot.DrawnItems.Features, 2)

	snap, err := f.layouts.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res.Snapshot.LegendHTML, snap.LegendHTML)

	notices, _ := f.analysis.Notices(id)
	assert.Contains(t, messages(notices.Notices), usecase.MsgLayoutInputSaved)

	require.NoError(t, f.sessions.Close(ctx, id))
	_, err = f.layouts.Snapshot(ctx, id)
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}
