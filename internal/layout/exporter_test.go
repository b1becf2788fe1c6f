package layout

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/geometry"
	"github.com/map-layout-service/internal/mapview"
	"github.com/map-layout-service/internal/repository/cache"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockKVRepository struct {
	mock.Mock
}

func (m *MockKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKVRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockKVRepository) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockKVRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func newExporter(t *testing.T, opts Options) *Exporter {
	t.Helper()
	e, err := NewExporter(cache.NewMemoryRepository(zap.NewNop()), opts, zap.NewNop())
	require.NoError(t, err)
	return e
}

func commit(t *testing.T, store *geometry.Store, g orb.Geometry, name, color string) {
	t.Helper()
	d, err := store.OpenDraft(g)
	require.NoError(t, err)
	_, err = d.Save(domain.LayerMeta{LayerName: name, Color: color})
	require.NoError(t, err)
}

func TestExporter_EmptyStore(t *testing.T) {
	ctx := context.Background()
	e := newExporter(t, Options{TTL: time.Hour})
	store := geometry.NewStore(zap.NewNop())
	surface := mapview.NewSurface(zap.NewNop())

	res, err := e.Export(ctx, "s1", surface, store)
	require.NoError(t, err)

	assert.Equal(t, "layout.html", res.Target)
	assert.Equal(t, "Peta Layout", res.Snapshot.Title)
	assert.Equal(t, [2]float64{-6.9175, 107.6191}, res.Snapshot.Center)
	assert.Equal(t, 13.0, res.Snapshot.Zoom)
	assert.Equal(t, "", res.Snapshot.LegendHTML)
	require.NotNil(t, res.Snapshot.DrawnItems)
	assert.Empty(t, res.Snapshot.DrawnItems.Features)

	loaded, err := e.Load(ctx, "s1")
	require.NoError(t, err)
	raw, err := json.Marshal(loaded.DrawnItems)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(raw))
}

func TestExporter_Export(t *testing.T) {
	ctx := context.Background()
	e := newExporter(t, Options{TTL: time.Hour})
	store := geometry.NewStore(zap.NewNop())
	surface := mapview.NewSurface(zap.NewNop())

	commit(t, store, orb.Point{107.6098, -6.9147}, "A", "#ff0000")
	commit(t, store, orb.LineString{{107.60, -6.91}, {107.62, -6.92}}, "B", "#00ff00")
	require.NoError(t, surface.SetView(domain.LatLng{Lat: -6.92, Lng: 107.61}, 15))

	require.NoError(t, e.SaveMeta(ctx, "s1", domain.LayoutMeta{LayoutTitle: "Peta Bandung", DigitasiLayerName: "Jalan"}))

	res, err := e.Export(ctx, "s1", surface, store)
	require.NoError(t, err)

	snap := res.Snapshot
	assert.Equal(t, "Peta Bandung", snap.Title)
	assert.Equal(t, [2]float64{-6.92, 107.61}, snap.Center)
	assert.Equal(t, 15.0, snap.Zoom)
	require.Len(t, snap.DrawnItems.Features, 2)
	assert.Equal(t, "A", snap.DrawnItems.Features[0].Properties["layerName"])
	assert.Equal(t, "B", snap.DrawnItems.Features[1].Properties["layerName"])
	assert.Equal(t, 2, strings.Count(snap.LegendHTML, "<p>"))
	assert.Less(t, strings.Index(snap.LegendHTML, "#ff0000"), strings.Index(snap.LegendHTML, "#00ff00"))

	loaded, err := e.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, snap.Title, loaded.Title)
	assert.Equal(t, snap.LegendHTML, loaded.LegendHTML)
	assert.Len(t, loaded.DrawnItems.Features, 2)

	// снимок неизменен после новых объектов
	commit(t, store, orb.Point{107.7, -6.95}, "C", "#0000ff")
	again, err := e.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.DrawnItems.Features, 2)
}

func TestExporter_MetaRecovery(t *testing.T) {
	ctx := context.Background()
	store := geometry.NewStore(zap.NewNop())
	surface := mapview.NewSurface(zap.NewNop())

	t.Run("corrupt meta", func(t *testing.T) {
		kv := cache.NewMemoryRepository(zap.NewNop())
		e, err := NewExporter(kv, Options{DefaultTitle: "Peta Layout"}, zap.NewNop())
		require.NoError(t, err)

		require.NoError(t, kv.Set(ctx, Key("s1", domain.KeyLayoutMeta), []byte("{not json"), 0))

		res, err := e.Export(ctx, "s1", surface, store)
		require.NoError(t, err)
		assert.Equal(t, "Peta Layout", res.Snapshot.Title)
	})

	t.Run("empty title", func(t *testing.T) {
		e := newExporter(t, Options{})
		require.NoError(t, e.SaveMeta(ctx, "s1", domain.LayoutMeta{DigitasiLayerName: "x"}))

		res, err := e.Export(ctx, "s1", surface, store)
		require.NoError(t, err)
		assert.Equal(t, "Peta Layout", res.Snapshot.Title)
	})

	t.Run("storage read failure", func(t *testing.T) {
		kv := &MockKVRepository{}
		kv.On("Get", ctx, Key("s1", domain.KeyLayoutMeta)).Return(nil, errors.New("connection refused"))
		kv.On("Set", ctx, Key("s1", domain.KeyLayoutData), mock.Anything, time.Duration(0)).Return(nil)

		e, err := NewExporter(kv, Options{}, zap.NewNop())
		require.NoError(t, err)

		res, err := e.Export(ctx, "s1", surface, store)
		require.NoError(t, err)
		assert.Equal(t, "Peta Layout", res.Snapshot.Title)
		kv.AssertExpectations(t)
	})
}

func TestExporter_StorageWriteFailure(t *testing.T) {
	ctx := context.Background()
	kv := &MockKVRepository{}
	kv.On("Get", ctx, mock.Anything).Return(nil, nil)
	kv.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("readonly"))

	e, err := NewExporter(kv, Options{}, zap.NewNop())
	require.NoError(t, err)

	_, err = e.Export(ctx, "s1", mapview.NewSurface(zap.NewNop()), geometry.NewStore(zap.NewNop()))
	assert.Error(t, err)

	assert.Error(t, e.SaveMeta(ctx, "s1", domain.LayoutMeta{LayoutTitle: "x"}))
}

func TestExporter_Load(t *testing.T) {
	ctx := context.Background()
	e := newExporter(t, Options{})

	_, err := e.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestExporter_Purge(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryRepository(zap.NewNop())
	e, err := NewExporter(kv, Options{}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, e.SaveMeta(ctx, "s1", domain.LayoutMeta{LayoutTitle: "x"}))
	_, err = e.Export(ctx, "s1", mapview.NewSurface(zap.NewNop()), geometry.NewStore(zap.NewNop()))
	require.NoError(t, err)

	require.NoError(t, e.Purge(ctx, "s1"))

	ok, _ := kv.Exists(ctx, Key("s1", domain.KeyLayoutMeta))
	assert.False(t, ok)
	_, err = e.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestExporter_MinifyLegend(t *testing.T) {
	ctx := context.Background()
	store := geometry.NewStore(zap.NewNop())
	commit(t, store, orb.Point{107.6, -6.9}, "Sungai  Cikapundung", "#0000ff")

	plain := newExporter(t, Options{})
	minified := newExporter(t, Options{MinifyLegend: true})
	surface := mapview.NewSurface(zap.NewNop())

	a, err := plain.Export(ctx, "s1", surface, store)
	require.NoError(t, err)
	b, err := minified.Export(ctx, "s1", surface, store)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(b.Snapshot.LegendHTML), len(a.Snapshot.LegendHTML))
	assert.Contains(t, b.Snapshot.LegendHTML, "</p>")
	assert.Contains(t, b.Snapshot.LegendHTML, "Cikapundung")
}

func TestSchemaValidator(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	valid := `{"title":"Peta","center":[-6.9,107.6],"zoom":13,"drawnItems":{"type":"FeatureCollection","features":[]},"legendHTML":""}`
	assert.NoError(t, v.ValidateBytes([]byte(valid)))

	invalid := []string{
		`{"title":"","center":[-6.9,107.6],"zoom":13,"drawnItems":{"type":"FeatureCollection","features":[]},"legendHTML":""}`,
		`{"title":"Peta","center":[-96,107.6],"zoom":13,"drawnItems":{"type":"FeatureCollection","features":[]},"legendHTML":""}`,
		`{"title":"Peta","center":[-6.9,107.6],"zoom":13,"drawnItems":{"type":"Feature"},"legendHTML":""}`,
		`{"title":"Peta","center":[-6.9,107.6],"zoom":13,"drawnItems":{"type":"FeatureCollection","features":[]}}`,
	}
	for _, doc := range invalid {
		assert.ErrorIs(t, v.ValidateBytes([]byte(doc)), ErrInvalidSnapshot, doc)
	}
}
