package geometry

import (
	"testing"

	"github.com/map-layout-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDraft_Lifecycle(t *testing.T) {
	logger := zap.NewNop()

	t.Run("open shows defaults and is not stored", func(t *testing.T) {
		store := NewStore(logger)

		d, err := store.OpenDraft(orb.Point{107.6191, -6.9175})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultLayerName, d.Defaults.LayerName)
		assert.Equal(t, domain.DefaultColor, d.Defaults.Color)
		assert.Equal(t, domain.LatLng{Lat: -6.9175, Lng: 107.6191}, d.Anchor)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("anchor of a line is its bounds center", func(t *testing.T) {
		store := NewStore(logger)

		d, err := store.OpenDraft(orb.LineString{{107.0, -7.0}, {108.0, -6.0}})
		require.NoError(t, err)
		assert.InDelta(t, -6.5, d.Anchor.Lat, 1e-9)
		assert.InDelta(t, 107.5, d.Anchor.Lng, 1e-9)
	})

	t.Run("save commits once", func(t *testing.T) {
		store := NewStore(logger)

		d, err := store.OpenDraft(orb.Point{107.6, -6.9})
		require.NoError(t, err)

		f, err := d.Save(domain.LayerMeta{LayerName: "Masjid", Color: "#00ff00"})
		require.NoError(t, err)
		assert.Equal(t, "Masjid", f.LayerName())
		assert.Equal(t, 1, store.Len())

		_, err = d.Save(domain.LayerMeta{LayerName: "Masjid", Color: "#00ff00"})
		assert.ErrorIs(t, err, ErrDraftClosed)
		assert.Equal(t, 1, store.Len())

		_, err = store.Draft(d.ID)
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})

	t.Run("invalid metadata keeps draft open", func(t *testing.T) {
		store := NewStore(logger)

		d, err := store.OpenDraft(orb.Point{107.6, -6.9})
		require.NoError(t, err)

		_, err = d.Save(domain.LayerMeta{LayerName: "", Color: "#00ff00"})
		assert.ErrorIs(t, err, ErrInvalidFeature)
		_, err = d.Save(domain.LayerMeta{LayerName: "A", Color: "green"})
		assert.ErrorIs(t, err, ErrInvalidFeature)
		assert.Equal(t, 0, store.Len())

		_, err = d.Save(domain.DefaultLayerMeta())
		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("discard leaves no trace", func(t *testing.T) {
		store := NewStore(logger)

		d, err := store.OpenDraft(orb.Point{107.6, -6.9})
		require.NoError(t, err)
		require.NoError(t, store.DiscardDraft(d.ID))

		_, err = d.Save(domain.DefaultLayerMeta())
		assert.ErrorIs(t, err, ErrDraftClosed)
		assert.Equal(t, 0, store.Len())
		assert.ErrorIs(t, store.DiscardDraft(d.ID), ErrDraftNotFound)
	})

	t.Run("invalid geometry cannot be drafted", func(t *testing.T) {
		store := NewStore(logger)

		_, err := store.OpenDraft(orb.LineString{{107.6, -6.9}})
		assert.ErrorIs(t, err, ErrInvalidFeature)
	})
}
