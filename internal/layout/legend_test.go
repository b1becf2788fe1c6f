package layout

import (
	"slices"
	"testing"

	"github.com/map-layout-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
)

func feature(name, color string) domain.Feature {
	props := geojson.Properties{}
	if name != "" {
		props[domain.PropLayerName] = name
	}
	if color != "" {
		props[domain.PropColor] = color
	}
	return domain.Feature{Geometry: orb.Point{107.6, -6.9}, Properties: props}
}

func TestBuildLegend(t *testing.T) {
	tests := []struct {
		name     string
		features []domain.Feature
		want     string
	}{
		{
			name: "empty",
			want: "",
		},
		{
			name:     "two features in order",
			features: []domain.Feature{feature("A", "#ff0000"), feature("B", "#00ff00")},
			want: `<p><span style="background:#ff0000;width:10px;height:10px;display:inline-block;margin-right:5px;border:1px solid #333;"></span>A</p>` +
				`<p><span style="background:#00ff00;width:10px;height:10px;display:inline-block;margin-right:5px;border:1px solid #333;"></span>B</p>`,
		},
		{
			name:     "fallbacks",
			features: []domain.Feature{feature("", "")},
			want:     `<p><span style="background:#3388ff;width:10px;height:10px;display:inline-block;margin-right:5px;border:1px solid #333;"></span>Tanpa Nama</p>`,
		},
		{
			name:     "name is escaped",
			features: []domain.Feature{feature(`<b>Jalan & "Gang"</b>`, "#000000")},
			want:     `<p><span style="background:#000000;width:10px;height:10px;display:inline-block;margin-right:5px;border:1px solid #333;"></span>&lt;b&gt;Jalan &amp; &#34;Gang&#34;&lt;/b&gt;</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildLegend(slices.Values(tt.features)))
		})
	}
}
