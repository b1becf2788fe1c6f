package layout

import (
	"fmt"
	"html"
	"iter"
	"strings"

	"github.com/map-layout-service/internal/domain"
)

const legendLineFormat = `<p><span style="background:%s;width:10px;height:10px;display:inline-block;margin-right:5px;border:1px solid #333;"></span>%s</p>`

// BuildLegend - одна строка легенды на объект в порядке хранилища.
// Пустое хранилище даёт пустую строку.
func BuildLegend(features iter.Seq[domain.Feature]) string {
	var sb strings.Builder
	for f := range features {
		sb.WriteString(legendLine(f))
	}
	return sb.String()
}

func legendLine(f domain.Feature) string {
	name := f.LayerName()
	if name == "" {
		name = domain.LegendFallbackName
	}
	color := f.Color()
	if color == "" {
		color = domain.LegendFallbackColor
	}
	return fmt.Sprintf(legendLineFormat, html.EscapeString(color), html.EscapeString(name))
}
