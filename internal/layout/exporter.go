// Package layout - сохранение метаданных макета и экспорт снимка карты
// для отдельного окна просмотра.
package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/domain/repository"
	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"go.uber.org/zap"
)

var (
	ErrLayoutNotFound  = errors.New("layout not found")
	ErrInvalidSnapshot = errors.New("invalid layout snapshot")
)

// FeatureSource - перезапускаемый источник нарисованных объектов
type FeatureSource interface {
	All() iter.Seq[domain.Feature]
}

// ViewSource - текущий вид карты
type ViewSource interface {
	Center() domain.LatLng
	Zoom() float64
}

type Options struct {
	TTL          time.Duration
	DefaultTitle string
	ViewerPath   string
	MinifyLegend bool
}

// ExportResult - снимок и адрес окна просмотра
type ExportResult struct {
	Snapshot domain.LayoutSnapshot
	Target   string
}

type Exporter struct {
	kv        repository.KVRepository
	opts      Options
	validator *SchemaValidator
	minifier  *minify.M
	logger    *zap.Logger
}

func NewExporter(kv repository.KVRepository, opts Options, logger *zap.Logger) (*Exporter, error) {
	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, err
	}

	if opts.DefaultTitle == "" {
		opts.DefaultTitle = "Peta Layout"
	}
	if opts.ViewerPath == "" {
		opts.ViewerPath = "layout.html"
	}

	e := &Exporter{
		kv:        kv,
		opts:      opts,
		validator: validator,
		logger:    logger,
	}
	if opts.MinifyLegend {
		e.minifier = minify.New()
		e.minifier.AddFunc("text/css", css.Minify)
		e.minifier.Add("text/html", &html.Minifier{KeepEndTags: true, KeepQuotes: true})
	}
	return e, nil
}

// Key - ключ сессионного хранилища
func Key(sessionID, name string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, name)
}

// SaveMeta сохраняет ввод формы макета
func (e *Exporter) SaveMeta(ctx context.Context, sessionID string, meta domain.LayoutMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal layout meta: %w", err)
	}
	if err := e.kv.Set(ctx, Key(sessionID, domain.KeyLayoutMeta), data, e.opts.TTL); err != nil {
		return fmt.Errorf("failed to save layout meta: %w", err)
	}
	return nil
}

// Meta читает метаданные; отсутствие или битые данные дают пустые значения
func (e *Exporter) Meta(ctx context.Context, sessionID string) domain.LayoutMeta {
	var meta domain.LayoutMeta

	data, err := e.kv.Get(ctx, Key(sessionID, domain.KeyLayoutMeta))
	if err != nil {
		e.logger.Warn("Failed to read layout meta, using defaults",
			zap.String("session_id", sessionID), zap.Error(err))
		return meta
	}
	if data == nil {
		return meta
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		e.logger.Warn("Corrupt layout meta, using defaults",
			zap.String("session_id", sessionID), zap.Error(err))
		return domain.LayoutMeta{}
	}
	return meta
}

// Export собирает снимок из текущего вида и хранилища и записывает его
func (e *Exporter) Export(ctx context.Context, sessionID string, view ViewSource, features FeatureSource) (ExportResult, error) {
	meta := e.Meta(ctx, sessionID)

	title := meta.LayoutTitle
	if title == "" {
		title = e.opts.DefaultTitle
	}

	// коллекция и легенда строятся из одного прохода, порядок совпадает
	fc := geojson.NewFeatureCollection()
	var items []domain.Feature
	for f := range features.All() {
		items = append(items, f)
		fc.Append(f.GeoJSON())
	}

	legend := BuildLegend(func(yield func(domain.Feature) bool) {
		for _, f := range items {
			if !yield(f) {
				return
			}
		}
	})
	legend = e.minifyLegend(legend)

	snapshot := domain.LayoutSnapshot{
		Title:      title,
		Center:     view.Center().Pair(),
		Zoom:       view.Zoom(),
		DrawnItems: fc,
		LegendHTML: legend,
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to marshal layout snapshot: %w", err)
	}
	if err := e.validator.ValidateBytes(data); err != nil {
		return ExportResult{}, err
	}
	if err := e.kv.Set(ctx, Key(sessionID, domain.KeyLayoutData), data, e.opts.TTL); err != nil {
		return ExportResult{}, fmt.Errorf("failed to save layout snapshot: %w", err)
	}

	e.logger.Info("Layout exported",
		zap.String("session_id", sessionID),
		zap.Int("features", len(fc.Features)),
		zap.String("title", title))

	return ExportResult{Snapshot: snapshot, Target: e.opts.ViewerPath}, nil
}

// Load - чтение последнего снимка окном просмотра
func (e *Exporter) Load(ctx context.Context, sessionID string) (*domain.LayoutSnapshot, error) {
	data, err := e.kv.Get(ctx, Key(sessionID, domain.KeyLayoutData))
	if err != nil {
		return nil, fmt.Errorf("failed to read layout snapshot: %w", err)
	}
	if data == nil {
		return nil, ErrLayoutNotFound
	}

	var snapshot domain.LayoutSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layout snapshot: %w", err)
	}
	return &snapshot, nil
}

// Purge удаляет оба ключа сессии
func (e *Exporter) Purge(ctx context.Context, sessionID string) error {
	return e.kv.Delete(ctx,
		Key(sessionID, domain.KeyLayoutMeta),
		Key(sessionID, domain.KeyLayoutData))
}

func (e *Exporter) minifyLegend(legend string) string {
	if e.minifier == nil || legend == "" {
		return legend
	}
	out, err := e.minifier.String("text/html", legend)
	if err != nil {
		e.logger.Warn("Failed to minify legend, keeping original", zap.Error(err))
		return legend
	}
	return out
}
