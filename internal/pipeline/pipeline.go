// Package pipeline runs the full drawing conversion: DXF text in,
// populated outline model out. It is the one place the parser,
// extractor and perimeter model meet, and the place conversion
// metrics are emitted from.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/draftline/outline/internal/dxf"
	"github.com/draftline/outline/internal/extract"
	"github.com/draftline/outline/internal/influx"
	"github.com/draftline/outline/internal/perimeter"
	"github.com/draftline/outline/pkg/core"
)

// Stats summarizes one conversion run.
type Stats struct {
	Meta      core.DrawingMeta
	Perimeter float64
	Elapsed   time.Duration
}

// Pipeline converts CAD text into outline models.
type Pipeline struct {
	logger             *slog.Logger
	metrics            *influx.Manager
	unitsPerMillimeter float64

	// OTEL metrics
	conversions metric.Int64Counter
	failures    metric.Int64Counter
	duration    metric.Float64Histogram
}

// New creates a new Pipeline. The influx manager is optional; pass nil
// to skip metric shipping. Uses the global OTel meter for counters
// (no-op if not configured).
func New(logger *slog.Logger, unitsPerMillimeter float64, metrics *influx.Manager) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		logger:             logger,
		metrics:            metrics,
		unitsPerMillimeter: unitsPerMillimeter,
	}

	m := meter()

	var err error

	p.conversions, err = m.Int64Counter(
		"pipeline.conversions",
		metric.WithDescription("Total drawings converted"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating conversions counter: %w", err)
	}

	p.failures, err = m.Int64Counter(
		"pipeline.failures",
		metric.WithDescription("Total drawings that failed to parse"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	p.duration, err = m.Float64Histogram(
		"pipeline.conversion.duration",
		metric.WithDescription("Conversion duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return p, nil
}

// Convert parses the drawing text, extracts wall segments and loads
// them into a fresh outline model. The model is returned alongside the
// run's stats even when no segments were found; the caller decides
// whether an empty outline is an error.
func (p *Pipeline) Convert(ctx context.Context, fileName, text string) (*perimeter.Model, Stats, error) {
	start := time.Now()
	fileAttr := metric.WithAttributes(attribute.String("file", fileName))

	doc, err := dxf.Parse(text)
	if err != nil {
		p.failures.Add(ctx, 1, fileAttr)
		return nil, Stats{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	result := extract.Extract(doc)

	model := perimeter.New(p.logger)
	model.LoadFromCADData(result.Segments)

	stats := Stats{
		Meta: core.DrawingMeta{
			FileName:           fileName,
			UnitsPerMillimeter: p.unitsPerMillimeter,
			LineCount:          result.LineCount,
			PolylineCount:      result.PolylineCount,
			VertexCount:        result.VertexCount,
		},
		Perimeter: model.Perimeter(),
		Elapsed:   time.Since(start),
	}

	p.conversions.Add(ctx, 1, fileAttr)
	p.duration.Record(ctx, float64(stats.Elapsed.Microseconds())/1000.0, fileAttr)

	p.logger.Info("converted drawing",
		"file", fileName,
		"lines", result.LineCount,
		"polylines", result.PolylineCount,
		"vertices", result.VertexCount,
		"points", model.PointCount(),
		"segments", model.SegmentCount(),
		"closed", model.IsClosed(),
		"perimeter", stats.Perimeter,
		"elapsed", stats.Elapsed,
	)

	p.shipMetrics(ctx, stats, model.Snapshot())

	return model, stats, nil
}

func (p *Pipeline) shipMetrics(ctx context.Context, stats Stats, snap core.OutlineSnapshot) {
	if p.metrics == nil {
		return
	}

	point := influx.ConversionPoint(stats.Meta, snap, stats.Perimeter, stats.Elapsed)
	if err := p.metrics.WritePoint(ctx, influx.ConversionBucket, point); err != nil {
		p.logger.Error("failed to ship conversion metrics", "error", err)
	}
}
