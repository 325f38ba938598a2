package engine

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/piwi3910/BoardCut/internal/model"
)

const instrumentationName = "boardcut/engine"

// Engine computes cut layouts with a fixed set of settings. It holds no
// per-call state and is safe for concurrent use.
type Engine struct {
	settings model.LayoutSettings
	logger   *slog.Logger
	tracer   trace.Tracer
	layouts  metric.Int64Counter
	boards   metric.Int64Histogram
}

// Option defines a functional configuration override.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTracer sets the tracer used for per-computation spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithMeter sets the meter the layout counters are registered on.
func WithMeter(m metric.Meter) Option {
	return func(e *Engine) {
		if m != nil {
			e.registerInstruments(m)
		}
	}
}

// New creates an engine. Without options it logs nowhere and uses the
// global tracer and meter providers.
func New(settings model.LayoutSettings, opts ...Option) *Engine {
	if settings.RotationPolicy == "" {
		settings.RotationPolicy = model.RotationFree
	}
	e := &Engine{
		settings: settings,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   otel.Tracer(instrumentationName),
	}
	e.registerInstruments(otel.Meter(instrumentationName))
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) registerInstruments(m metric.Meter) {
	// Instrument errors only happen for malformed names; keep the no-op
	// instruments the meter returns alongside them.
	e.layouts, _ = m.Int64Counter("boardcut.layouts",
		metric.WithDescription("Layouts computed, by outcome"))
	e.boards, _ = m.Int64Histogram("boardcut.layout.boards",
		metric.WithDescription("Boards needed per layout"))
}

// Settings returns the settings the engine was built with.
func (e *Engine) Settings() model.LayoutSettings {
	return e.settings
}

// ComputeLayout expands the pieces, packs every unit onto boards and sums
// the trim waste. On error no partial layout is returned.
func (e *Engine) ComputeLayout(ctx context.Context, board model.BoardSize, pieces []model.WoodPiece) (model.CutLayout, error) {
	ctx, span := e.tracer.Start(ctx, "engine.ComputeLayout")
	defer span.End()
	start := time.Now()

	layout, instances, err := e.compute(ctx, board, pieces)
	span.SetAttributes(
		attribute.Int("layout.pieces", len(pieces)),
		attribute.Int("layout.instances", instances),
		attribute.String("layout.rotation_policy", string(e.settings.RotationPolicy)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "layout failed")
		e.layouts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		e.logger.Debug("layout failed", "pieces", len(pieces), "error", err)
		return model.CutLayout{}, err
	}

	span.SetAttributes(attribute.Int("layout.boards", layout.BoardsNeeded))
	e.layouts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	e.boards.Record(ctx, int64(layout.BoardsNeeded))
	e.logger.Debug("layout computed",
		"pieces", len(pieces),
		"instances", instances,
		"boards", layout.BoardsNeeded,
		"waste", layout.TotalWaste,
		"duration", time.Since(start),
	)
	return layout, nil
}

func (e *Engine) compute(ctx context.Context, board model.BoardSize, pieces []model.WoodPiece) (model.CutLayout, int, error) {
	instances, err := Expand(board, pieces, e.settings.RotationPolicy)
	if err != nil {
		return model.CutLayout{}, 0, err
	}
	placements, err := Pack(ctx, board, instances)
	if err != nil {
		return model.CutLayout{}, len(instances), err
	}
	return Assemble(board, placements, Waste(instances)), len(instances), nil
}

// Assemble bundles packer output into a CutLayout. Board indices are
// contiguous from 0, so the count is the highest index plus one.
func Assemble(board model.BoardSize, placements []model.Placement, waste float64) model.CutLayout {
	boards := 0
	for _, p := range placements {
		if p.BoardIndex+1 > boards {
			boards = p.BoardIndex + 1
		}
	}
	if placements == nil {
		placements = []model.Placement{}
	}
	return model.CutLayout{
		Board:        board,
		BoardsNeeded: boards,
		Placements:   placements,
		TotalWaste:   waste,
	}
}

// ComputeLayout runs a default engine without cancellation.
func ComputeLayout(board model.BoardSize, pieces []model.WoodPiece) (model.CutLayout, error) {
	return New(model.DefaultSettings()).ComputeLayout(context.Background(), board, pieces)
}
