package planner

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/pdrpinto/planner/config"
	"github.com/pdrpinto/planner/geometry"
	"github.com/pdrpinto/planner/vectormap"
)

const tracerName = "github.com/pdrpinto/planner"

// ErrExpansionLimit is returned when a search hits Tuning.MaxExpansions.
var ErrExpansionLimit = errors.New("search expansion limit reached")

// ErrNoMapLoader is returned by SetMap when the planner has no loader.
var ErrNoMapLoader = errors.New("no map loader configured")

// Point is a location in map coordinates.
type Point = geometry.Point

// ObstacleMap supplies the static obstacle segments of a map.
type ObstacleMap interface {
	Segments() []geometry.Segment
}

// MapLoader turns a map name into an ObstacleMap.
type MapLoader interface {
	Load(name string) (ObstacleMap, error)
}

// MapLoaderFunc adapts a function to MapLoader.
type MapLoaderFunc func(name string) (ObstacleMap, error)

// Load calls f(name).
func (f MapLoaderFunc) Load(name string) (ObstacleMap, error) { return f(name) }

// VectorMapLoader loads maps from dir with the vectormap package.
func VectorMapLoader(dir string) MapLoader {
	loader := vectormap.Loader{Dir: dir}
	return MapLoaderFunc(func(name string) (ObstacleMap, error) {
		m, err := loader.Load(name)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}

// Scene accepts drawable primitives. Colors are 0xRRGGBB.
type Scene interface {
	DrawLine(p0, p1 Point, color uint32)
	DrawCross(p Point, size float64, color uint32)
}

// Result contains the outcome of a global search.
type Result struct {
	Path          []Point
	TotalCost     float64
	ExpandedNodes int
	Found         bool
	PlanID        uuid.UUID
}

// Options defines parameters shared by Search, NewStepper and New.
type Options struct {
	Tuning    config.Tuning
	Logger    *slog.Logger
	Tracer    trace.Tracer
	MapLoader MapLoader
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithTuning replaces the default tuning.
func WithTuning(tuning config.Tuning) Option {
	return func(options *Options) { options.Tuning = tuning }
}

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) {
		if logger != nil {
			options.Logger = logger
		}
	}
}

// WithTracer sets the tracer used for search spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(options *Options) {
		if tracer != nil {
			options.Tracer = tracer
		}
	}
}

// WithMapLoader sets the loader used by Planner.SetMap.
func WithMapLoader(loader MapLoader) Option {
	return func(options *Options) { options.MapLoader = loader }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		Tuning:    config.Default(),
		Logger:    slog.Default(),
		Tracer:    noop.NewTracerProvider().Tracer(tracerName),
		MapLoader: VectorMapLoader(""),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	return searchOptions
}

// Search runs A* over the motion lattice from start until a point within
// StopDistance of goal is expanded.
//
// An unreachable goal is not an error: the returned Result has Found false
// and an empty Path. Errors are reserved for context cancellation and
// ErrExpansionLimit.
func Search(
	ctx context.Context,
	obstacles ObstacleMap,
	start Point,
	goal Point,
	options ...Option,
) (Result, error) {
	searchOptions := applyOptions(options)
	return search(ctx, obstacles, start, goal, searchOptions)
}

func search(ctx context.Context, obstacles ObstacleMap, start, goal Point, options Options) (Result, error) {
	planID := uuid.New()
	ctx, span := options.Tracer.Start(ctx, "planner.GlobalPlan", trace.WithAttributes(
		attribute.String("plan.id", planID.String()),
		attribute.Float64("plan.start.x", start.X),
		attribute.Float64("plan.start.y", start.Y),
		attribute.Float64("plan.goal.x", goal.X),
		attribute.Float64("plan.goal.y", goal.Y),
	))
	defer span.End()

	e := newEngine(obstacles, start, goal, options.Tuning)
	err := e.run(ctx)
	result := e.result()
	result.PlanID = planID

	span.SetAttributes(
		attribute.Int("plan.expanded", result.ExpandedNodes),
		attribute.Bool("plan.found", result.Found),
		attribute.Int("plan.waypoints", len(result.Path)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		options.Logger.Warn("global plan aborted",
			"plan_id", planID, "expanded", result.ExpandedNodes, "error", err)
		return result, err
	}

	options.Logger.Debug("global plan",
		"plan_id", planID,
		"found", result.Found,
		"expanded", result.ExpandedNodes,
		"cost", result.TotalCost,
		"waypoints", len(result.Path))
	return result, nil
}
