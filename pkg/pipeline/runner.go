package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/statecraft/pkg/cache"
	"github.com/matzehuels/statecraft/pkg/errors"
	"github.com/matzehuels/statecraft/pkg/fsm"
	"github.com/matzehuels/statecraft/pkg/io"
	"github.com/matzehuels/statecraft/pkg/render/statechart"
)

// cacheScope namespaces every pipeline key. Bump the version when the
// artifact format changes to invalidate all cached output at once.
const cacheScope = "statecraft:v1:"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.NewScoped(c, cacheScope),
		Logger: logger,
	}
}

// Execute runs the complete load → transform → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	m, err := r.Load(opts)
	if err != nil {
		return nil, err
	}
	result.Machine = m
	result.MachineHash = cache.Hash([]byte(m.String()))
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.StatesBefore = m.NumStates()
	result.Stats.TransitionsBefore = m.TransitionCount()

	r.Logger.Info("loaded machine",
		"states", result.Stats.StatesBefore,
		"transitions", result.Stats.TransitionsBefore,
		"duration", result.Stats.LoadTime)

	// Stage 2: Transform
	transformStart := time.Now()
	pruned, err := r.Transform(m, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.TransformTime = time.Since(transformStart)
	result.Stats.StatesAfter = m.NumStates()
	result.Stats.TransitionsAfter = m.TransitionCount()
	result.Stats.PrunedStates = pruned

	if opts.Prune || opts.Minimize {
		r.Logger.Info("transformed machine",
			"states", result.Stats.StatesAfter,
			"pruned", pruned,
			"duration", result.Stats.TransformTime)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.Render(ctx, m, result.MachineHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load produces the working machine: a clone of the supplied one, or the
// decoded input file. The clone keeps later transforms from mutating a
// machine the caller still holds.
func (r *Runner) Load(opts Options) (*fsm.Machine, error) {
	if opts.Machine != nil {
		return opts.Machine.Clone(), nil
	}
	return io.Import(opts.Input)
}

// Transform applies the requested structure changes in place and reports how
// many states were removed. Minimize subsumes pruning, so Prune is only run
// on its own.
func (r *Runner) Transform(m *fsm.Machine, opts Options) (int, error) {
	before := m.NumStates()
	switch {
	case opts.Minimize:
		if err := m.Minimize(); err != nil {
			return 0, err
		}
	case opts.Prune:
		m.Prune()
		if err := m.Normalize(); err != nil {
			return 0, err
		}
	}
	return before - m.NumStates(), nil
}

// Render generates all requested artifacts, serving them from cache when
// every format is already present. The second result reports a full cache
// hit.
func (r *Runner) Render(ctx context.Context, m *fsm.Machine, machineHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			key := cache.ArtifactKey(machineHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				artifacts = nil
				break
			}
			artifacts[format] = data
		}
		if artifacts != nil {
			return artifacts, true, nil
		}
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(ctx, m, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
	}

	for format, data := range artifacts {
		key := cache.ArtifactKey(machineHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}

	return artifacts, false, nil
}

func (r *Runner) renderFormat(ctx context.Context, m *fsm.Machine, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON, FormatTOML:
		var buf bytes.Buffer
		if err := io.Write(m, &buf, io.Format(format)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(r.toDOT(m, opts)), nil
	case FormatSVG:
		return statechart.RenderSVG(ctx, r.toDOT(m, opts))
	case FormatPNG:
		return statechart.RenderPNG(ctx, r.toDOT(m, opts))
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

func (r *Runner) toDOT(m *fsm.Machine, opts Options) string {
	p := m.Project(fsm.ProjectOptions{Compress: opts.Compress, Spaced: opts.Spaced})
	return statechart.ToDOT(p, statechart.Options{Circular: opts.Circular})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
