// Package pipeline provides the load → transform → render pipeline for
// Statecraft.
//
// This package implements the complete flow from a machine definition to
// rendered artifacts so the CLI commands share one code path. Each stage can
// be run independently or as part of the complete pipeline.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a definition file (JSON or TOML) into a machine
//  2. Transform: Optionally prune unreferenced states and minimize
//  3. Render: Generate output in various formats (DOT, SVG, PNG, JSON, TOML)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Input:    "even.json",
//	    Minimize: true,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	stdio "io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/statecraft/pkg/cache"
	"github.com/matzehuels/statecraft/pkg/errors"
	"github.com/matzehuels/statecraft/pkg/fsm"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatTOML: true,
}

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = FormatDOT

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options. Input names a definition file; Machine supplies a
	// prebuilt automaton instead and skips loading entirely.
	Input   string       `json:"input,omitempty"`
	Machine *fsm.Machine `json:"-"`

	// Transform options
	Prune    bool `json:"prune,omitempty"`
	Minimize bool `json:"minimize,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Compress bool     `json:"compress,omitempty"`
	Spaced   bool     `json:"spaced,omitempty"`
	Circular bool     `json:"circular,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Machine is the transformed automaton.
	Machine *fsm.Machine

	// MachineHash is the content hash of the loaded definition, before any
	// transform. Artifact cache keys derive from it.
	MachineHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	// Machine shape before and after the transform stage.
	StatesBefore      int
	TransitionsBefore int
	StatesAfter       int
	TransitionsAfter  int
	PrunedStates      int

	LoadTime      time.Duration
	TransformTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: dot, svg, png, json, toml)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Machine == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input file or machine is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(stdio.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one rendered format. Every
// option that changes the artifact bytes must flow into the key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Prune:    o.Prune,
		Minimize: o.Minimize,
		Compress: o.Compress,
		Spaced:   o.Spaced,
		Circular: o.Circular,
	}
}
