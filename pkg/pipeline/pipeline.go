// Package pipeline provides the load → search → render pipeline for
// wordladder.
//
// This package implements the sequence that the CLI and the HTTP API share,
// so both entry points cache graphs and report results identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the word file and build the graph (cached by content hash)
//  2. Search: Run a breadth-first search between two words
//  3. Render: Export the explored subgraph in various formats (DOT, SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    WordFile: "words.txt",
//	    From:     "fled",
//	    To:       "tint",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, err := runner.LoadGraph(ctx, opts)
//	eng := search.NewEngine(g, opts.EngineOptions())
//	res, err := eng.FindWordPath(ctx, opts.From, opts.To)
//	artifacts, err := pipeline.Render(ctx, g, eng.Snapshot(), opts)
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/search"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatDOT   = "dot"   // Graphviz source of the explored subgraph
	FormatSVG   = "svg"   // Rendered explored subgraph
	FormatJSON  = "json"  // Exploration (search state in words)
	FormatGraph = "graph" // Full graph in the wire format
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:   true,
	FormatSVG:   true,
	FormatJSON:  true,
	FormatGraph: true,
}

// DefaultWorkers is the edge-construction worker count when none is set.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	WordFile string `json:"word_file,omitempty"`
	Workers  int    `json:"workers,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"` // Ignore cached graphs

	// Search options
	From      string        `json:"from,omitempty"`
	To        string        `json:"to,omitempty"`
	StepDelay time.Duration `json:"step_delay,omitempty"`
	EdgeDelay time.Duration `json:"edge_delay,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Full     bool     `json:"full,omitempty"`     // Draw the whole graph, not just the explored part
	Detailed bool     `json:"detailed,omitempty"` // Add vertex ids to labels

	// Runtime options (not serialized)
	Logger   *log.Logger           `json:"-"`
	Progress func(done, total int) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the word graph the search ran on.
	Graph *wordgraph.Graph

	// WordsHash is the content hash of the word file.
	WordsHash string

	// Search is the search outcome.
	Search search.WordResult

	// Snapshot is the engine state when the search ended.
	Snapshot search.Snapshot

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WordCount  int
	EdgeCount  int
	LoadTime   time.Duration
	SearchTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GraphHit bool // Whether the graph came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return werrors.New(werrors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: dot, svg, json, graph)", format)
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

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForSearch(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading the graph.
func (o *Options) ValidateForLoad() error {
	if o.WordFile == "" {
		return werrors.New(werrors.ErrCodeInvalidInput, "word file is required")
	}
	if err := werrors.ValidatePath(o.WordFile); err != nil {
		return err
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers()
	}
	o.setLogger()
	return nil
}

// ValidateForSearch checks the search endpoints and pacing.
func (o *Options) ValidateForSearch() error {
	if err := werrors.ValidateWord(o.From); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	if err := werrors.ValidateWord(o.To); err != nil {
		return fmt.Errorf("to: %w", err)
	}
	if o.StepDelay < 0 || o.EdgeDelay < 0 {
		return werrors.New(werrors.ErrCodeInvalidInput, "delays must not be negative")
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// GraphOptions returns the options for graph construction.
func (o *Options) GraphOptions() wordgraph.Options {
	return wordgraph.Options{
		Logger:   o.Logger,
		Workers:  o.Workers,
		Progress: o.Progress,
	}
}

// EngineOptions returns the options for the search engine.
func (o *Options) EngineOptions() search.Options {
	return search.Options{
		StepDelay: o.StepDelay,
		EdgeDelay: o.EdgeDelay,
		Logger:    o.Logger,
	}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
