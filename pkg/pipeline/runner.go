// Package pipeline drives the two-phase annotation run.
//
// Phase one feeds every input line through the comment scanner and payload
// assembler, decoding each completed annotation into the graph registry.
// Phase two resolves edge endpoints and writes one DOT artifact per graph.
// Scanner and assembler state deliberately survives file boundaries, so a
// block comment or annotation left open in one source continues into the
// next. Every failure is logged and counted but never aborts the run.
package pipeline

import (
	"bufio"
	"context"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/graphtools/graphmark/pkg/config"
	"github.com/graphtools/graphmark/pkg/errors"
	"github.com/graphtools/graphmark/pkg/graph"
	"github.com/graphtools/graphmark/pkg/render/dot"
	"github.com/graphtools/graphmark/pkg/scanner"
	"github.com/graphtools/graphmark/pkg/tag"
)

// Counters accumulates the run statistics reported in the summary.
type Counters struct {
	Errors   int
	Warnings int
	Tags     int
	Files    int
}

// Report is the outcome of a completed run.
type Report struct {
	RunID     string
	Counters  Counters
	Artifacts []string // paths written, in graph definition order
}

// Runner holds all state for one annotation run. It is single-threaded:
// lines are processed strictly in input order, and graph mutation order
// determines output. Not safe for concurrent use.
type Runner struct {
	scanner   *scanner.Scanner
	assembler scanner.Assembler
	registry  *graph.Registry
	styles    dot.Styles
	output    string
	logger    *log.Logger
	runID     string
	counters  Counters
}

// New builds a runner from the configuration. Invalid delimiter table
// entries are logged, counted, and skipped; the run proceeds with the
// remaining entries.
func New(cfg config.Config, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sc, cfgErrs := scanner.New(cfg.Marker, cfg.ScannerDelimiters())
	r := &Runner{
		scanner:  sc,
		registry: graph.NewRegistry(),
		styles:   cfg.Styles(),
		output:   cfg.Output,
		logger:   logger,
		runID:    uuid.NewString(),
	}
	for _, err := range cfgErrs {
		logger.Error(err.Error())
		r.counters.Errors++
	}

	logger.Debug("pipeline run starting", "run_id", r.runID, "output", r.output)
	return r
}

// RunID returns the unique id of this run.
func (r *Runner) RunID() string { return r.runID }

// Counters returns a snapshot of the run statistics so far.
func (r *Runner) Counters() Counters { return r.counters }

// Registry exposes the graphs accumulated so far.
func (r *Runner) Registry() *graph.Registry { return r.registry }

// ProcessLine feeds one raw input line through the scanner and assembler,
// applying any completed annotation to the registry.
func (r *Runner) ProcessLine(line, source string, num int) {
	frag, ok := r.scanner.ScanLine(line, source, num, r.assembler.Reading())
	if !ok {
		return
	}
	payload, done := r.assembler.Add(frag)
	if !done {
		return
	}
	r.counters.Tags++
	r.applyPayload(payload, r.assembler.Source(), r.assembler.Line())
}

// applyPayload normalizes, decodes, and applies one completed annotation.
// Every rejection is counted; the annotation is discarded and the run
// continues.
func (r *Runner) applyPayload(raw, source string, line int) {
	normalized := tag.Normalize(raw)

	p, err := tag.Decode(normalized)
	if err != nil {
		r.errorAt(source, line, err)
		return
	}

	switch {
	case p.Definition != nil:
		d := p.Definition
		g := graph.New(d.GraphType, d.GraphID, d.Title, d.Description, d.FilenameSuffix)
		if replaced := r.registry.Define(g); replaced {
			r.logger.Warn("graph redefined, discarding earlier contents",
				"graphid", d.GraphID, "source", source, "line", line)
			r.counters.Warnings++
		}
		r.logger.Debug("graph defined", "graphid", d.GraphID, "title", d.Title)

	case p.Node != nil:
		g, err := r.registry.Get(p.Node.GraphID)
		if err != nil {
			r.errorAt(source, line, err)
			return
		}
		n := g.AddNode(p.Node.Name, p.Node.Type, p.Node.Group)
		r.logger.Debug("node added", "graphid", p.Node.GraphID, "id", n.ID, "name", n.Name)

	case p.Edge != nil:
		g, err := r.registry.Get(p.Edge.GraphID)
		if err != nil {
			r.errorAt(source, line, err)
			return
		}
		g.AddEdge(p.Edge.FromName, p.Edge.ToName, p.Edge.Label, p.Edge.Type)
		r.logger.Debug("edge added", "graphid", p.Edge.GraphID,
			"from", p.Edge.FromName, "to", p.Edge.ToName)
	}
}

// ProcessReader scans an input stream line by line under the given source
// name. Lines of arbitrary length are supported.
func (r *Runner) ProcessReader(ctx context.Context, in io.Reader, source string) {
	r.counters.Files++

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	num := 0
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		num++
		r.ProcessLine(sc.Text(), source, num)
	}
	if err := sc.Err(); err != nil {
		r.errorAt(source, num, errors.Wrap(errors.ErrCodeSourceIO, err, "read %s", source))
	}
}

// ProcessFile scans one file. An unreadable file is a counted error; the
// run continues with later sources.
func (r *Runner) ProcessFile(ctx context.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		r.errorAt(path, 0, errors.Wrap(errors.ErrCodeSourceIO, err, "open %s", path))
		return
	}
	defer f.Close()

	r.logger.Debug("scanning source", "path", path)
	r.ProcessReader(ctx, f, path)
}

// ProcessPatterns glob-expands each pattern and scans every match in
// sorted order. A pattern matching nothing is a counted error.
func (r *Runner) ProcessPatterns(ctx context.Context, patterns []string) {
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			r.errorAt(pattern, 0, errors.Wrap(errors.ErrCodeSourceIO, err, "bad pattern %s", pattern))
			continue
		}
		if len(matches) == 0 {
			r.errorAt(pattern, 0, errors.New(errors.ErrCodeSourceIO, "pattern %q matched no files", pattern))
			continue
		}
		sort.Strings(matches)
		for _, path := range matches {
			if ctx.Err() != nil {
				return
			}
			r.ProcessFile(ctx, path)
		}
	}
}

// Finish runs phase two: resolve every graph's edge endpoints, then write
// one artifact per graph in definition order. Unresolved endpoints and
// unwritable artifacts are counted errors; every remaining graph is still
// written.
func (r *Runner) Finish() Report {
	var artifacts []string

	for _, g := range r.registry.Graphs() {
		for _, err := range g.Resolve() {
			r.errorAt("", 0, err)
		}

		path, err := dot.WriteFile(g, r.output, r.styles)
		if err != nil {
			r.errorAt(path, 0, err)
			continue
		}
		r.logger.Info("artifact written", "graphid", g.ID, "path", path,
			"nodes", g.NodeCount(), "edges", g.EdgeCount())
		artifacts = append(artifacts, path)
	}

	r.logger.Debug("pipeline run finished", "run_id", r.runID,
		"errors", r.counters.Errors, "warnings", r.counters.Warnings,
		"tags", r.counters.Tags, "files", r.counters.Files)

	return Report{RunID: r.runID, Counters: r.counters, Artifacts: artifacts}
}

// errorAt logs a counted error, with source coordinates when known.
func (r *Runner) errorAt(source string, line int, err error) {
	r.counters.Errors++
	msg := errors.UserMessage(err)
	switch {
	case source != "" && line > 0:
		r.logger.Error(msg, "source", source, "line", line)
	case source != "":
		r.logger.Error(msg, "source", source)
	default:
		r.logger.Error(msg)
	}
}
