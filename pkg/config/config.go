// Package config loads the optional TOML configuration file controlling
// scanning and rendering. Every field has a default mirroring the built-in
// behavior, so a missing or partial file is never an error; only an
// unreadable or unparsable file is.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/graphtools/graphmark/pkg/errors"
	"github.com/graphtools/graphmark/pkg/graph"
	"github.com/graphtools/graphmark/pkg/render/dot"
	"github.com/graphtools/graphmark/pkg/scanner"
)

// Config is the full configuration surface.
type Config struct {
	// Output is the artifact path prefix.
	Output string `toml:"output"`

	// Marker is the annotation marker the scanner looks for.
	Marker string `toml:"marker"`

	// Delimiters is the comment delimiter table. When empty the built-in
	// table (block, line, hash) is used.
	Delimiters []Delimiter `toml:"delimiter"`

	// DefaultNode and DefaultEdge are DOT attribute strings applied to
	// nodes and edges with no per-type override.
	DefaultNode string `toml:"default_node"`
	DefaultEdge string `toml:"default_edge"`

	// NodeStyles and EdgeStyles override attribute strings per type.
	NodeStyles map[string]string `toml:"node_styles"`
	EdgeStyles map[string]string `toml:"edge_styles"`
}

// Delimiter is one comment-dialect entry in the config file.
type Delimiter struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Output:      "./output",
		Marker:      scanner.DefaultMarker,
		DefaultNode: dot.DefaultNodeSettings,
		DefaultEdge: dot.DefaultEdgeSettings,
	}
}

// Load reads a TOML config file and merges it over Default. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if file.Output != "" {
		cfg.Output = file.Output
	}
	if file.Marker != "" {
		cfg.Marker = file.Marker
	}
	if len(file.Delimiters) > 0 {
		cfg.Delimiters = file.Delimiters
	}
	if file.DefaultNode != "" {
		cfg.DefaultNode = file.DefaultNode
	}
	if file.DefaultEdge != "" {
		cfg.DefaultEdge = file.DefaultEdge
	}
	cfg.NodeStyles = file.NodeStyles
	cfg.EdgeStyles = file.EdgeStyles

	return cfg, nil
}

// ScannerDelimiters converts the configured table to scanner entries. The
// scanner itself validates and skips inconsistent entries.
func (c Config) ScannerDelimiters() []scanner.Delimiter {
	if len(c.Delimiters) == 0 {
		return scanner.DefaultDelimiters()
	}
	out := make([]scanner.Delimiter, 0, len(c.Delimiters))
	for _, d := range c.Delimiters {
		out = append(out, scanner.Delimiter{Start: d.Start, End: d.End})
	}
	return out
}

// Styles builds the render styles, applying per-type overrides on top of
// the configured defaults. Overrides for unknown type names are ignored.
func (c Config) Styles() dot.Styles {
	st := dot.DefaultStyles()
	st.DefaultNode = c.DefaultNode
	st.DefaultEdge = c.DefaultEdge
	for _, t := range graph.NodeTypes {
		st.NodeTypes[t] = c.DefaultNode
	}
	for name, attrs := range c.NodeStyles {
		t := graph.NodeType(name)
		if graph.ValidNodeType(t) {
			st.NodeTypes[t] = attrs
		}
	}
	for name, attrs := range c.EdgeStyles {
		t := graph.EdgeType(name)
		if _, ok := st.EdgeTypes[t]; ok {
			st.EdgeTypes[t] = attrs
		}
	}
	return st
}
