// Package dot renders graphs as GraphViz DOT graph description files.
//
// Each graph becomes one artifact named by concatenating the output path
// prefix, the graph's filename suffix, and ArtifactSuffix. The emission is
// byte-deterministic for a given input sequence: groups render as clusters
// in first-seen order, nodes in insertion order, edges in insertion order.
// Layout itself is left entirely to GraphViz; the only layout hinting is a
// chain of invisible edges inside each cluster to favor vertical stacking.
package dot

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/graphtools/graphmark/pkg/errors"
	"github.com/graphtools/graphmark/pkg/graph"
)

// ArtifactSuffix is appended to every artifact path after the graph's
// filename suffix.
const ArtifactSuffix = "_graphviz.txt"

// Default node and edge attribute strings.
const (
	DefaultNodeSettings = `shape=box,pencolor=blue,fillcolor=white,color=blue,fontsize=12,fontcolor=black,style=solid,newrank=false,rankdir="TB"`
	DefaultEdgeSettings = `color=black,pencolor=black`
)

// Styles holds the DOT attribute decoration strings used during rendering.
type Styles struct {
	DefaultNode string
	DefaultEdge string
	NodeTypes   map[graph.NodeType]string
	EdgeTypes   map[graph.EdgeType]string
}

// DefaultStyles returns the built-in attribute strings. Every node type
// currently shares one box style; the per-type map exists so a config file
// can restyle individual types.
func DefaultStyles() Styles {
	nodeTypes := make(map[graph.NodeType]string, len(graph.NodeTypes))
	for _, t := range graph.NodeTypes {
		nodeTypes[t] = DefaultNodeSettings
	}
	return Styles{
		DefaultNode: DefaultNodeSettings,
		DefaultEdge: DefaultEdgeSettings,
		NodeTypes:   nodeTypes,
		EdgeTypes: map[graph.EdgeType]string{
			graph.EdgeNormal:     "",
			graph.EdgeTransition: "",
		},
	}
}

// ArtifactPath builds the output path for a graph's artifact.
func ArtifactPath(prefix string, g *graph.Graph) string {
	return prefix + g.FilenameSuffix + ArtifactSuffix
}

// WriteFile renders g and writes the artifact under the given output path
// prefix, returning the path written. Failures are wrapped as OUTPUT_IO so
// the caller can count them and keep rendering other graphs.
func WriteFile(g *graph.Graph, prefix string, st Styles) (string, error) {
	path := ArtifactPath(prefix, g)

	f, err := os.Create(path)
	if err != nil {
		return path, errors.Wrap(errors.ErrCodeOutputIO, err, "create artifact %s", path)
	}
	defer f.Close()

	if err := Write(f, g, path, st); err != nil {
		return path, errors.Wrap(errors.ErrCodeOutputIO, err, "write artifact %s", path)
	}
	return path, nil
}

// Write emits the DOT description of g to w. The path appears only in the
// artifact's header comment.
func Write(w io.Writer, g *graph.Graph, path string, st Styles) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Graph file %q\n", path)
	buf.WriteString("digraph {\n")

	if len(g.Groups()) > 0 {
		writeClusters(&buf, g, st)
	} else {
		fmt.Fprintf(&buf, "    node [%s];\n", st.DefaultNode)
		for _, n := range g.Nodes() {
			writeNode(&buf, "    ", n, st)
		}
	}

	buf.WriteString("\n")
	fmt.Fprintf(&buf, "    edge [%s];\n", st.DefaultEdge)
	for _, e := range g.Edges() {
		if !e.Resolved() {
			continue
		}
		attrs := st.EdgeTypes[e.Type]
		if attrs != "" {
			attrs += ","
		}
		fmt.Fprintf(&buf, "    %s -> %s [%slabel=%q];\n", e.FromID, e.ToID, attrs, e.Label)
	}

	buf.WriteString("\n")
	buf.WriteString("    // Graph title\n")
	buf.WriteString("    labelloc = \"t\";\n")
	fmt.Fprintf(&buf, "    label = %q;\n", g.Title)
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// writeClusters emits one subgraph cluster per group, in first-seen order.
func writeClusters(buf *bytes.Buffer, g *graph.Graph, st Styles) {
	for i, group := range g.Groups() {
		buf.WriteString("\n")
		fmt.Fprintf(buf, "    subgraph cluster_%02d {\n", i+1)
		fmt.Fprintf(buf, "        // This is group %q\n", group)

		buf.WriteString("        color = lightgrey;\n")
		fmt.Fprintf(buf, "        label = %q;\n", group)
		buf.WriteString("        color = black;\n")
		buf.WriteString("        fontcolor = black;\n")
		fmt.Fprintf(buf, "        node [%s];\n", st.DefaultNode)

		nodes := g.GroupNodes(group)
		for _, n := range nodes {
			writeNode(buf, "        ", n, st)
		}

		// Invisible edges chain consecutive cluster nodes so GraphViz lays
		// them out vertically; they carry no semantic meaning.
		buf.WriteString("        edge [style=\"invis\"];\n")
		lastID := ""
		for _, n := range nodes {
			if n.ID == "" {
				continue
			}
			if lastID != "" {
				fmt.Fprintf(buf, "        %s -> %s;\n", lastID, n.ID)
			}
			lastID = n.ID
		}

		buf.WriteString("    }\n")
	}
}

// writeNode emits one node statement, labeled "<type>:\n<name>".
// Nodes whose id was never assigned are skipped.
func writeNode(buf *bytes.Buffer, indent string, n *graph.Node, st Styles) {
	if n.ID == "" {
		return
	}
	attrs := st.NodeTypes[n.Type]
	if attrs != "" {
		attrs += ","
	}
	fmt.Fprintf(buf, "%s%s [%slabel=\"%s:\\n%s\"];\n", indent, n.ID, attrs, n.Type, n.Name)
}
