package tag

import (
	"encoding/json"
	"strings"

	"github.com/graphtools/graphmark/pkg/errors"
	"github.com/graphtools/graphmark/pkg/graph"
)

// Command selects what an annotation does.
type Command string

// Annotation commands.
const (
	CommandData       Command = "data"
	CommandDefinition Command = "definition"
)

// CommandDefault is used when an annotation omits the command attribute.
const CommandDefault = CommandData

// DataType selects what a data annotation adds to a graph.
type DataType string

// Data annotation types.
const (
	DataNode DataType = "node"
	DataEdge DataType = "edge"
)

// Definition is the validated record of a graph definition annotation.
type Definition struct {
	GraphType      graph.Type
	GraphID        string
	Title          string
	Description    string
	FilenameSuffix string
}

// NodeData is the validated record of a node data annotation.
type NodeData struct {
	GraphID string
	Name    string
	Type    graph.NodeType
	Group   string // optional
}

// EdgeData is the validated record of an edge data annotation.
type EdgeData struct {
	GraphID  string
	FromName string
	ToName   string
	Type     graph.EdgeType
	Label    string // optional
}

// Payload is the tagged-variant result of decoding one annotation.
// Exactly one of Definition, Node, Edge is non-nil, matching Command
// (and, for data annotations, the datatype).
type Payload struct {
	Command    Command
	Definition *Definition
	Node       *NodeData
	Edge       *EdgeData
}

// Attribute key sets allowed per variant. Any key outside the variant's set
// rejects the annotation before further dispatch.
var (
	definitionKeys = keySet("command", "graphtype", "graphid", "title", "description", "filenamesuffix")
	nodeKeys       = keySet("command", "graphid", "datatype", "nodename", "nodetype", "group")
	edgeKeys       = keySet("command", "graphid", "datatype", "fromnodename", "tonodename", "edgetype", "label")
)

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// Decode parses normalized payload text into a validated Payload.
// All attribute values are strings; a missing attribute reads as empty.
// Every returned error carries one of the annotation error codes, and a
// non-nil error means the annotation is discarded.
func Decode(normalized string) (Payload, error) {
	var record map[string]string
	if err := json.Unmarshal([]byte(normalized), &record); err != nil {
		return Payload{}, errors.Wrap(errors.ErrCodeMalformedPayload, err, "decode annotation object")
	}

	command := Command(record["command"])
	if command == "" {
		command = CommandDefault
	}

	switch command {
	case CommandDefinition:
		return decodeDefinition(record)
	case CommandData:
		return decodeData(record)
	default:
		return Payload{}, errors.New(errors.ErrCodeUnknownCommand, "unknown command: %q", string(command))
	}
}

func decodeDefinition(record map[string]string) (Payload, error) {
	if err := checkKeys(record, definitionKeys); err != nil {
		return Payload{}, err
	}

	graphType := graph.Type(record["graphtype"])
	if graphType == "" {
		return Payload{}, missing("graphtype")
	}
	if !graph.ValidType(graphType) {
		return Payload{}, errors.New(errors.ErrCodeUnknownEnum,
			"unknown \"graphtype\" attribute %q specified, expecting %q or %q",
			string(graphType), string(graph.TypeCode), string(graph.TypeWorkflow))
	}

	def := Definition{
		GraphType:      graphType,
		GraphID:        record["graphid"],
		Title:          record["title"],
		Description:    record["description"],
		FilenameSuffix: record["filenamesuffix"],
	}
	if err := errors.ValidateGraphID(def.GraphID); err != nil {
		return Payload{}, err
	}
	if def.Title == "" {
		return Payload{}, missing("title")
	}
	if def.Description == "" {
		return Payload{}, missing("description")
	}
	if err := errors.ValidateFilenameSuffix(def.FilenameSuffix); err != nil {
		return Payload{}, err
	}

	return Payload{Command: CommandDefinition, Definition: &def}, nil
}

func decodeData(record map[string]string) (Payload, error) {
	graphID := record["graphid"]
	if graphID == "" {
		return Payload{}, missing("graphid")
	}

	switch DataType(record["datatype"]) {
	case DataNode:
		return decodeNode(record, graphID)
	case DataEdge:
		return decodeEdge(record, graphID)
	case "":
		return Payload{}, missing("datatype")
	default:
		return Payload{}, errors.New(errors.ErrCodeUnknownEnum,
			"unknown \"datatype\" attribute %q specified, expecting %q or %q",
			record["datatype"], string(DataNode), string(DataEdge))
	}
}

func decodeNode(record map[string]string, graphID string) (Payload, error) {
	if err := checkKeys(record, nodeKeys); err != nil {
		return Payload{}, err
	}

	node := NodeData{
		GraphID: graphID,
		Name:    record["nodename"],
		Type:    graph.NodeType(record["nodetype"]),
		Group:   record["group"],
	}
	if node.Name == "" {
		return Payload{}, missing("nodename")
	}
	if node.Type == "" {
		return Payload{}, missing("nodetype")
	}
	if !graph.ValidNodeType(node.Type) {
		return Payload{}, errors.New(errors.ErrCodeUnknownEnum,
			"unknown \"nodetype\" attribute %q specified, expecting one of %q",
			string(node.Type), nodeTypeChoices())
	}

	return Payload{Command: CommandData, Node: &node}, nil
}

func decodeEdge(record map[string]string, graphID string) (Payload, error) {
	if err := checkKeys(record, edgeKeys); err != nil {
		return Payload{}, err
	}

	edge := EdgeData{
		GraphID:  graphID,
		FromName: record["fromnodename"],
		ToName:   record["tonodename"],
		Type:     graph.EdgeType(record["edgetype"]),
		Label:    record["label"],
	}
	if edge.FromName == "" {
		return Payload{}, missing("fromnodename")
	}
	if edge.ToName == "" {
		return Payload{}, missing("tonodename")
	}
	if edge.Type == "" {
		edge.Type = graph.EdgeTypeDefault
	} else if !graph.ValidEdgeType(edge.Type) {
		return Payload{}, errors.New(errors.ErrCodeUnknownEnum,
			"unknown \"edgetype\" attribute %q specified, expecting %q or %q",
			string(edge.Type), string(graph.EdgeNormal), string(graph.EdgeTransition))
	}

	return Payload{Command: CommandData, Edge: &edge}, nil
}

// checkKeys rejects attributes outside the variant's schema.
func checkKeys(record map[string]string, allowed map[string]bool) error {
	for k := range record {
		if !allowed[k] {
			return errors.New(errors.ErrCodeMalformedPayload, "unknown attribute %q", k)
		}
	}
	return nil
}

func missing(attr string) error {
	return errors.New(errors.ErrCodeMissingAttribute,
		"required attribute %q not found or is empty", attr)
}

func nodeTypeChoices() string {
	parts := make([]string, len(graph.NodeTypes))
	for i, t := range graph.NodeTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, "|")
}
