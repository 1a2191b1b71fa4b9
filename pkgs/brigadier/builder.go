package brigadier

import (
	"encoding/json"
	"fmt"
)

// jsonNode mirrors the wire schema documented in spec §6:
//
//	node := { "type": "root"|"argument"|"literal",
//	          "children"?: { name → node },
//	          "executable"?: bool,
//	          "parser"?: string,
//	          "properties"?: { string → any },
//	          "redirect"?: [ string, ... ] }
//
// At most one of children/redirect is present.
type jsonNode struct {
	Type       string              `json:"type"`
	Children   map[string]jsonNode `json:"children,omitempty"`
	Executable bool                `json:"executable,omitempty"`
	Parser     string              `json:"parser,omitempty"`
	Properties map[string]any      `json:"properties,omitempty"`
	Redirect   []string            `json:"redirect,omitempty"`
}

const (
	jsonTypeRoot     = "root"
	jsonTypeArgument = "argument"
	jsonTypeLiteral  = "literal"
)

// LoadPayload deserializes a raw JSON payload into the intermediate node
// form TreeBuilder consumes. Any structural mismatch (missing "type",
// wrong JSON shape) is reported as a DeserializationError.
func LoadPayload(data []byte) (*jsonNode, error) {
	var root jsonNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &DeserializationError{Path: "$", Err: err}
	}
	if root.Type == "" {
		return nil, &DeserializationError{Path: "$", Err: fmt.Errorf("missing \"type\" field")}
	}
	return &root, nil
}

// Build converts a deserialized Root JSON node into a BrigadierTree.
// Siblings are ordered by name regardless of the input map's iteration
// order, so the result is deterministic.
func Build(root *jsonNode) (*Tree, error) {
	if root.Type != jsonTypeRoot {
		return nil, &MalformedTreeError{Path: "$", Reason: fmt.Sprintf("expected root node, got %q", root.Type)}
	}

	var commands []Node
	for name, child := range root.Children {
		node, err := buildNode(name, &child, name)
		if err != nil {
			return nil, err
		}
		commands = append(commands, node)
	}
	return NewTree(commands...), nil
}

// buildNode recursively converts a single JSON node (already known not
// to be Root) into a Node. path is used only for error messages.
func buildNode(name string, n *jsonNode, path string) (Node, error) {
	children, err := buildChildren(n, path)
	if err != nil {
		return nil, err
	}

	switch n.Type {
	case jsonTypeArgument:
		if n.Parser == "" {
			return nil, &MalformedTreeError{Path: path, Reason: "argument node without a parser"}
		}
		return &Argument{
			NodeName:     name,
			IsExecutable: n.Executable,
			Parser:       n.Parser,
			Properties:   n.Properties,
			NodeChildren: children,
		}, nil
	case jsonTypeLiteral:
		return &Literal{
			NodeName:     name,
			IsExecutable: n.Executable,
			NodeChildren: children,
		}, nil
	case jsonTypeRoot:
		return nil, &MalformedTreeError{Path: path, Reason: "root node encountered below the outermost level"}
	default:
		return nil, &MalformedTreeError{Path: path, Reason: fmt.Sprintf("unknown node type %q", n.Type)}
	}
}

func buildChildren(n *jsonNode, path string) (Children, error) {
	if len(n.Children) > 0 {
		var nodes []Node
		for name, child := range n.Children {
			node, err := buildNode(name, &child, path+"."+name)
			if err != nil {
				return Children{}, err
			}
			nodes = append(nodes, node)
		}
		return NodesChildren(nodes...), nil
	}
	if len(n.Redirect) > 0 {
		return RedirectChildren(n.Redirect), nil
	}
	return NodesChildren(), nil
}
