package brigadier

import "fmt"

// DeserializationError is raised by JsonLoader when a JSON payload does
// not match the node schema documented in spec §6 (wrong field types,
// missing "type" discriminant, and so on).
type DeserializationError struct {
	Path string // dotted path into the payload, e.g. "children.execute.children.run"
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialize brigadier tree at %q: %v", e.Path, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// MalformedTreeError is raised by TreeBuilder for structurally invalid
// trees: an Argument node without a parser, or a Root node appearing
// anywhere but the outermost level.
type MalformedTreeError struct {
	Path   string // dotted path to the offending node
	Reason string
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("malformed brigadier tree at %q: %s", e.Path, e.Reason)
}
