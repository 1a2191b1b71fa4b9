package brigadier

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// payloadSchemaJSON is a loose structural shape for the root JSON payload:
// it checks that "type" is present and that "children" (when present) is
// an object. This is deliberately looser than a full Brigadier grammar
// validation -- spec §1 excludes validating parser names against a
// schema -- it only catches payloads that are not node-shaped JSON at
// all before TreeBuilder spends effort walking them.
const payloadSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {"type": "string", "enum": ["root", "argument", "literal"]},
    "children": {"type": "object"},
    "executable": {"type": "boolean"},
    "parser": {"type": "string"},
    "redirect": {"type": "array", "items": {"type": "string"}}
  }
}`

// Validator performs a best-effort structural check of a raw payload
// before TreeBuilder runs. It never second-guesses TreeBuilder's own
// errors; a payload that passes Validate can still fail Build with a
// MalformedTreeError (e.g. an argument missing its parser).
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the payload schema once for reuse across calls.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	// Security: payloads are fetched from a pinned upstream mirror, but
	// the schema itself should never chase remote $refs.
	compiler.LoadURL = func(url string) (io.ReadCloser, error) {
		return nil, fmt.Errorf("remote $ref not allowed: %s", url)
	}
	const resourceURL = "schema://brigadier-node.json"
	if err := compiler.AddResource(resourceURL, strings.NewReader(payloadSchemaJSON)); err != nil {
		return nil, err
	}
	schema, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: schema}, nil
}

// Validate checks that data is shaped like a brigadier node at the top
// level (it does not recurse into "children" -- TreeBuilder's own walk
// covers that, and re-validating every nested node against the same
// loose schema buys nothing beyond what Build already reports).
func (v *Validator) Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &DeserializationError{Path: "$", Err: err}
	}
	if err := v.schema.Validate(doc); err != nil {
		return &DeserializationError{Path: "$", Err: err}
	}
	return nil
}
