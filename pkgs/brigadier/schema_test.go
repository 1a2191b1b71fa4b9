package brigadier_test

import (
	"errors"
	"testing"

	"github.com/forgewright/smelter/pkgs/brigadier"
)

func TestValidator_AcceptsWellShapedPayload(t *testing.T) {
	v, err := brigadier.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	err = v.Validate([]byte(`{
		"type": "root",
		"children": {
			"seed": {"type": "literal", "executable": true}
		}
	}`))
	if err != nil {
		t.Errorf("Validate rejected a well-shaped payload: %v", err)
	}
}

func TestValidator_RejectsNonObjectJSON(t *testing.T) {
	v, err := brigadier.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	err = v.Validate([]byte(`["not", "a", "node"]`))
	var deserr *brigadier.DeserializationError
	if !errors.As(err, &deserr) {
		t.Fatalf("expected *DeserializationError, got %T: %v", err, err)
	}
}

func TestValidator_RejectsMissingType(t *testing.T) {
	v, err := brigadier.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	err = v.Validate([]byte(`{"children": {}}`))
	var deserr *brigadier.DeserializationError
	if !errors.As(err, &deserr) {
		t.Fatalf("expected *DeserializationError for a payload missing \"type\", got %T: %v", err, err)
	}
}

func TestValidator_RejectsUnknownType(t *testing.T) {
	v, err := brigadier.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	err = v.Validate([]byte(`{"type": "not-a-real-kind"}`))
	var deserr *brigadier.DeserializationError
	if !errors.As(err, &deserr) {
		t.Fatalf("expected *DeserializationError for an unknown \"type\", got %T: %v", err, err)
	}
}

func TestValidator_RejectsMalformedJSON(t *testing.T) {
	v, err := brigadier.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	err = v.Validate([]byte(`{"type": `))
	var deserr *brigadier.DeserializationError
	if !errors.As(err, &deserr) {
		t.Fatalf("expected *DeserializationError for unparsable JSON, got %T: %v", err, err)
	}
}
