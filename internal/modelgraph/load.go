package modelgraph

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidGraph marks a model file that exists but cannot be interpreted
// as a valid computational graph.
var ErrInvalidGraph = errors.New("invalid model graph")

const supportedSchemaVersion = "1.0"

// LoadFile reads and validates a serialized model graph document.
// A missing file surfaces as an os.ErrNotExist-wrapped error; any structural
// problem is wrapped with ErrInvalidGraph.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("model file not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidGraph, path, err)
	}

	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidGraph, path, err)
	}

	return &doc.Graph, nil
}

func validate(doc *Document) error {
	if doc.SchemaVersion != supportedSchemaVersion {
		return fmt.Errorf("unsupported schema_version %q (want %q)", doc.SchemaVersion, supportedSchemaVersion)
	}
	if len(doc.Graph.Nodes) == 0 {
		return errors.New("graph has no nodes")
	}
	for i, n := range doc.Graph.Nodes {
		if n.OpType == "" {
			return fmt.Errorf("node %d has no op_type", i)
		}
	}
	for _, v := range doc.Graph.Inputs {
		if err := validateValue("input", v); err != nil {
			return err
		}
	}
	for _, v := range doc.Graph.Outputs {
		if err := validateValue("output", v); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(role string, v ValueInfo) error {
	if v.Name == "" {
		return fmt.Errorf("graph %s has no name", role)
	}
	if !v.DType.Valid() {
		return fmt.Errorf("graph %s %q has unknown dtype %q", role, v.Name, v.DType)
	}
	for _, dim := range v.Shape {
		if dim <= 0 && dim != DynamicDim {
			return fmt.Errorf("graph %s %q has invalid dimension %d", role, v.Name, dim)
		}
	}
	return nil
}
