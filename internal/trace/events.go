package trace

import (
	"encoding/json"
	"fmt"
	"os"
)

// CategoryNode marks events that describe a single executed graph node.
const CategoryNode = "Node"

// TensorShape is the trace encoding of one tensor's concrete shape, keyed by
// the runtime's element-type label (e.g. {"float": [1, 3, 224, 224]}).
type TensorShape map[string][]int64

// Dims returns the concrete dimensions of the tensor. The runtime keys the
// shape by element type; a well-formed entry carries exactly one key.
func (s TensorShape) Dims() ([]int64, bool) {
	if dims, ok := s["float"]; ok {
		return dims, true
	}
	if len(s) == 1 {
		for _, dims := range s {
			return dims, true
		}
	}
	return nil, false
}

// EventArgs carries the per-node payload of a profile event. Shapes are the
// post-shape-inference concrete shapes observed during execution.
type EventArgs struct {
	OpName          string        `json:"op_name"`
	InputTypeShape  []TensorShape `json:"input_type_shape"`
	OutputTypeShape []TensorShape `json:"output_type_shape"`
}

// Event is one entry of the runtime's JSON profile output.
type Event struct {
	Category string     `json:"cat"`
	Name     string     `json:"name,omitempty"`
	Args     *EventArgs `json:"args,omitempty"`
}

// IsNode reports whether the event describes an executed graph node with an
// argument payload.
func (e Event) IsNode() bool {
	return e.Category == CategoryNode && e.Args != nil
}

// ParseFile decodes a profile trace file into its event sequence.
func ParseFile(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace file %s: %w", path, err)
	}
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode trace file %s: %w", path, err)
	}
	return events, nil
}
