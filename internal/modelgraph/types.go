package modelgraph

// DType enumerates tensor element types that may appear in a model graph.
type DType string

const (
	DTypeFloat32 DType = "float32"
	DTypeFloat64 DType = "float64"
	DTypeFloat16 DType = "float16"
	DTypeInt8    DType = "int8"
	DTypeInt16   DType = "int16"
	DTypeInt32   DType = "int32"
	DTypeInt64   DType = "int64"
	DTypeUint8   DType = "uint8"
	DTypeBool    DType = "bool"
)

func (d DType) Valid() bool {
	switch d {
	case DTypeFloat32, DTypeFloat64, DTypeFloat16,
		DTypeInt8, DTypeInt16, DTypeInt32, DTypeInt64,
		DTypeUint8, DTypeBool:
		return true
	}
	return false
}

// DynamicDim marks a dimension whose size is unknown until runtime.
const DynamicDim int64 = -1

// ValueInfo describes a named tensor at the graph boundary.
// A shape entry of DynamicDim means the dimension is symbolic.
type ValueInfo struct {
	Name  string  `json:"name"`
	Shape []int64 `json:"shape"`
	DType DType   `json:"dtype"`
}

// Node is a single operator in the computational graph.
type Node struct {
	Name    string   `json:"name,omitempty"`
	OpType  string   `json:"op_type"`
	Inputs  []string `json:"inputs,omitempty"`
	Outputs []string `json:"outputs,omitempty"`
}

// Graph is the loaded computational graph of a model.
type Graph struct {
	Name    string      `json:"name,omitempty"`
	Nodes   []Node      `json:"nodes"`
	Inputs  []ValueInfo `json:"inputs"`
	Outputs []ValueInfo `json:"outputs"`
}

// Document is the on-disk model file: a versioned envelope around the graph.
type Document struct {
	SchemaVersion string `json:"schema_version"`
	Graph         Graph  `json:"graph"`
}
