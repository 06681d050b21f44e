package analysis

import "oak/internal/modelgraph"

// TensorDescriptor captures the boundary metadata of one graph input or
// output. A shape entry of -1 marks a dynamic dimension.
type TensorDescriptor struct {
	Name  string           `json:"name"`
	Shape []int64          `json:"shape"`
	DType modelgraph.DType `json:"dtype"`
}

// ModelProfile is the feature vector extracted from a model: the contract
// between the analyzer and the decision engine. It is created once per
// analysis run and never mutated afterwards.
type ModelProfile struct {
	ModelSHA256  string             `json:"model_sha256"`
	FileSizeKB   float64            `json:"file_size_kb"`
	TotalMACs    int64              `json:"total_macs"`
	TotalOps     int                `json:"total_ops"`
	OpTypeCounts map[string]int     `json:"op_type_counts"`
	GraphInputs  []TensorDescriptor `json:"graph_inputs"`
	GraphOutputs []TensorDescriptor `json:"graph_outputs"`
}
