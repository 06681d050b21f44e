package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"

	"oak/internal/diag"
	"oak/internal/modelgraph"
	"oak/internal/trace"
)

// ErrAnalysis marks a fatal model-analysis failure (missing or structurally
// invalid model file). Estimation failures never carry this error; they
// degrade into diagnostics instead.
var ErrAnalysis = errors.New("model analysis failed")

// Analyzer turns a model file into a ModelProfile. It is stateless and safe
// for concurrent use across independent analyses.
type Analyzer struct {
	runner trace.Runner
}

func NewAnalyzer(runner trace.Runner) *Analyzer {
	return &Analyzer{runner: runner}
}

// AnalyzeModel identifies the model, walks its graph structure, and runs a
// single profiled execution to estimate MACs. Structural failures are fatal;
// trace acquisition or per-node estimation failures degrade the MAC count
// and are reported through the returned diagnostics.
func (a *Analyzer) AnalyzeModel(ctx context.Context, path string) (*ModelProfile, []diag.Diagnostic, error) {
	var dc diag.Collector

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrAnalysis, err)
	}

	sha, err := HashFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrAnalysis, err)
	}

	g, err := modelgraph.LoadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrAnalysis, err)
	}

	opCounts, totalOps, inputs, outputs := ComputeGraphStatistics(g)

	var totalMACs int64
	if a.runner == nil {
		dc.Warnf("trace_unavailable", "trace", "no trace runner configured; MACs reported as 0")
	} else if events, err := a.runner.Run(ctx, path); err != nil {
		dc.Warnf("trace_unavailable", "trace",
			fmt.Sprintf("failed to capture execution trace: %v; MACs reported as 0", err))
	} else {
		var skipped int
		totalMACs, skipped = EstimateMACs(events)
		if skipped > 0 {
			dc.Add("mac_nodes_skipped", "trace", diag.SeverityInfo,
				fmt.Sprintf("%d node(s) had unexpected shape data and contribute 0 MACs", skipped))
		}
	}

	profile := &ModelProfile{
		ModelSHA256:  sha,
		FileSizeKB:   float64(info.Size()) / 1024,
		TotalMACs:    totalMACs,
		TotalOps:     totalOps,
		OpTypeCounts: opCounts,
		GraphInputs:  inputs,
		GraphOutputs: outputs,
	}
	return profile, dc.All(), nil
}

// ComputeGraphStatistics walks the node list once and derives the operator
// histogram plus boundary tensor descriptors.
func ComputeGraphStatistics(g *modelgraph.Graph) (map[string]int, int, []TensorDescriptor, []TensorDescriptor) {
	opCounts := make(map[string]int)
	for _, n := range g.Nodes {
		opCounts[n.OpType]++
	}
	return opCounts, len(g.Nodes), describeValues(g.Inputs), describeValues(g.Outputs)
}

func describeValues(values []modelgraph.ValueInfo) []TensorDescriptor {
	descs := make([]TensorDescriptor, 0, len(values))
	for _, v := range values {
		shape := make([]int64, len(v.Shape))
		copy(shape, v.Shape)
		descs = append(descs, TensorDescriptor{
			Name:  v.Name,
			Shape: shape,
			DType: v.DType,
		})
	}
	return descs
}
