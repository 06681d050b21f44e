package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oak/internal/modelgraph"
	"oak/internal/trace"
)

const tinyModelDoc = `{
  "schema_version": "1.0",
  "graph": {
    "name": "tiny",
    "nodes": [
      {"name": "fc", "op_type": "Gemm", "inputs": ["x", "w"], "outputs": ["h"]},
      {"name": "act", "op_type": "Relu", "inputs": ["h"], "outputs": ["h2"]},
      {"name": "act2", "op_type": "Relu", "inputs": ["h2"], "outputs": ["y"]}
    ],
    "inputs": [{"name": "x", "shape": [1, 128], "dtype": "float32"}],
    "outputs": [{"name": "y", "shape": [1, 64], "dtype": "float32"}]
  }
}`

type stubRunner struct {
	events []trace.Event
	err    error
}

func (s *stubRunner) Run(ctx context.Context, modelPath string) ([]trace.Event, error) {
	return s.events, s.err
}

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyzeModel_ProducesProfile(t *testing.T) {
	path := writeModel(t, tinyModelDoc)
	runner := &stubRunner{
		events: []trace.Event{
			nodeEvent("Gemm",
				[]trace.TensorShape{shape(1, 128), shape(64, 128)},
				[]trace.TensorShape{shape(1, 64)},
			),
		},
	}

	profile, diags, err := NewAnalyzer(runner).AnalyzeModel(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, diags)

	assert.Len(t, profile.ModelSHA256, 64)
	assert.InDelta(t, float64(len(tinyModelDoc))/1024, profile.FileSizeKB, 1e-9)
	assert.Equal(t, int64(8192), profile.TotalMACs)
	assert.Equal(t, 3, profile.TotalOps)
	assert.Equal(t, map[string]int{"Gemm": 1, "Relu": 2}, profile.OpTypeCounts)

	require.Len(t, profile.GraphInputs, 1)
	assert.Equal(t, "x", profile.GraphInputs[0].Name)
	assert.Equal(t, []int64{1, 128}, profile.GraphInputs[0].Shape)
	assert.Equal(t, modelgraph.DTypeFloat32, profile.GraphInputs[0].DType)
	require.Len(t, profile.GraphOutputs, 1)
	assert.Equal(t, "y", profile.GraphOutputs[0].Name)
}

func TestAnalyzeModel_OpCountsSumToTotalOps(t *testing.T) {
	path := writeModel(t, tinyModelDoc)
	profile, _, err := NewAnalyzer(&stubRunner{}).AnalyzeModel(context.Background(), path)
	require.NoError(t, err)

	sum := 0
	for _, n := range profile.OpTypeCounts {
		sum += n
	}
	assert.Equal(t, profile.TotalOps, sum)
}

func TestAnalyzeModel_TraceFailureDegradesToZeroMACs(t *testing.T) {
	path := writeModel(t, tinyModelDoc)
	runner := &stubRunner{err: trace.ErrNoProfiler}

	profile, diags, err := NewAnalyzer(runner).AnalyzeModel(context.Background(), path)
	require.NoError(t, err, "trace failure must not abort the analysis")

	assert.Zero(t, profile.TotalMACs)
	assert.Equal(t, 3, profile.TotalOps)
	require.Len(t, diags, 1)
	assert.Equal(t, "trace_unavailable", diags[0].Code)
}

func TestAnalyzeModel_SkippedNodesReported(t *testing.T) {
	path := writeModel(t, tinyModelDoc)
	runner := &stubRunner{
		events: []trace.Event{
			nodeEvent("Gemm", []trace.TensorShape{shape(1, 128)}, nil), // malformed
		},
	}

	profile, diags, err := NewAnalyzer(runner).AnalyzeModel(context.Background(), path)
	require.NoError(t, err)
	assert.Zero(t, profile.TotalMACs)
	require.Len(t, diags, 1)
	assert.Equal(t, "mac_nodes_skipped", diags[0].Code)
}

func TestAnalyzeModel_MissingFileFatal(t *testing.T) {
	_, _, err := NewAnalyzer(&stubRunner{}).AnalyzeModel(context.Background(), "/nonexistent/model.json")
	assert.ErrorIs(t, err, ErrAnalysis)
}

func TestAnalyzeModel_CorruptGraphFatal(t *testing.T) {
	path := writeModel(t, `{"schema_version": "1.0", "graph"`)
	_, _, err := NewAnalyzer(&stubRunner{}).AnalyzeModel(context.Background(), path)
	assert.ErrorIs(t, err, ErrAnalysis)
	assert.ErrorIs(t, err, modelgraph.ErrInvalidGraph)
}

func TestHashFile_DeterministicAndStreaming(t *testing.T) {
	path := writeModel(t, tinyModelDoc)

	first, err := HashFile(path)
	require.NoError(t, err)
	again, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Len(t, first, 64)

	other := writeModel(t, tinyModelDoc+" ")
	different, err := HashFile(other)
	require.NoError(t, err)
	assert.NotEqual(t, first, different)
}
