package advisor

import (
	"errors"
	"fmt"

	"oak/internal/kb"
)

// Priority is the user-selected optimization objective.
type Priority string

const (
	PriorityLatency Priority = "latency"
	PriorityEnergy  Priority = "energy"
	PrioritySize    Priority = "size"
)

// ErrInvalidPriority marks an unrecognized priority value. This is a caller
// input-validation error, fatal to the advisory call.
var ErrInvalidPriority = errors.New("invalid priority")

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLatency, PriorityEnergy, PrioritySize:
		return Priority(s), nil
	}
	return "", fmt.Errorf("%w: %q (choose one of latency, energy, size)", ErrInvalidPriority, s)
}

// Strategy is the closed enumeration of optimization strategies. Strategy
// identity is never derived from display names.
type Strategy string

const (
	StrategyBaseline Strategy = "baseline_fp32"
	StrategyINT8     Strategy = "int8_quantization"
	StrategyFP16     Strategy = "fp16_quantization"
)

// Calibration holds the multiplicative RAM cost factors. They are heuristic
// constants without a derivation; treat them as tunable, not as truths.
type Calibration struct {
	BaselineRAMFactor float64
	INT8RAMFactor     float64
	FP16RAMFactor     float64
}

func DefaultCalibration() Calibration {
	return Calibration{
		BaselineRAMFactor: 2.0,
		INT8RAMFactor:     2.5,
		FP16RAMFactor:     1.8,
	}
}

// adjustment is one row of a strategy's priority-adjustment table. When
// requires is non-empty the delta only applies if at least one of the named
// strategies produced a feasible candidate.
type adjustment struct {
	delta    float64
	requires []Strategy
}

// strategyDef is one variant of the strategy enumeration: its applicability
// predicate, cost formula, base scores, capability bonus, and adjustment
// table, all as data. Adding a strategy means adding one definition here.
type strategyDef struct {
	kind        Strategy
	displayName string
	description string

	applicable func(hw *kb.HardwareProfile) bool
	// cost returns the estimated ROM and RAM footprint in KB for a model of
	// the given file size.
	cost func(sizeKB float64, cal Calibration) (romKB, ramKB float64)

	baseFeasible   float64
	baseInfeasible float64

	// bonus returns a capability-dependent score delta and a sentence for
	// the summary. Only consulted for feasible candidates.
	bonus func(hw *kb.HardwareProfile) (float64, string)

	adjustments map[Priority]adjustment
}

func anyFrameworkSupported(hw *kb.HardwareProfile) bool {
	return hw.SupportsAnyFramework()
}

// strategyTable defines the candidate generation order: baseline first,
// unconditionally, then the quantization strategies.
var strategyTable = []strategyDef{
	{
		kind:        StrategyBaseline,
		displayName: "Baseline (FP32)",
		description: "Run the model as is (float32).",
		applicable:  func(*kb.HardwareProfile) bool { return true },
		cost: func(sizeKB float64, cal Calibration) (float64, float64) {
			rom := sizeKB
			return rom, rom * cal.BaselineRAMFactor
		},
		baseFeasible:   0.5,
		baseInfeasible: 0.1,
		adjustments: map[Priority]adjustment{
			PriorityLatency: {delta: -0.05, requires: []Strategy{StrategyINT8}},
			PriorityEnergy:  {delta: -0.05, requires: []Strategy{StrategyINT8}},
			PrioritySize:    {delta: -0.10, requires: []Strategy{StrategyINT8, StrategyFP16}},
		},
	},
	{
		kind:        StrategyINT8,
		displayName: "TFLite/ONNX-RT Full INT8 Quantization",
		description: "Quantize the model to INT8. Reduces size and can speed up inference on compatible hardware.",
		applicable:  anyFrameworkSupported,
		cost: func(sizeKB float64, cal Calibration) (float64, float64) {
			rom := sizeKB / 4
			return rom, rom * cal.INT8RAMFactor
		},
		baseFeasible:   0.8,
		baseInfeasible: 0.2,
		bonus: func(hw *kb.HardwareProfile) (float64, string) {
			if hw.HasAccelerator(kb.AcceleratorVector) {
				return 0.15, "The hardware has vector instructions, which should significantly accelerate INT8 performance."
			}
			if hw.SupportsFramework(kb.FrameworkONNXRuntime) {
				return 0.10, "ONNX Runtime support should give solid INT8 kernel coverage."
			}
			return 0, ""
		},
		adjustments: map[Priority]adjustment{
			PriorityLatency: {delta: 0.10},
			PriorityEnergy:  {delta: 0.15},
			PrioritySize:    {delta: 0.15},
		},
	},
	{
		kind:        StrategyFP16,
		displayName: "FP16 Quantization",
		description: "Quantize the model to FP16 (half-precision). Reduces model size (~50% vs FP32) with potentially less accuracy loss than INT8.",
		applicable:  anyFrameworkSupported,
		cost: func(sizeKB float64, cal Calibration) (float64, float64) {
			rom := sizeKB / 2
			return rom, rom * cal.FP16RAMFactor
		},
		baseFeasible:   0.65,
		baseInfeasible: 0.15,
		bonus: func(hw *kb.HardwareProfile) (float64, string) {
			if hw.HasGPU() {
				return 0.15, "The present GPU should offer good performance with FP16."
			}
			return 0, ""
		},
		adjustments: map[Priority]adjustment{
			PriorityLatency: {delta: 0.05},
			PriorityEnergy:  {delta: 0.05},
			PrioritySize:    {delta: 0.10},
		},
	},
}
