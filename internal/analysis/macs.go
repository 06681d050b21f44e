package analysis

import "oak/internal/trace"

// Operator types with a MAC cost model. Anything else contributes 0.
const (
	opConv = "Conv"
	opGemm = "Gemm"
)

// EstimateMACs sums per-node multiply-accumulate estimates over a captured
// execution trace. Nodes whose shape payload is missing, malformed, or of
// unexpected rank contribute 0 and are counted in skipped; a single bad node
// never aborts the estimate.
func EstimateMACs(events []trace.Event) (total int64, skipped int) {
	for _, e := range events {
		if !e.IsNode() {
			continue
		}
		var macs int64
		var ok bool
		switch e.Args.OpName {
		case opConv:
			macs, ok = convMACs(e.Args)
		case opGemm:
			macs, ok = gemmMACs(e.Args)
		default:
			continue // not modeled
		}
		if !ok {
			skipped++
			continue
		}
		total += macs
	}
	return total, skipped
}

// convMACs computes C_in * K_h * K_w * C_out * H_out * W_out.
// Weight layout is [C_out, C_in/groups, K_h, K_w] and output layout is
// [N, C_out, H_out, W_out]; C_in is read from the primary input tensor.
// Grouped convolutions are approximated as ungrouped.
func convMACs(args *trace.EventArgs) (int64, bool) {
	if len(args.InputTypeShape) < 2 || len(args.OutputTypeShape) < 1 {
		return 0, false
	}
	input, ok := args.InputTypeShape[0].Dims()
	if !ok || len(input) < 2 {
		return 0, false
	}
	weight, ok := args.InputTypeShape[1].Dims()
	if !ok || len(weight) != 4 {
		return 0, false
	}
	output, ok := args.OutputTypeShape[0].Dims()
	if !ok || len(output) != 4 {
		return 0, false
	}

	cIn := input[1]
	cOut, kH, kW := weight[0], weight[2], weight[3]
	hOut, wOut := output[2], output[3]
	if cIn <= 0 || cOut <= 0 || kH <= 0 || kW <= 0 || hOut <= 0 || wOut <= 0 {
		return 0, false
	}
	return cIn * kH * kW * cOut * hOut * wOut, true
}

// gemmMACs computes N * K * M for an activation of shape (N, K) and a weight
// tensor stored transposed as (M, K).
func gemmMACs(args *trace.EventArgs) (int64, bool) {
	if len(args.InputTypeShape) < 2 {
		return 0, false
	}
	input, ok := args.InputTypeShape[0].Dims()
	if !ok || len(input) != 2 {
		return 0, false
	}
	weight, ok := args.InputTypeShape[1].Dims()
	if !ok || len(weight) < 1 {
		return 0, false
	}

	n, k := input[0], input[1]
	m := weight[0]
	if n <= 0 || k <= 0 || m <= 0 {
		return 0, false
	}
	return n * k * m, true
}
