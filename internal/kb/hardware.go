package kb

import (
	"fmt"
	"strings"
)

// Framework enumerates the inference runtimes a device can be targeted with.
type Framework string

const (
	FrameworkTFLiteMicro Framework = "tflite_micro"
	FrameworkONNXRuntime Framework = "onnx_runtime"
)

func (f Framework) Valid() bool {
	return f == FrameworkTFLiteMicro || f == FrameworkONNXRuntime
}

// AcceleratorVector is the capability tag for SIMD/vector instruction
// support (e.g. ARM Neon, RISC-V V).
const AcceleratorVector = "vector_instructions"

// gpuTagPrefix qualifies accelerator tags that describe a GPU class
// (e.g. "gpu_maxwell_128_cuda").
const gpuTagPrefix = "gpu_"

// HardwareProfile describes a target device's capabilities. Profiles are
// loaded from descriptor files and treated as read-only afterwards.
type HardwareProfile struct {
	SchemaVersion       string      `json:"schema_version"`
	Identifier          string      `json:"identifier"`
	Vendor              string      `json:"vendor"`
	Arch                string      `json:"arch"`
	CPUFreqMHz          []int       `json:"cpu_freq_mhz"`
	RAMTotalKB          int64       `json:"ram_total_kb"`
	Accelerators        []string    `json:"accelerators"`
	SupportedFrameworks []Framework `json:"supported_frameworks"`
}

func (p *HardwareProfile) Validate() error {
	if strings.TrimSpace(p.Identifier) == "" {
		return fmt.Errorf("hardware profile has no identifier")
	}
	if p.RAMTotalKB <= 0 {
		return fmt.Errorf("hardware profile %q: ram_total_kb must be positive, got %d", p.Identifier, p.RAMTotalKB)
	}
	if len(p.SupportedFrameworks) == 0 {
		return fmt.Errorf("hardware profile %q: at least one supported framework is required", p.Identifier)
	}
	for _, f := range p.SupportedFrameworks {
		if !f.Valid() {
			return fmt.Errorf("hardware profile %q: unsupported framework %q", p.Identifier, f)
		}
	}
	return nil
}

func (p *HardwareProfile) SupportsFramework(f Framework) bool {
	for _, sf := range p.SupportedFrameworks {
		if sf == f {
			return true
		}
	}
	return false
}

// SupportsAnyFramework reports whether the device supports at least one
// recognized inference runtime.
func (p *HardwareProfile) SupportsAnyFramework() bool {
	for _, f := range p.SupportedFrameworks {
		if f.Valid() {
			return true
		}
	}
	return false
}

func (p *HardwareProfile) HasAccelerator(tag string) bool {
	for _, a := range p.Accelerators {
		if a == tag {
			return true
		}
	}
	return false
}

// HasGPU reports whether any accelerator tag describes a GPU class.
func (p *HardwareProfile) HasGPU() bool {
	for _, a := range p.Accelerators {
		if strings.HasPrefix(a, gpuTagPrefix) {
			return true
		}
	}
	return false
}
