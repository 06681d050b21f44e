package hostinfo

import (
	"fmt"
	"os"
	"runtime"

	"github.com/klauspost/cpuid"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"oak/internal/kb"
)

// Detect probes the local machine and returns a HardwareProfile skeleton.
// It is a convenience for authoring new knowledge-base descriptors: the
// detected values still need review (accelerator tags and supported
// frameworks in particular) before the profile is committed.
func Detect() (*kb.HardwareProfile, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to read memory info: %w", err)
	}

	profile := &kb.HardwareProfile{
		SchemaVersion: "1.0",
		Identifier:    identifier(),
		Arch:          runtime.GOARCH,
		RAMTotalKB:    int64(vm.Total / 1024),
		// Both recognized runtimes run on a development host; trim to the
		// device's reality when deploying this descriptor.
		SupportedFrameworks: []kb.Framework{
			kb.FrameworkTFLiteMicro,
			kb.FrameworkONNXRuntime,
		},
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		profile.Vendor = infos[0].VendorID
		if mhz := int(infos[0].Mhz); mhz > 0 {
			profile.CPUFreqMHz = []int{mhz}
		}
	}

	if hasVectorInstructions() {
		profile.Accelerators = append(profile.Accelerators, kb.AcceleratorVector)
	}

	return profile, nil
}

func identifier() string {
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return "local-host"
}

func hasVectorInstructions() bool {
	return cpuid.CPU.AVX2() || cpuid.CPU.AVX512F()
}
