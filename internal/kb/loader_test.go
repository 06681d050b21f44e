package kb

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const esp32Profile = `{
  "schema_version": "1.0",
  "identifier": "esp32-s3",
  "vendor": "Espressif",
  "arch": "Xtensa LX7",
  "cpu_freq_mhz": [160, 240],
  "ram_total_kb": 512,
  "accelerators": ["vector_instructions", "fpu"],
  "supported_frameworks": ["tflite_micro"]
}`

const jetsonProfile = `{
  "schema_version": "1.0",
  "identifier": "jetson-nano",
  "vendor": "NVIDIA",
  "arch": "ARM Cortex-A57",
  "cpu_freq_mhz": [1430],
  "ram_total_kb": 4194304,
  "accelerators": ["gpu_maxwell_128_cuda"],
  "supported_frameworks": ["onnx_runtime", "tflite_micro"]
}`

func setupFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("data/hardware", 0755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, "data/hardware/"+name, []byte(content), 0644))
	}
	return fsys
}

func TestLoad_ReadsAllProfiles(t *testing.T) {
	fsys := setupFs(t, map[string]string{
		"esp32-s3.json":    esp32Profile,
		"jetson-nano.json": jetsonProfile,
	})

	base, diags, err := Load(fsys, "data")
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, []string{"esp32-s3", "jetson-nano"}, base.List())

	hw, err := base.Get("esp32-s3")
	require.NoError(t, err)
	assert.Equal(t, "Espressif", hw.Vendor)
	assert.Equal(t, int64(512), hw.RAMTotalKB)
	assert.True(t, hw.HasAccelerator(AcceleratorVector))
	assert.False(t, hw.HasGPU())
	assert.True(t, hw.SupportsFramework(FrameworkTFLiteMicro))
	assert.False(t, hw.SupportsFramework(FrameworkONNXRuntime))

	jetson, err := base.Get("jetson-nano")
	require.NoError(t, err)
	assert.True(t, jetson.HasGPU())
}

func TestLoad_SkipsMalformedFilesWithDiagnostic(t *testing.T) {
	fsys := setupFs(t, map[string]string{
		"esp32-s3.json": esp32Profile,
		"broken.json":   `{"identifier": "broken"`,
	})

	base, diags, err := Load(fsys, "data")
	require.NoError(t, err, "a malformed file must not abort the load")
	assert.Equal(t, []string{"esp32-s3"}, base.List())

	require.Len(t, diags, 1)
	assert.Equal(t, "profile_malformed", diags[0].Code)
	assert.Contains(t, diags[0].Message, "broken.json")
}

func TestLoad_SkipsInvalidProfilesWithDiagnostic(t *testing.T) {
	fsys := setupFs(t, map[string]string{
		"no-ram.json": `{"schema_version": "1.0", "identifier": "no-ram", "ram_total_kb": 0, "supported_frameworks": ["tflite_micro"]}`,
		"bad-fw.json": `{"schema_version": "1.0", "identifier": "bad-fw", "ram_total_kb": 512, "supported_frameworks": ["tensorrt"]}`,
		"no-fw.json":  `{"schema_version": "1.0", "identifier": "no-fw", "ram_total_kb": 512, "supported_frameworks": []}`,
	})

	base, diags, err := Load(fsys, "data")
	require.NoError(t, err)
	assert.Empty(t, base.List())
	assert.Len(t, diags, 3)
	for _, d := range diags {
		assert.Equal(t, "profile_invalid", d.Code)
	}
}

func TestLoad_DuplicateIdentifierFatal(t *testing.T) {
	fsys := setupFs(t, map[string]string{
		"esp32-s3.json": esp32Profile,
		"copy.json":     esp32Profile,
	})

	_, _, err := Load(fsys, "data")
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)
}

func TestLoad_MissingRootFatal(t *testing.T) {
	_, _, err := Load(afero.NewMemMapFs(), "nope")
	assert.Error(t, err)
}

func TestLoad_MissingHardwareDirIsEmptyKB(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("data", 0755))

	base, diags, err := Load(fsys, "data")
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Empty(t, base.List())
}

func TestGet_NotFound(t *testing.T) {
	fsys := setupFs(t, map[string]string{"esp32-s3.json": esp32Profile})

	base, _, err := Load(fsys, "data")
	require.NoError(t, err)

	_, err = base.Get("rp2040")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHardwareProfile_Validate(t *testing.T) {
	valid := HardwareProfile{
		Identifier:          "dev",
		RAMTotalKB:          1024,
		SupportedFrameworks: []Framework{FrameworkONNXRuntime},
	}
	assert.NoError(t, valid.Validate())

	noID := valid
	noID.Identifier = " "
	assert.Error(t, noID.Validate())

	noRAM := valid
	noRAM.RAMTotalKB = 0
	assert.Error(t, noRAM.Validate())

	badFramework := valid
	badFramework.SupportedFrameworks = []Framework{"coreml"}
	assert.Error(t, badFramework.Validate())
}
