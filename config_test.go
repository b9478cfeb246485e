package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "treeforth.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[interp]
heap-base = 2000
heap-limit = 16
max-depth = 100
timeout = "1.5s"
trace = true

[image]
load = "in.img"
save = "out.img"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Interp: InterpConfig{
			HeapBase:  2000,
			HeapLimit: 16,
			MaxDepth:  100,
			Timeout:   duration{1500 * time.Millisecond},
			Trace:     true,
		},
		Image: ImageConfig{
			Load: "in.img",
			Save: "out.img",
		},
	}, cfg)
}

func TestLoadConfig_defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[interp]\ndump = true\n"))
	require.NoError(t, err)
	assert.Equal(t, uint(defaultHeapBase), cfg.Interp.HeapBase)
	assert.True(t, cfg.Interp.Dump)
	assert.Equal(t, time.Duration(0), cfg.Interp.Timeout.Duration)
}

func TestLoadConfig_errors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{"unknown key", "[interp]\nheap-bsae = 1\n"},
		{"unknown section", "[nope]\nx = 1\n"},
		{"bad duration", "[interp]\ntimeout = \"soon\"\n"},
		{"bad type", "[interp]\nmax-depth = \"deep\"\n"},
		{"bad syntax", "[interp\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConfig_Options(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Interp.HeapBase = 500
	cfg.Interp.HeapLimit = 1
	cfg.Interp.MaxDepth = 3

	vmTestCases{
		vmTest("configured").
			withOptions(cfg.Options()...).
			withInput("VARIABLE A 1 A !").
			expectVariable("A", 500, Int(1)),

		vmTest("configured heap limit").
			withOptions(cfg.Options()...).
			withInput("VARIABLE A VARIABLE B").
			expectErrorMessage("memory limit exceeded by stor @501"),

		vmTest("configured max depth").
			withOptions(cfg.Options()...).
			withInput(": R R ;\nR").
			expectOutput("ok\nerror: return stack overflow\n"),
	}.run(t)
}
