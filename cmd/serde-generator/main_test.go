package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"serde-generator/internal/config"
)

// repoRoot is the module root relative to this package.
var repoRoot = filepath.Join("..", "..")

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)

	return code, out.String(), errOut.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "serde-generator version "+version+"\n", out)
}

func TestRun_Usage(t *testing.T) {
	code, _, errOut := runCLI()
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Usage: serde-generator")

	code, out, _ := runCLI("help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "gen ")
	assert.Contains(t, out, "check ")

	code, _, errOut = runCLI("frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Unknown command: frobnicate")
}

func TestRun_BadFlag(t *testing.T) {
	code, _, errOut := runCLI("gen", "-no-such-flag")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "no-such-flag")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	code, out, _ := runCLI("init", "-config", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, path)

	f, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultOutputSuffix, f.Generation.OutputSuffix)
	assert.Equal(t, []string{"./..."}, f.Packages)

	code, _, errOut := runCLI("init", "-config", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "already exists")

	code, _, _ = runCLI("init", "-config", path, "-force")
	assert.Equal(t, 0, code)
}

func TestGen_DryRun(t *testing.T) {
	code, out, errOut := runCLI("gen", "-dry-run", "-C", repoRoot, "./examples/basic")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "basic_serde.go")
	assert.Contains(t, out, "// Code generated by serde-generator. DO NOT EDIT.")
	assert.Contains(t, out, "func (v *Order) SerializeSerde(s serde.Serializer) error {")
	assert.Contains(t, out, "type GeoAddressWrap struct{}")
	assert.Contains(t, out, `case "status-shipped":`)
	assert.Contains(t, out, "return serde.UnknownMember(info)")
	assert.NotContains(t, out, "Audit")
}

func TestGen_DryRunSuffix(t *testing.T) {
	code, out, errOut := runCLI("gen", "-dry-run", "-suffix", "_codec", "-C", repoRoot, "./examples/basic")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "basic_codec.go")
}

func TestPlan_YAML(t *testing.T) {
	code, out, errOut := runCLI("plan", "-C", repoRoot, "./examples/basic")
	require.Equal(t, 0, code, errOut)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, out, "serde-generator/examples/basic")
	assert.Contains(t, out, "GeoUnitWrap")
}

func TestPlan_Spew(t *testing.T) {
	code, out, errOut := runCLI("plan", "-format", "spew", "-C", repoRoot, "./examples/basic")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "serde-generator/examples/basic")

	code, _, errOut = runCLI("plan", "-format", "xml", "-C", repoRoot, "./examples/basic")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown format "xml"`)
}

func TestCheck_UnknownConfigType(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.FileName)
	cfg := []byte(`version: "1"
packages:
  - ./examples/basic
types:
  - type: basic.Ordr
`)
	require.NoError(t, os.WriteFile(cfgPath, cfg, 0o600))

	code, _, errOut := runCLI("check", "-C", repoRoot, "-config", cfgPath)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown_type")
	assert.Contains(t, errOut, "basic.Order")
}

func TestGen_LoadError(t *testing.T) {
	code, _, errOut := runCLI("gen", "-C", repoRoot, "./no/such/package")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Generation failed")
}

func TestGen_RegeneratesAfterFieldRemoved(t *testing.T) {
	// The package must live inside the module to import the runtime.
	dir, err := os.MkdirTemp(".", "regen")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	pkg := "./" + filepath.Base(dir)
	write := func(fields string) {
		src := "package regen\n\n//serde:generate\ntype Item struct {\n" + fields + "}\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "item.go"), []byte(src), 0o600))
	}

	write("\tA int\n\tB string\n")

	code, _, errOut := runCLI("gen", pkg)
	require.Equal(t, 0, code, errOut)

	generated := filepath.Join(dir, "regen_serde.go")
	out, err := os.ReadFile(generated)
	require.NoError(t, err)
	assert.Contains(t, string(out), "v.B")

	write("\tA int\n")

	code, _, errOut = runCLI("gen", pkg)
	require.Equal(t, 0, code, errOut)

	out, err = os.ReadFile(generated)
	require.NoError(t, err)
	assert.Contains(t, string(out), "v.A")
	assert.NotContains(t, string(out), "v.B")

	code, out2, errOut := runCLI("check", pkg)
	assert.Equal(t, 0, code, errOut)
	assert.Equal(t, "ok\n", out2)
}

func TestCheck_ExamplesUpToDate(t *testing.T) {
	code, out, errOut := runCLI("check", "-C", repoRoot, "./examples/basic")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "ok\n", out)
}
