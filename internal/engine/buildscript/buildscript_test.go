package buildscript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/engine/buildscript"
	"go.trai.ch/fpdgen/internal/engine/options"
	"gopkg.in/yaml.v3"
)

func input(t *testing.T) buildscript.Input {
	t.Helper()

	platform := &domain.Platform{
		Header: domain.PlatformHeader{Name: "NT32"},
		FvImages: []domain.FvImage{
			{Type: domain.FvImageValidNames, Names: []string{"FVMAIN", "FVEMPTY"}},
		},
	}

	defaults := domain.NewOptionTable()
	defaults.Put(domain.ToolChainKey{ToolChain: "ELFGCC", ToolCode: "CC", Attribute: "PATH"}, "/usr/bin/gcc")
	defaults.Put(domain.ToolChainKey{ToolChain: "ELFGCC", ToolCode: "CC", Attribute: "FLAGS"}, "-c -Os")

	peiMain := domain.FpdModuleIdentification{
		Module: domain.ModuleIdentification{Name: "PeiMain", GUID: "52C05B14-0B98-496c-BC3B-04B50211D680", Type: "PEI_CORE"},
		Arch:   "IA32",
	}
	moduleRows := []domain.OptionRow{{TagName: "ELFGCC", ToolCode: "CC", Value: "-c -O0"}}

	fvs := domain.NewFVIndex()
	fvs.Assign("FVMAIN", peiMain)

	return buildscript.Input{
		Platform: platform,
		Root:     "/ws",
		BuildDir: "/ws/Build",
		Pairs:    []domain.BuildPair{{Target: "DEBUG", ToolChain: "ELFGCC", Family: "GCC"}},
		Modules: []domain.BoundModule{{
			ID:         peiMain,
			Options:    options.Resolve(nil, moduleRows, options.WithDefaults(defaults)),
			OutputName: "IA32/52C05B14-0B98-496c-BC3B-04B50211D680-PeiMain.PEI",
			Dir:        "MdeModulePkg/Core/Pei",
			Sources:    []string{"PeiMain.c", "Dispatcher.c", "PeiMain.c"},
		}},
		FVs: fvs,
		Tools: []domain.ToolDefinition{
			{Code: "CC", OutputFlag: "-o ", IncludeFlag: "-I", IncludePaths: []string{"${MODULE_DIR}/Include"}},
			{Code: "GENFFS", OutputFlag: "-o", OutputPattern: "${OUTPUT_FILE}", SkipSources: true},
		},
		FvImageTool: []string{"GenFvImage", "-I", "${FV_DIR}/${FV_FILENAME}.inf"},
		Properties:  domain.NewProperties(map[string]string{"BUILD_DIR": "/ws/Build"}),
	}
}

func TestBuild_ModuleTasks(t *testing.T) {
	t.Parallel()

	script, err := buildscript.Build(input(t))
	require.NoError(t, err)

	assert.Equal(t, "NT32", script.Project)
	assert.Equal(t, "/ws", script.Root)

	cc := script.Tasks["DEBUG_ELFGCC.IA32.PeiMain.CC"]
	require.NotNil(t, cc)
	assert.Equal(t, []string{
		"/usr/bin/gcc", "-c", "-O0",
		"-o /ws/Build/DEBUG_ELFGCC/IA32/52C05B14-0B98-496c-BC3B-04B50211D680-PeiMain.PEI",
		"-I/ws/MdeModulePkg/Core/Pei/Include",
		"MdeModulePkg/Core/Pei/PeiMain.c", "MdeModulePkg/Core/Pei/Dispatcher.c",
	}, cc.Cmd)
	assert.Empty(t, cc.DependsOn)
	assert.Equal(t, "MdeModulePkg/Core/Pei", cc.WorkingDir)

	ffs := script.Tasks["DEBUG_ELFGCC.IA32.PeiMain.GENFFS"]
	require.NotNil(t, ffs)
	assert.Equal(t, []string{"GENFFS", "-o/ws/Build/DEBUG_ELFGCC/IA32/52C05B14-0B98-496c-BC3B-04B50211D680-PeiMain.PEI"}, ffs.Cmd)
	assert.Equal(t, []string{"DEBUG_ELFGCC.IA32.PeiMain.CC"}, ffs.DependsOn)
}

func TestBuild_ImageTasks(t *testing.T) {
	t.Parallel()

	script, err := buildscript.Build(input(t))
	require.NoError(t, err)

	main := script.Tasks["DEBUG_ELFGCC.fv.FVMAIN"]
	require.NotNil(t, main)
	assert.Equal(t, []string{"GenFvImage", "-I", "/ws/Build/DEBUG_ELFGCC/FV/FVMAIN.inf"}, main.Cmd)
	assert.Equal(t, []string{"DEBUG_ELFGCC.IA32.PeiMain.GENFFS"}, main.DependsOn)
	assert.Equal(t, []string{"/ws/Build/DEBUG_ELFGCC/FV/FVMAIN.fv"}, main.Target)

	empty := script.Tasks["DEBUG_ELFGCC.fv.FVEMPTY"]
	require.NotNil(t, empty)
	assert.Empty(t, empty.DependsOn)

	all := script.Tasks["DEBUG_ELFGCC"]
	require.NotNil(t, all)
	assert.Equal(t, []string{"DEBUG_ELFGCC.fv.FVMAIN", "DEBUG_ELFGCC.fv.FVEMPTY"}, all.DependsOn)
}

func TestBuild_NoImageTool(t *testing.T) {
	t.Parallel()

	in := input(t)
	in.FvImageTool = nil

	script, err := buildscript.Build(in)
	require.NoError(t, err)
	assert.NotContains(t, script.Tasks, "DEBUG_ELFGCC.fv.FVMAIN")
	assert.Len(t, script.Tasks, 3)
}

func TestGenerate_YAML(t *testing.T) {
	t.Parallel()

	in := input(t)
	data, err := buildscript.Generate(in)
	require.NoError(t, err)

	again, err := buildscript.Generate(in)
	require.NoError(t, err)
	assert.Equal(t, data, again, "output must be deterministic")

	var decoded buildscript.Script
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, buildscript.Version, decoded.Version)
	assert.Len(t, decoded.Tasks, 5)
}

func TestBuild_EmptyToolCommand(t *testing.T) {
	t.Parallel()

	in := input(t)
	in.Tools = []domain.ToolDefinition{{Code: " "}}

	_, err := buildscript.Build(in)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrEmptyCommand.Error())
}
