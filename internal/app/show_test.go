package app_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/internal/app"
	"go.trai.ch/fpdgen/internal/core/domain"
)

func TestApp_Show_Table(t *testing.T) {
	f := newFixture(t)
	f.expectLoads(workspace())

	require.NoError(t, f.app.Show(context.Background(), platformFile, app.ShowOptions{}))

	out := f.stdout.String()
	for _, want := range []string{
		"MODULE", "ARCH", "GUID", "VERSION", "ARCHES", "FVS", "OUTPUT",
		"PeiMain", "IA32/52C05B14-0B98-496c-BC3B-04B50211D680-PeiMain.PEI", "MAIN",
		"PcdPeim", "IA32/9B3ADA4F-AE56-4C24-8DEA-F03B7558AE50-PcdPeim.PEI", domain.NullFV,
	} {
		assert.Contains(t, out, want)
	}

	ok, err := afero.DirExists(f.fsys, workDir)
	require.NoError(t, err)
	assert.False(t, ok, "show writes nothing")
}

func TestApp_Show_JSON(t *testing.T) {
	f := newFixture(t)
	f.expectLoads(workspace())

	require.NoError(t, f.app.Show(context.Background(), platformFile, app.ShowOptions{JSON: true}))

	assert.JSONEq(t, `[
		{
			"Module": "PeiMain",
			"Arch": "IA32",
			"GUID": "52C05B14-0B98-496c-BC3B-04B50211D680",
			"Version": "1.0",
			"Arches": "IA32",
			"FVs": "MAIN",
			"Output": "IA32/52C05B14-0B98-496c-BC3B-04B50211D680-PeiMain.PEI"
		},
		{
			"Module": "PcdPeim",
			"Arch": "IA32",
			"GUID": "9B3ADA4F-AE56-4C24-8DEA-F03B7558AE50",
			"Version": "1.0",
			"Arches": "IA32",
			"FVs": "NULL",
			"Output": "IA32/9B3ADA4F-AE56-4C24-8DEA-F03B7558AE50-PcdPeim.PEI"
		}
	]`, f.stdout.String())
}

func TestApp_Show_PlatformError(t *testing.T) {
	f := newFixture(t)
	ws := workspace()
	f.workspaces.EXPECT().Load(workDir).Return(ws, nil)
	f.platforms.EXPECT().Load(platformPath, ws).Return(nil, domain.ErrSchemaInvalid)

	err := f.app.Show(context.Background(), platformFile, app.ShowOptions{})
	assert.ErrorContains(t, err, domain.ErrSchemaInvalid.Error())
	assert.Empty(t, f.stdout.String())
}

func TestApp_Show_ArchesPerModule(t *testing.T) {
	f := newFixture(t)
	ws := workspace()
	platform := nt32()
	platform.Definitions.Archs = []string{"IA32", "X64"}
	x64 := association("PeiMain", "52C05B14-0B98-496c-BC3B-04B50211D680", "PEI_CORE", "MAIN")
	x64.ID.Arch = "X64"
	platform.Modules = append(platform.Modules, x64)
	f.workspaces.EXPECT().Load(workDir).Return(ws, nil)
	f.platforms.EXPECT().Load(platformPath, ws).Return(platform, nil)

	require.NoError(t, f.app.Show(context.Background(), platformFile, app.ShowOptions{JSON: true}))

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &rows))
	require.Len(t, rows, 3)
	for _, row := range rows {
		if row["Module"] == "PeiMain" {
			assert.Equal(t, "IA32,X64", row["Arches"], row["Arch"])
		} else {
			assert.Equal(t, "IA32", row["Arches"])
		}
	}
}
