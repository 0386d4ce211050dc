package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/internal/adapters/config"
	"go.trai.ch/fpdgen/internal/core/domain"
)

func TestParseToolsDef(t *testing.T) {
	t.Parallel()

	input := `
# comment
DEFINE VS_BIN = C:\Program Files\VC\bin
DEFINE VS_CL  = DEF(VS_BIN)\cl.exe

*_MYTOOLS_*_*_FAMILY          = MSFT
*_MYTOOLS_IA32_CC_PATH        = DEF(VS_CL)
DEBUG_MYTOOLS_IA32_CC_FLAGS   = /nologo /Zi
RELEASE_MYTOOLS_IA32_CC_FLAGS = /nologo /O1
debug_mytools_x64_cc_flags    =
`
	table, err := config.ParseToolsDef(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())

	get := func(target, arch, attr string) string {
		t.Helper()
		v, ok := table.Get(domain.ToolChainKey{
			Target: target, ToolChain: "MYTOOLS", Arch: arch, ToolCode: "CC", Attribute: attr,
		})
		require.True(t, ok, "%s %s %s", target, arch, attr)
		return v
	}

	assert.Equal(t, `C:\Program Files\VC\bin\cl.exe`, get("DEBUG", "IA32", domain.AttributePath))
	assert.Equal(t, "/nologo /Zi", get("DEBUG", "IA32", domain.AttributeFlags))
	assert.Equal(t, "/nologo /O1", get("RELEASE", "IA32", domain.AttributeFlags))
	assert.Empty(t, get("DEBUG", "X64", domain.AttributeFlags))
	assert.Equal(t, "MSFT", get("RELEASE", "EBC", domain.AttributeFamily))
}

func TestParseToolsDef_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"MissingEquals", "DEBUG_MYTOOLS_IA32_CC_FLAGS /Zi", "missing '='"},
		{"ShortKey", "DEBUG_MYTOOLS_CC_FLAGS = /Zi", "key must have five elements"},
		{"EmptyElement", "DEBUG__IA32_CC_FLAGS = /Zi", "empty key element"},
		{"UndefinedMacro", "*_MYTOOLS_IA32_CC_PATH = DEF(NOPE)/cl.exe", "undefined macro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.ParseToolsDef(strings.NewReader("# header\n" + tt.input + "\n"))
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrToolsDefParseFailed.Error())
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
