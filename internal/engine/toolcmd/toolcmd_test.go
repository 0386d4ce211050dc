package toolcmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/engine/toolcmd"
)

func TestAssemble(t *testing.T) {
	t.Parallel()

	props := domain.NewProperties(map[string]string{
		"OUT":  "/ws/Build/DEBUG_ELFGCC/IA32",
		"PKG":  "/ws/MdePkg",
		"ARCH": "IA32",
	})

	tests := []struct {
		name     string
		def      toolcmd.Definition
		expected []string
	}{
		{
			name: "CompilerOrder",
			def: toolcmd.Definition{
				Command:      "gcc",
				Family:       "GCC",
				Args:         []string{"-c  -Os", "\t-DARCH=${ARCH}"},
				EndArgs:      []string{"-Wall"},
				OutputFlag:   "-o ",
				OutputFile:   "${OUT}/a.o",
				IncludeFlag:  "-I",
				IncludePaths: []string{"${PKG}/Include", "${PKG}/Include/${ARCH}"},
				Sources:      []string{"a.c", "b.c", "a.c"},
			},
			expected: []string{
				"gcc", "-c", "-Os", "-DARCH=IA32", "-Wall",
				"-o /ws/Build/DEBUG_ELFGCC/IA32/a.o",
				"-I/ws/MdePkg/Include", "-I/ws/MdePkg/Include/IA32",
				"a.c", "b.c",
			},
		},
		{
			name: "ArchiveFlagIsSeparateToken",
			def: toolcmd.Definition{
				Command:    "ar",
				OutputFlag: "-cr",
				OutputFile: "${OUT}/lib.a",
				Sources:    []string{"a.o"},
			},
			expected: []string{"ar", "-cr", "/ws/Build/DEBUG_ELFGCC/IA32/lib.a", "a.o"},
		},
		{
			name: "GccLibraryGroup",
			def: toolcmd.Definition{
				Command:   "ld",
				Family:    "gcc",
				Libraries: []string{"${OUT}/a.lib", "b.lib"},
			},
			expected: []string{"ld", "-(", "/ws/Build/DEBUG_ELFGCC/IA32/a.lib", "b.lib", "-)"},
		},
		{
			name: "MsftLibrariesUngrouped",
			def: toolcmd.Definition{
				Command:    "link.exe",
				Family:     "MSFT",
				OutputFlag: "/OUT:",
				OutputFile: "x.dll",
				Libraries:  []string{"a.lib"},
			},
			expected: []string{"link.exe", "/OUT:x.dll", "a.lib"},
		},
		{
			name: "OutputFlagWithoutFileIsDropped",
			def: toolcmd.Definition{
				Command:    "cc",
				OutputFlag: "-o",
			},
			expected: []string{"cc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			argv, err := toolcmd.Assemble(tt.def, props)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, argv)
		})
	}
}

func TestAssemble_EmptyCommand(t *testing.T) {
	t.Parallel()

	_, err := toolcmd.Assemble(toolcmd.Definition{Command: "  "}, nil)
	require.ErrorIs(t, err, domain.ErrEmptyCommand)
}
