package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/internal/core/domain"
)

func fpdModule(name, guid, arch string) domain.FpdModuleIdentification {
	return domain.FpdModuleIdentification{
		Module: domain.ModuleIdentification{Name: name, GUID: guid, Version: "1.0", Type: "PEIM"},
		Arch:   arch,
	}
}

func TestSplitFvBinding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keyword  string
		expected []string
	}{
		{"", []string{domain.NullFV}},
		{"   ", []string{domain.NullFV}},
		{"\t \t", []string{domain.NullFV}},
		{",, ,", []string{domain.NullFV}},
		{"FVMAIN", []string{"FVMAIN"}},
		{"FV1,, FV1  FV2", []string{"FV1", "FV1", "FV2"}},
		{" FVRECOVERY\tFVMAIN ", []string{"FVRECOVERY", "FVMAIN"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, domain.SplitFvBinding(tt.keyword), "keyword %q", tt.keyword)
	}
}

func TestFVIndex_Assign_BlankKeywordGoesToNull(t *testing.T) {
	t.Parallel()

	for _, keyword := range []string{"", " ", "\t\t", "  \t "} {
		idx := domain.NewFVIndex()
		id := fpdModule("PcdPeim", "9B3ADA4F-AE56-4C24-8DEA-F03B7558AE50", "IA32")

		idx.Assign(keyword, id)

		assert.Equal(t, []string{domain.NullFV}, idx.Names(), "keyword %q", keyword)
		assert.Equal(t, []domain.FpdModuleIdentification{id}, idx.Modules(domain.NullFV))
	}
}

func TestFVIndex_Assign_Dedup(t *testing.T) {
	t.Parallel()

	idx := domain.NewFVIndex()
	id := fpdModule("PeiMain", "52C05B14-0B98-496c-BC3B-04B50211D680", "IA32")

	idx.Assign("FV1,, FV1  FV2", id)
	idx.Assign("FV2", id)

	assert.Equal(t, []string{"FV1", "FV2"}, idx.Names())
	assert.Len(t, idx.Modules("FV1"), 1)
	assert.Len(t, idx.Modules("FV2"), 1)
	assert.Nil(t, idx.Modules(domain.NullFV))
	assert.Equal(t, []string{"FV1", "FV2"}, idx.VolumesOf(id))
}

func TestFVIndex_IdentityIgnoresBindingAndGUIDCase(t *testing.T) {
	t.Parallel()

	idx := domain.NewFVIndex()
	a := fpdModule("PeiMain", "52C05B14-0B98-496c-BC3B-04B50211D680", "IA32")
	b := fpdModule("PeiMain", "52c05b14-0b98-496C-bc3b-04b50211d680", "IA32")
	b.FvBinding = "FVMAIN"
	other := fpdModule("PeiMain", "52C05B14-0B98-496c-BC3B-04B50211D680", "X64")

	idx.Assign("FVMAIN", a)
	idx.Assign("FVMAIN", b)
	idx.Assign("FVMAIN", other)

	modules := idx.Modules("FVMAIN")
	require.Len(t, modules, 2)
	assert.Equal(t, "IA32", modules[0].Arch)
	assert.Equal(t, "X64", modules[1].Arch)
	assert.True(t, idx.Contains("FVMAIN", b))
	assert.False(t, idx.Contains("FVRECOVERY", a))
}

func TestFVIndex_All(t *testing.T) {
	t.Parallel()

	idx := domain.NewFVIndex()
	a := fpdModule("A", "00000000-0000-0000-0000-00000000000a", "IA32")
	b := fpdModule("B", "00000000-0000-0000-0000-00000000000b", "IA32")
	idx.Assign("FV2", a)
	idx.Assign("FV1 FV2", b)

	var pairs []string
	for fv, id := range idx.All() {
		pairs = append(pairs, fv+":"+id.Module.Name)
	}

	assert.Equal(t, []string{"FV2:A", "FV2:B", "FV1:B"}, pairs)
	assert.Equal(t, 2, idx.Len())
}
