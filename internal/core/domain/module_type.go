package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// ModuleType is the closed set of module types a module descriptor may declare.
type ModuleType uint8

const (
	// ModuleTypeOther is any non-blank name outside the known set.
	ModuleTypeOther ModuleType = iota
	ModuleTypeBase
	ModuleTypeSec
	ModuleTypePeiCore
	ModuleTypePeim
	ModuleTypeDxeCore
	ModuleTypeDxeDriver
	ModuleTypeDxeRuntimeDriver
	ModuleTypeDxeSalDriver
	ModuleTypeDxeSmmDriver
	ModuleTypeTool
	ModuleTypeUefiDriver
	ModuleTypeUefiApplication
	ModuleTypeUserDefined
)

// DefaultSuffix is the output suffix of modules whose type has no dedicated suffix.
const DefaultSuffix = ".FFS"

var moduleTypeNames = [...]string{
	ModuleTypeOther:            "OTHER",
	ModuleTypeBase:             "BASE",
	ModuleTypeSec:              "SEC",
	ModuleTypePeiCore:          "PEI_CORE",
	ModuleTypePeim:             "PEIM",
	ModuleTypeDxeCore:          "DXE_CORE",
	ModuleTypeDxeDriver:        "DXE_DRIVER",
	ModuleTypeDxeRuntimeDriver: "DXE_RUNTIME_DRIVER",
	ModuleTypeDxeSalDriver:     "DXE_SAL_DRIVER",
	ModuleTypeDxeSmmDriver:     "DXE_SMM_DRIVER",
	ModuleTypeTool:             "TOOL",
	ModuleTypeUefiDriver:       "UEFI_DRIVER",
	ModuleTypeUefiApplication:  "UEFI_APPLICATION",
	ModuleTypeUserDefined:      "USER_DEFINED",
}

// String returns the descriptor spelling of the module type.
func (t ModuleType) String() string {
	if int(t) < len(moduleTypeNames) {
		return moduleTypeNames[t]
	}
	return moduleTypeNames[ModuleTypeOther]
}

// Known reports whether the type is one of the named module types.
func (t ModuleType) Known() bool {
	return t != ModuleTypeOther && int(t) < len(moduleTypeNames)
}

// Suffix returns the output file suffix of the module type. It is total: unmapped types get DefaultSuffix.
func (t ModuleType) Suffix() string {
	switch t {
	case ModuleTypeSec:
		return ".SEC"
	case ModuleTypePeiCore, ModuleTypePeim:
		return ".PEI"
	case ModuleTypeDxeCore, ModuleTypeDxeDriver, ModuleTypeDxeRuntimeDriver,
		ModuleTypeDxeSalDriver, ModuleTypeDxeSmmDriver, ModuleTypeUefiDriver:
		return ".DXE"
	case ModuleTypeUefiApplication:
		return ".APP"
	default:
		return DefaultSuffix
	}
}

// ParseModuleType maps a declared module type name to a ModuleType, ignoring case.
// A blank name is an error; any other unrecognised name maps to ModuleTypeOther.
func ParseModuleType(s string) (ModuleType, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return ModuleTypeOther, ErrInvalidModuleType
	}
	for i, known := range moduleTypeNames {
		if ModuleType(i) != ModuleTypeOther && strings.EqualFold(known, name) {
			return ModuleType(i), nil
		}
	}
	return ModuleTypeOther, nil
}

// ModuleTypeSuffix returns the output suffix for a declared module type name.
// It never fails: blank or unknown names get DefaultSuffix.
func ModuleTypeSuffix(moduleType string) string {
	t, err := ParseModuleType(moduleType)
	if err != nil {
		return DefaultSuffix
	}
	return t.Suffix()
}

// ComputeOutputName returns the output file of a module relative to the common output
// directory: arch/guid-baseName suffix. The module type must be present.
func ComputeOutputName(arch, guid, baseName, moduleType string) (string, error) {
	if _, err := ParseModuleType(moduleType); err != nil {
		err = zerr.With(err, "guid", guid)
		return "", zerr.With(err, "base_name", baseName)
	}
	return path.Join(arch, guid+"-"+baseName+ModuleTypeSuffix(moduleType)), nil
}

// BaseNameOr returns the association level base name, or the module name when none is set.
func BaseNameOr(baseName string, module ModuleIdentification) string {
	if strings.TrimSpace(baseName) == "" {
		return module.Name
	}
	return strings.TrimSpace(baseName)
}
