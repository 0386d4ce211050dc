package fpd

import (
	"strings"

	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/zerr"
)

func schemaError(path, reason string) error {
	return zerr.With(zerr.Wrap(domain.ErrSchemaInvalid, reason), "path", path)
}

// validate checks the constraints of the platform schema the generator relies on.
func validate(doc *PlatformDoc, path string) error {
	if strings.TrimSpace(doc.Header.Name) == "" {
		return schemaError(path, "PlatformName is missing")
	}
	if _, err := domain.ParseGUID(doc.Header.GUID); err != nil {
		return schemaError(path, "PlatformHeader GuidValue is not a valid GUID")
	}
	if len(splitList(doc.Definitions.Archs)) == 0 {
		return schemaError(path, "SupportedArchitectures is empty")
	}
	if len(splitList(doc.Definitions.Targets)) == 0 {
		return schemaError(path, "BuildTargets is empty")
	}

	switch domain.BuildMode(strings.ToUpper(strings.TrimSpace(doc.Definitions.Intermediate))) {
	case "", domain.BuildModeUnified, domain.BuildModeModule:
	default:
		return zerr.With(schemaError(path, "IntermediateDirectories must be UNIFIED or MODULE"),
			"value", doc.Definitions.Intermediate)
	}

	for _, img := range doc.FvImages.Images {
		if !domain.FvImageType(strings.TrimSpace(img.Type)).Known() {
			return zerr.With(schemaError(path, "unknown FvImage type"), "type", img.Type)
		}
		names := 0
		for _, n := range img.Names {
			names += len(splitList(n))
		}
		if names == 0 {
			return zerr.With(schemaError(path, "FvImage lists no FvImageNames"), "type", img.Type)
		}
	}

	for _, sa := range doc.Modules {
		if _, err := domain.ParseGUID(sa.GUID); err != nil {
			return zerr.With(schemaError(path, "ModuleSA ModuleGuid is not a valid GUID"), "module_guid", sa.GUID)
		}
	}

	return nil
}
