// Package fpd decodes platform and module surface area descriptors.
package fpd

import (
	"encoding/xml"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PlatformLoader = (*Loader)(nil)

// Loader implements ports.PlatformLoader on top of an afero filesystem.
type Loader struct {
	fs     afero.Fs
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(fs afero.Fs, logger ports.Logger) *Loader {
	return &Loader{fs: fs, logger: logger}
}

// Load decodes the platform descriptor at path and resolves its module associations
// against the module descriptors of the workspace.
func (l *Loader) Load(platformPath string, ws *domain.Workspace) (*domain.Platform, error) {
	doc, err := l.decodePlatform(platformPath)
	if err != nil {
		return nil, err
	}
	if err := validate(doc, platformPath); err != nil {
		return nil, err
	}

	catalog, err := BuildCatalog(l.fs, ws.Root, ws.ModulePatterns)
	if err != nil {
		return nil, err
	}
	l.logger.Debug(fmt.Sprintf("found %d module descriptors below %s", catalog.Len(), ws.Root))

	p := &domain.Platform{
		Header:      header(doc, platformPath, ws.Root),
		Definitions: definitions(doc),
		FvImages:    fvImages(doc),
	}
	for _, nv := range doc.FvImages.Globals {
		p.GlobalVariables = append(p.GlobalVariables, domain.NameValue{Name: nv.Name, Value: nv.Value})
	}
	p.BuildOptions = expandOptions(doc.Options)

	modules, err := l.associate(doc, catalog, p.Definitions.Archs)
	if err != nil {
		return nil, zerr.With(err, "path", platformPath)
	}
	p.Modules = modules

	return p, nil
}

func (l *Loader) decodePlatform(platformPath string) (*PlatformDoc, error) {
	data, err := afero.ReadFile(l.fs, platformPath)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrDescriptorReadFailed.Error())
		return nil, zerr.With(err, "path", platformPath)
	}

	var doc PlatformDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		err = zerr.Wrap(err, domain.ErrSchemaInvalid.Error())
		return nil, zerr.With(err, "path", platformPath)
	}
	return &doc, nil
}

func (l *Loader) associate(doc *PlatformDoc, catalog *Catalog, platformArchs []string) ([]domain.ModuleAssociation, error) {
	var out []domain.ModuleAssociation

	for _, sa := range doc.Modules {
		module, ok := catalog.Lookup(sa.GUID, sa.Version)
		if !ok {
			err := zerr.With(domain.ErrModuleNotFound, "module_guid", sa.GUID)
			return nil, zerr.With(err, "module_version", sa.Version)
		}

		if t := module.ID.Type; t != "" {
			if mt, _ := domain.ParseModuleType(t); !mt.Known() {
				l.logger.Warn(fmt.Sprintf("module %s declares unknown type %q, its output uses %s",
					module.ID.Name, t, domain.DefaultSuffix))
			}
		}

		archs := splitList(sa.SupArchList)
		if len(archs) == 0 {
			archs = platformArchs
		}
		rows := expandOptions(sa.BuildOptions.Options)

		for _, arch := range archs {
			out = append(out, domain.ModuleAssociation{
				ID: domain.FpdModuleIdentification{
					Module:    module.ID,
					Arch:      arch,
					FvBinding: strings.TrimSpace(sa.BuildOptions.FvBinding),
				},
				OutputBaseName: strings.TrimSpace(sa.BuildOptions.OutputFileBasename),
				Options:        rows,
				Sources:        module.SourcesFor(arch),
			})
		}
	}
	return out, nil
}

func header(doc *PlatformDoc, platformPath, root string) domain.PlatformHeader {
	file := filepath.ToSlash(platformPath)
	dir := path.Dir(file)

	relFile := file
	if rel, err := filepath.Rel(root, platformPath); err == nil && !strings.HasPrefix(rel, "..") {
		relFile = filepath.ToSlash(rel)
	}

	return domain.PlatformHeader{
		Name:         strings.TrimSpace(doc.Header.Name),
		GUID:         strings.TrimSpace(doc.Header.GUID),
		Version:      strings.TrimSpace(doc.Header.Version),
		Description:  strings.TrimSpace(doc.Header.Description),
		File:         file,
		RelativeFile: relFile,
		Dir:          dir,
		RelativeDir:  path.Dir(relFile),
	}
}

func definitions(doc *PlatformDoc) domain.PlatformDefinitions {
	mode := domain.BuildMode(strings.ToUpper(strings.TrimSpace(doc.Definitions.Intermediate)))
	if mode == "" {
		mode = domain.BuildModeUnified
	}
	return domain.PlatformDefinitions{
		Archs:           upperList(doc.Definitions.Archs),
		Targets:         upperList(doc.Definitions.Targets),
		BuildMode:       mode,
		OutputDirectory: strings.TrimSpace(doc.Definitions.OutputDirectory),
	}
}

func fvImages(doc *PlatformDoc) []domain.FvImage {
	images := make([]domain.FvImage, 0, len(doc.FvImages.Images))
	for _, img := range doc.FvImages.Images {
		fv := domain.FvImage{Type: domain.FvImageType(strings.TrimSpace(img.Type))}
		for _, name := range img.Names {
			fv.Names = append(fv.Names, splitList(name)...)
		}
		for _, nv := range slices.Concat(img.Rows, img.Options) {
			fv.Values = append(fv.Values, domain.NameValue{Name: nv.Name, Value: nv.Value})
		}
		images = append(images, fv)
	}
	return images
}

// expandOptions turns each option into one row per listed build target and architecture.
// Empty lists produce a single wildcard row.
func expandOptions(options []OptionDTO) []domain.OptionRow {
	var rows []domain.OptionRow
	for _, opt := range options {
		targets := orWildcard(splitList(opt.BuildTargets))
		archs := orWildcard(splitList(opt.SupArchList))
		for _, target := range targets {
			for _, arch := range archs {
				rows = append(rows, domain.OptionRow{
					Target:    target,
					TagName:   strings.TrimSpace(opt.TagName),
					Family:    strings.TrimSpace(opt.ToolChainFamily),
					Arch:      arch,
					ToolCode:  strings.TrimSpace(opt.ToolCode),
					Attribute: strings.TrimSpace(opt.ToolAttribute),
					Value:     opt.Value,
				})
			}
		}
	}
	return rows
}

func orWildcard(values []string) []string {
	if len(values) == 0 {
		return []string{domain.Wildcard}
	}
	return values
}

func splitList(s string) []string {
	return strings.Fields(s)
}

func upperList(s string) []string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f)
	}
	return fields
}

func containsFold(values []string, v string) bool {
	return slices.ContainsFunc(values, func(s string) bool { return strings.EqualFold(s, v) })
}
