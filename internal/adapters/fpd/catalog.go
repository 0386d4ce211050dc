package fpd

import (
	"encoding/xml"
	iofs "io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/zerr"
)

// Module is a decoded module descriptor.
type Module struct {
	ID      domain.ModuleIdentification
	Sources []FilenameDTO
}

// SourcesFor returns the source files that apply to arch, in descriptor order.
func (m *Module) SourcesFor(arch string) []string {
	var out []string
	for _, src := range m.Sources {
		path := strings.TrimSpace(src.Path)
		if path == "" {
			continue
		}
		if archs := splitList(src.SupArchList); len(archs) > 0 && !containsFold(archs, arch) {
			continue
		}
		out = append(out, path)
	}
	return out
}

type catalogKey struct {
	guid    uuid.UUID
	version string
}

// Catalog indexes the module descriptors of a workspace by GUID and version.
type Catalog struct {
	modules map[catalogKey]*Module
	byGUID  map[uuid.UUID][]*Module
}

// Lookup returns the module with the given GUID and version. A blank version matches
// the first module with that GUID in path order.
func (c *Catalog) Lookup(guid, version string) (*Module, bool) {
	id, err := domain.ParseGUID(guid)
	if err != nil {
		return nil, false
	}
	version = strings.TrimSpace(version)
	if version == "" {
		candidates := c.byGUID[id]
		if len(candidates) == 0 {
			return nil, false
		}
		return candidates[0], true
	}
	m, ok := c.modules[catalogKey{guid: id, version: version}]
	return m, ok
}

// Len returns the number of modules in the catalog.
func (c *Catalog) Len() int {
	return len(c.modules)
}

// BuildCatalog walks root and decodes every file matching one of the doublestar patterns.
// Patterns are matched against slash separated paths relative to root.
func BuildCatalog(fsys afero.Fs, root string, patterns []string) (*Catalog, error) {
	var paths []string
	err := afero.Walk(fsys, root, func(path string, info iofs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			match, matchErr := doublestar.Match(pattern, rel)
			if matchErr != nil {
				return zerr.With(zerr.Wrap(matchErr, "invalid module pattern"), "pattern", pattern)
			}
			if match {
				paths = append(paths, rel)
				break
			}
		}
		return nil
	})
	if err != nil {
		err = zerr.Wrap(err, domain.ErrModuleDiscoveryFailed.Error())
		return nil, zerr.With(err, "root", root)
	}
	slices.Sort(paths)

	c := &Catalog{
		modules: make(map[catalogKey]*Module, len(paths)),
		byGUID:  make(map[uuid.UUID][]*Module, len(paths)),
	}
	for _, rel := range paths {
		m, err := decodeModule(fsys, filepath.Join(root, filepath.FromSlash(rel)), rel)
		if err != nil {
			return nil, err
		}
		if err := c.add(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(m *Module) error {
	id, err := domain.ParseGUID(m.ID.GUID)
	if err != nil {
		return schemaError(m.ID.Path, "GuidValue is not a valid GUID")
	}
	key := catalogKey{guid: id, version: m.ID.Version}
	if prev, ok := c.modules[key]; ok {
		err := zerr.With(domain.ErrDuplicateModule, "first", prev.ID.Path)
		return zerr.With(err, "duplicate", m.ID.Path)
	}
	c.modules[key] = m
	c.byGUID[id] = append(c.byGUID[id], m)
	return nil
}

func decodeModule(fsys afero.Fs, path, rel string) (*Module, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrDescriptorReadFailed.Error())
		return nil, zerr.With(err, "path", rel)
	}

	var doc ModuleDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		err = zerr.Wrap(err, domain.ErrSchemaInvalid.Error())
		return nil, zerr.With(err, "path", rel)
	}

	h := doc.Header
	if strings.TrimSpace(h.Name) == "" {
		return nil, schemaError(rel, "ModuleName is missing")
	}

	return &Module{
		ID: domain.ModuleIdentification{
			Name:    strings.TrimSpace(h.Name),
			GUID:    strings.TrimSpace(h.GUID),
			Version: strings.TrimSpace(h.Version),
			Path:    rel,
			Type:    strings.TrimSpace(h.Type),
		},
		Sources: doc.Sources,
	}, nil
}
