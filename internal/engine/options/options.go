// Package options merges platform and module build options into layered tool chain maps.
package options

import (
	"strings"

	"go.trai.ch/fpdgen/internal/core/domain"
)

type config struct {
	defaults *domain.OptionTable
}

// Option configures Resolve.
type Option func(*config)

// WithDefaults sets the table consulted when no descriptor option matches, usually the
// workspace tools definition. The table is shared, not copied, and must not be modified afterwards.
func WithDefaults(table *domain.OptionTable) Option {
	return func(c *config) {
		c.defaults = table
	}
}

// Resolve builds the layered option map of a module instance. Lookups prefer, in order,
// module options for the specific tag, module options for the family, platform options
// for the specific tag, platform options for the family, then the defaults.
//
// Nil or empty row sets leave their layers empty. Blank values are stored as the empty
// string, which shadows less specific layers.
func Resolve(platformRows, moduleRows []domain.OptionRow, opts ...Option) *domain.ToolChainMap {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	m := domain.NewToolChainMap()
	load(m, domain.LayerPlatformTag, domain.LayerPlatformFamily, platformRows)
	load(m, domain.LayerModuleTag, domain.LayerModuleFamily, moduleRows)
	m.SetLayer(domain.LayerDefaults, cfg.defaults)

	return m
}

func load(m *domain.ToolChainMap, tagLayer, familyLayer domain.Layer, rows []domain.OptionRow) {
	for _, row := range rows {
		key, byFamily := keyOf(row)
		layer := tagLayer
		if byFamily {
			layer = familyLayer
		}
		m.Put(layer, key, strings.TrimSpace(row.Value))
	}
}

// keyOf maps a row to its lookup key. Rows naming a concrete tag are tag scoped; all
// others are family scoped, with a missing family matching every family.
func keyOf(row domain.OptionRow) (domain.ToolChainKey, bool) {
	attr := strings.TrimSpace(row.Attribute)
	if attr == "" {
		attr = domain.AttributeFlags
	}

	key := domain.ToolChainKey{
		Target:    row.Target,
		Arch:      row.Arch,
		ToolCode:  row.ToolCode,
		Attribute: attr,
	}

	tag := strings.TrimSpace(row.TagName)
	if tag != "" && tag != domain.Wildcard {
		key.ToolChain = tag
		return key, false
	}

	key.ToolChain = row.Family
	return key, true
}
