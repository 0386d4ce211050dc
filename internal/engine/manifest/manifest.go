// Package manifest renders and writes firmware volume manifests.
package manifest

import (
	"context"
	"strings"

	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// KeyColumn is the width keys are padded to before the separator.
	KeyColumn = 40
	// Separator follows the padded key of every table row.
	Separator = "=  "
	// FileKey prefixes every entry of the [files] section.
	FileKey = "EFI_FILE_NAME = "
)

// Sections provides the table rows of a volume for one image kind.
// *domain.Platform implements it.
type Sections interface {
	ImageRows(kind domain.FvImageType, fvName string) []domain.NameValue
}

// Request describes the manifests of one (target, tool chain) pair.
type Request struct {
	// FVNames are the declared volumes. Every one gets a manifest, even without modules.
	FVNames  []string
	FVs      *domain.FVIndex
	Outputs  *domain.OutputIndex
	Sections Sections
	// Globals are set as properties before rendering.
	Globals []domain.NameValue
	// CommonDir prefixes every output name in the [files] section.
	CommonDir  string
	FVDir      string
	Properties *domain.Properties
}

// Result reports one written manifest.
type Result struct {
	FV      string
	Path    string
	Changed bool
}

// FormatRow pads key with spaces to KeyColumn and appends the separator and value.
// Keys at or beyond the column are not truncated.
func FormatRow(key, value string) string {
	var b strings.Builder
	b.Grow(KeyColumn + len(Separator) + len(value))
	b.WriteString(key)
	for i := len(key); i < KeyColumn; i++ {
		b.WriteByte(' ')
	}
	b.WriteString(Separator)
	b.WriteString(value)
	return b.String()
}

var tableSections = []struct {
	header string
	kind   domain.FvImageType
}{
	{"[options]", domain.FvImageOptions},
	{"[attributes]", domain.FvImageAttributes},
	{"[components]", domain.FvImageComponents},
}

// Render returns the manifest text of one volume. Every line is passed through props.
func Render(req Request, fvName string, props *domain.Properties) ([]byte, error) {
	var b strings.Builder

	writeLine := func(line string) {
		b.WriteString(props.Substitute(line))
		b.WriteByte('\n')
	}

	if req.Sections != nil {
		for _, section := range tableSections {
			rows := req.Sections.ImageRows(section.kind, fvName)
			if len(rows) == 0 {
				continue
			}
			writeLine(section.header)
			for _, row := range rows {
				writeLine(FormatRow(row.Name, row.Value))
			}
			b.WriteByte('\n')
		}
	}

	modules := req.FVs.Modules(fvName)
	if len(modules) > 0 {
		writeLine("[files]")
		for _, id := range modules {
			name, ok := req.Outputs.Get(id)
			if !ok {
				err := zerr.With(domain.ErrOrphanedManifestEntry, "fv", fvName)
				return nil, zerr.With(err, "module", id.String())
			}
			writeLine(FileKey + req.CommonDir + "/" + name)
		}
	}

	return []byte(b.String()), nil
}

// Emitter writes the manifests of a request through a FileWriter.
type Emitter struct {
	writer ports.FileWriter
	logger ports.Logger
}

// NewEmitter creates a new Emitter.
func NewEmitter(writer ports.FileWriter, logger ports.Logger) *Emitter {
	return &Emitter{writer: writer, logger: logger}
}

// Emit writes {FVDir}/{fv}.inf for every declared volume, in declaration order.
// The first failure aborts the request. Manifests written before it are left in place.
func (e *Emitter) Emit(ctx context.Context, req Request) ([]Result, error) {
	base := req.Properties.Clone()
	for _, gv := range req.Globals {
		base.Set(gv.Name, gv.Value)
	}

	results := make([]Result, 0, len(req.FVNames))
	for _, fv := range req.FVNames {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		props := base.Clone()
		props.Set(domain.PropFVFilename, fv)
		target := props.Substitute(domain.ManifestPath(req.FVDir, fv))

		data, err := Render(req, fv, props)
		if err != nil {
			return results, err
		}

		changed, err := e.writer.WriteFile(target, data)
		if err != nil {
			err = zerr.Wrap(err, domain.ErrIOWriteFailure.Error())
			return results, zerr.With(err, "path", target)
		}

		if changed {
			e.logger.Debug("wrote " + target)
		} else {
			e.logger.Debug("unchanged " + target)
		}
		results = append(results, Result{FV: fv, Path: target, Changed: changed})
	}

	return results, nil
}
