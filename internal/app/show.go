package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/afero"
	"go.trai.ch/fpdgen/internal/adapters/fs"
	"go.trai.ch/fpdgen/internal/adapters/telemetry"
	"go.trai.ch/fpdgen/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// ShowOptions configuration for the Show method.
type ShowOptions struct {
	JSON       bool
	Targets    []string
	ToolChains []string
}

// bindingColumns names the columns of the binding table; JSON keys use the same names.
var bindingColumns = []table.ColumnConfig{
	{Name: "Module"},
	{Name: "Arch"},
	{Name: "GUID"},
	{Name: "Version"},
	{Name: "Arches"},
	{Name: "FVs"},
	{Name: "Output"},
}

// Show prints how every module instance of the platform is bound: the architectures the
// module is built for, its firmware volumes and output file. Nothing is written to disk.
func (a *App) Show(ctx context.Context, platformPath string, opts ShowOptions) error {
	ws, path, err := a.loadWorkspace(platformPath)
	if err != nil {
		return err
	}

	pc := pipeline.NewContext(ws, path, pipeline.Options{
		Targets:    opts.Targets,
		ToolChains: opts.ToolChains,
	})
	p := pipeline.New(a.platforms, fs.NewWriter(afero.NewMemMapFs()), telemetry.NewNoOpTracer(), a.logger)
	if err := p.Run(ctx, pc); err != nil {
		return err
	}

	rows := bindingRows(pc)
	if opts.JSON {
		return writeBindingsJSON(a.stdout, rows)
	}
	writeBindingsTable(a.stdout, rows)
	return nil
}

func bindingRows(pc *pipeline.Context) []table.Row {
	rows := make([]table.Row, 0, len(pc.Modules))
	for _, m := range pc.Modules {
		rows = append(rows, table.Row{
			m.ID.Module.Name,
			m.ID.Arch,
			m.ID.Module.GUID,
			m.ID.Module.Version,
			strings.Join(pc.Outputs.ArchesFor(m.ID.Module), ","),
			strings.Join(pc.FVs.VolumesOf(m.ID), ","),
			m.OutputName,
		})
	}
	return rows
}

func writeBindingsTable(w io.Writer, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(bindingColumns))
	for i, col := range bindingColumns {
		header[i] = col.Name
	}
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.SetColumnConfigs(bindingColumns)
	t.Render()
}

func writeBindingsJSON(w io.Writer, rows []table.Row) error {
	items := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		item := make(map[string]any, len(bindingColumns))
		for i, col := range bindingColumns {
			item[col.Name] = row[i]
		}
		items = append(items, item)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode module bindings")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
