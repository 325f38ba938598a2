package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/export"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
)

const maxRecentProjects = 10

type layoutOptions struct {
	input    inputFlags
	name     string
	customer string
	phone    string
	xlsx     string
	pdf      string
	labels   string
	dxf      string
	chart    string
	jsonOut  string
	save     string
}

func newLayoutCmd(a *app) *cobra.Command {
	var o layoutOptions
	cmd := &cobra.Command{
		Use:   "layout [pieces-file]",
		Short: "Compute the cutting layout and write the cut list",
		Long: `Lay the pieces out on boards and print a summary. The pieces file may
be CSV, Excel, DXF or a saved project (.json).

Examples:
  boardcut layout pieces.csv --xlsx kdt.xlsx
  boardcut layout kitchen.xlsx --pdf plan.pdf --labels labels.pdf --dxf plan.dxf
  boardcut layout --template wardrobe --json -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLayout(cmd, args, o)
		},
	}
	o.input.register(cmd.Flags())
	f := cmd.Flags()
	f.StringVar(&o.name, "project", "", "project name printed on the cut list")
	f.StringVar(&o.customer, "customer", "", "customer name (default: saved customer)")
	f.StringVar(&o.phone, "phone", "", "customer phone (default: saved customer)")
	f.StringVar(&o.xlsx, "xlsx", "", "write the KDT workbook to this path")
	f.StringVar(&o.pdf, "pdf", "", "write board diagrams to this PDF")
	f.StringVar(&o.labels, "labels", "", "write QR piece labels to this PDF")
	f.StringVar(&o.dxf, "dxf", "", "write the layout as DXF")
	f.StringVar(&o.chart, "chart", "", "write an HTML efficiency chart")
	f.StringVar(&o.jsonOut, "json", "", "write the layout as JSON (- for stdout)")
	f.StringVar(&o.save, "save", "", "save the project with its layout")
	return cmd
}

func (a *app) runLayout(cmd *cobra.Command, args []string, o layoutOptions) error {
	proj, err := a.loadProject(cmd, args, o.input)
	if err != nil {
		return err
	}
	if o.name != "" {
		proj.Name = o.name
	}
	if o.customer != "" {
		proj.Customer.Name = o.customer
	}
	if o.phone != "" {
		proj.Customer.Phone = o.phone
	}

	eng := engine.New(proj.Settings, engine.WithLogger(a.logger))
	layout, err := eng.ComputeLayout(cmd.Context(), proj.Board, proj.Pieces)
	if err != nil {
		return err
	}
	proj.Layout = &layout
	for _, msg := range engine.FormatViolations(engine.CheckLayout(layout, proj.Pieces)) {
		a.logger.Warn("layout check failed", "violation", msg)
	}

	out := cmd.OutOrStdout()
	if o.jsonOut == "-" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(layout)
	}
	fmt.Fprint(out, renderSummary(a.renderer, proj))

	exports := []struct {
		path  string
		write func(string, model.Project) error
	}{
		{o.xlsx, export.WriteKDT},
		{o.pdf, export.ExportPDF},
		{o.labels, export.ExportLabels},
		{o.dxf, export.ExportDXF},
		{o.chart, export.ExportChart},
		{o.jsonOut, writeLayoutJSON},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path, proj); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", e.path)
	}

	if o.save != "" {
		if err := a.saveProject(o.save, proj); err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", o.save)
	}
	return nil
}

func writeLayoutJSON(path string, proj model.Project) error {
	data, err := json.MarshalIndent(proj.Layout, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

// saveProject writes the project and moves it to the top of the recent list.
func (a *app) saveProject(path string, proj model.Project) error {
	if err := project.SaveProject(path, proj); err != nil {
		return err
	}
	prefs, err := project.LoadAppConfig(a.configPath())
	if err != nil {
		return err
	}
	prefs.AddRecentProject(path, maxRecentProjects)
	return project.SaveAppConfig(a.configPath(), prefs)
}
