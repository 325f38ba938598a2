package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/BoardCut/internal/importer"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
)

// inputFlags selects where the piece list comes from and overrides the board
// and policy.
type inputFlags struct {
	template string
	length   float64
	width    float64
	policy   string
	dxfScale float64
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.template, "template", "", "use a saved template instead of a file")
	fs.Float64Var(&f.length, "length", 0, "board length in cm (default from preferences)")
	fs.Float64Var(&f.width, "width", 0, "board width in cm (default from preferences)")
	fs.StringVar(&f.policy, "policy", "", "rotation policy: free or grain-locked")
	fs.Float64Var(&f.dxfScale, "dxf-scale", 1, "drawing units to cm for DXF input, e.g. 0.1 for mm")
}

// loadProject builds a project from the positional file or --template,
// filling defaults from the saved preferences and the runtime config.
func (a *app) loadProject(cmd *cobra.Command, args []string, f inputFlags) (model.Project, error) {
	prefs, err := project.LoadAppConfig(a.configPath())
	if err != nil {
		return model.Project{}, err
	}

	proj := model.NewProject()
	proj.Board = prefs.DefaultBoard
	proj.Settings.RotationPolicy = a.cfg.RotationPolicy()
	prefs.ApplyToSettings(&proj.Settings)
	proj.Customer = prefs.SavedCustomer

	switch {
	case f.template != "" && len(args) > 0:
		return model.Project{}, fmt.Errorf("%w: give either a file or --template, not both", model.ErrInvalidInput)
	case f.template != "":
		store, err := project.LoadTemplates(a.templatesPath())
		if err != nil {
			return model.Project{}, err
		}
		tmpl := store.FindByName(f.template)
		if tmpl == nil {
			return model.Project{}, fmt.Errorf("template %q not found", f.template)
		}
		fromTmpl := tmpl.ToProject(tmpl.Name)
		proj.Name = fromTmpl.Name
		proj.Board = fromTmpl.Board
		proj.Pieces = fromTmpl.Pieces
		if fromTmpl.Settings.RotationPolicy != "" {
			proj.Settings = fromTmpl.Settings
		}
	case len(args) == 1:
		if err := a.readPieces(cmd.ErrOrStderr(), args[0], f.dxfScale, &proj); err != nil {
			return model.Project{}, err
		}
	default:
		return model.Project{}, fmt.Errorf("%w: a pieces file or --template is required", model.ErrInvalidInput)
	}

	if f.length > 0 {
		proj.Board.Length = f.length
	}
	if f.width > 0 {
		proj.Board.Width = f.width
	}
	if f.policy != "" {
		p, err := model.ParseRotationPolicy(f.policy)
		if err != nil {
			return model.Project{}, err
		}
		proj.Settings.RotationPolicy = p
	}
	return proj, nil
}

// readPieces fills proj from a CSV, Excel, DXF or saved project file.
func (a *app) readPieces(errOut io.Writer, path string, dxfScale float64, proj *model.Project) error {
	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		saved, err := project.LoadProject(path)
		if err != nil {
			return err
		}
		*proj = saved
		proj.Layout = nil
		return nil
	case ".csv", ".txt":
		res = importer.ImportCSV(path)
	case ".xlsx", ".xlsm":
		res = importer.ImportExcel(path)
	case ".dxf":
		res = importer.ImportDXF(path, dxfScale)
	default:
		return fmt.Errorf("%w: unsupported pieces file %q", model.ErrInvalidInput, filepath.Base(path))
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(errOut, "warning:", w)
	}
	for _, e := range res.Errors {
		fmt.Fprintln(errOut, "error:", e)
	}
	if len(res.Pieces) == 0 {
		return fmt.Errorf("%w: no pieces read from %s", model.ErrInvalidInput, filepath.Base(path))
	}
	a.logger.Debug("pieces imported", "file", path, "pieces", len(res.Pieces),
		"errors", len(res.Errors), "warnings", len(res.Warnings))

	proj.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	proj.Pieces = res.Pieces
	return nil
}
