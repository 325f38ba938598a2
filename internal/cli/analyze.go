package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
)

func newEstimateCmd(a *app) *cobra.Command {
	var (
		input inputFlags
		price float64
		waste float64
	)
	cmd := &cobra.Command{
		Use:   "estimate [pieces-file]",
		Short: "Estimate how many boards to buy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := a.loadProject(cmd, args, input)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("waste") {
				prefs, err := project.LoadAppConfig(a.configPath())
				if err != nil {
					return err
				}
				waste = prefs.DefaultWastePercent
			}

			est := model.CalculatePurchaseEstimate(proj.Pieces, proj.Board, waste, price)
			eng := engine.New(proj.Settings, engine.WithLogger(a.logger))
			layout, err := eng.ComputeLayout(cmd.Context(), proj.Board, proj.Pieces)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderEstimate(a.renderer, est.WithLayout(layout)))
			return nil
		},
	}
	input.register(cmd.Flags())
	cmd.Flags().Float64Var(&price, "price", 0, "price per board")
	cmd.Flags().Float64Var(&waste, "waste", 10, "extra boards to allow, in percent (default from preferences)")
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var input inputFlags
	cmd := &cobra.Command{
		Use:   "compare [pieces-file]",
		Short: "Compare board usage with and without grain-locked rotation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := a.loadProject(cmd, args, input)
			if err != nil {
				return err
			}
			results := engine.CompareScenarios(cmd.Context(), engine.BuildDefaultScenarios(proj.Settings),
				proj.Board, proj.Pieces, engine.WithLogger(a.logger))
			fmt.Fprint(cmd.OutOrStdout(), renderComparison(a.renderer, results))
			return nil
		},
	}
	input.register(cmd.Flags())
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <project.json>",
		Short: "Re-validate the layout stored in a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.LoadProject(args[0])
			if err != nil {
				return err
			}
			if proj.Layout == nil {
				return fmt.Errorf("%s has no layout", args[0])
			}
			violations := engine.CheckLayout(*proj.Layout, proj.Pieces)
			out := cmd.OutOrStdout()
			if len(violations) == 0 {
				fmt.Fprintln(out, "layout OK")
				return nil
			}
			for _, msg := range engine.FormatViolations(violations) {
				fmt.Fprintln(out, msg)
			}
			return fmt.Errorf("%d layout problem(s) found", len(violations))
		},
	}
}
