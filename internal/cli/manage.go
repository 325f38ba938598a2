package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/config"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
)

func newTemplateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage saved piece lists",
	}

	var (
		input       inputFlags
		description string
	)
	save := &cobra.Command{
		Use:   "save <name> <pieces-file>",
		Short: "Save a piece list as a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := a.loadProject(cmd, args[1:], input)
			if err != nil {
				return err
			}
			store, err := project.LoadTemplates(a.templatesPath())
			if err != nil {
				return err
			}
			store.Add(model.NewProjectTemplate(args[0], description, proj.Board, proj.Pieces, proj.Settings))
			if err := project.SaveTemplates(a.templatesPath(), store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved template %q (%d pieces)\n", args[0], len(proj.Pieces))
			return nil
		},
	}
	input.register(save.Flags())
	save.Flags().StringVar(&description, "description", "", "template description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(a.templatesPath())
			if err != nil {
				return err
			}
			if len(store.Templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no templates")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPIECES\tUNITS\tBOARD\tDESCRIPTION")
			for _, t := range store.Templates {
				fmt.Fprintf(w, "%s\t%d\t%d\t%gx%g\t%s\n", t.Name, len(t.Pieces), model.TotalQuantity(t.Pieces),
					t.Board.Length, t.Board.Width, t.Description)
			}
			return w.Flush()
		},
	}

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(a.templatesPath())
			if err != nil {
				return err
			}
			if !store.Remove(args[0]) {
				return fmt.Errorf("template %q not found", args[0])
			}
			if err := project.SaveTemplates(a.templatesPath(), store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted template %q\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(save, list, del)
	return cmd
}

func newCustomerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage the saved customer contact",
	}

	var name, phone string
	set := &cobra.Command{
		Use:   "set",
		Short: "Save the customer name and phone for the next cut list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cust := model.Customer{Name: name, Phone: phone}
			if err := cust.Validate(); err != nil {
				return err
			}
			prefs, err := project.LoadAppConfig(a.configPath())
			if err != nil {
				return err
			}
			prefs.RememberCustomer(cust)
			if err := project.SaveAppConfig(a.configPath(), prefs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved customer %s (%s)\n", cust.Name, cust.Phone)
			return nil
		},
	}
	set.Flags().StringVar(&name, "name", "", "customer name")
	set.Flags().StringVar(&phone, "phone", "", "customer phone, at least 10 digits")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := project.LoadAppConfig(a.configPath())
			if err != nil {
				return err
			}
			if prefs.SavedCustomer.Name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved customer")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", prefs.SavedCustomer.Name, prefs.SavedCustomer.Phone)
			return nil
		},
	}

	cmd.AddCommand(set, show)
	return cmd
}

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import preferences and templates",
	}

	exp := &cobra.Command{
		Use:   "export <file>",
		Short: "Write preferences and templates to one JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := project.LoadAppConfig(a.configPath())
			if err != nil {
				return err
			}
			store, err := project.LoadTemplates(a.templatesPath())
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], prefs, store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d template(s) to %s\n", len(store.Templates), args[0])
			return nil
		},
	}

	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace preferences and templates from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(a.configPath(), backup.Config); err != nil {
				return err
			}
			if err := project.SaveTemplates(a.templatesPath(), backup.Templates); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported backup from %s (version %s)\n", backup.CreatedAt, backup.Version)
			return nil
		},
	}

	cmd.AddCommand(exp, imp)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the runtime config file",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(a.cfg.Redacted())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, show)
	return cmd
}

