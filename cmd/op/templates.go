package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roberthamel/optiprompt/internal/catalog"
	"github.com/roberthamel/optiprompt/internal/prompt"
	"github.com/roberthamel/optiprompt/internal/quality"
)

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Browse the template catalog",
		Long:  longTemplates,
	}
	cmd.AddCommand(newTemplatesListCmd(a), newTemplatesShowCmd(a))
	return cmd
}

func newTemplatesListCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.registry()
			if err != nil {
				return err
			}

			templates := registry.All()
			if category != "" {
				c := prompt.Category(category)
				if !slices.Contains(prompt.Categories, c) {
					return fmt.Errorf("unknown category: %s", category)
				}
				templates = registry.ByCategory(c)
			}

			t := newTable("ID", "Name", "Category", "Techniques")
			for _, tmpl := range templates {
				t.Row(tmpl.ID, tmpl.Name, catalog.CategoryName(tmpl.Category), joinTechniques(tmpl.Techniques))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list templates in this category")
	return cmd
}

func newTemplatesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a template as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.registry()
			if err != nil {
				return err
			}
			tmpl, err := registry.ByID(args[0])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(tmpl); err != nil {
				return fmt.Errorf("encoding template: %w", err)
			}
			return enc.Close()
		},
	}
}

func newTechniquesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "techniques",
		Short: "List prompting techniques",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range prompt.Techniques {
				line := string(t)
				if quality.IsAdvanced(t) {
					line += " " + mutedStyle.Render("(advanced)")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

var longTemplates = `
Browse the built-in templates and any extra templates loaded from
--templates-dir (or the templates-dir config key). A YAML file there may hold
one template or a list; a template whose id matches a built-in replaces it.

Examples:
  # List coding templates.
  op templates list --category coding

  # Print a template to use as the starting point for your own.
  op templates show general-basic > ~/templates/mine.yaml
`
