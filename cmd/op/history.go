package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roberthamel/optiprompt/internal/history"
	"github.com/roberthamel/optiprompt/internal/prompt"
)

var levels = []prompt.Level{prompt.LevelLow, prompt.LevelMedium, prompt.LevelHigh, prompt.LevelExcellent}

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved prompts",
		Long:  longHistory,
	}
	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistoryShowCmd(a),
		newHistoryDeleteCmd(a),
		newHistoryFavoriteCmd(a),
	)
	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var (
		f        history.Filter
		category string
		level    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved prompts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" {
				f.Category = prompt.Category(category)
				if !slices.Contains(prompt.Categories, f.Category) {
					return fmt.Errorf("unknown category: %s", category)
				}
			}
			if level != "" {
				f.Level = prompt.Level(level)
				if !slices.Contains(levels, f.Level) {
					return fmt.Errorf("unknown level: %s", level)
				}
			}

			store, err := a.store()
			if err != nil {
				return err
			}
			records, err := store.List(f)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved prompts")
				return nil
			}

			t := newTable("ID", "Title", "Technique", "Quality", "Saved", "")
			for _, rec := range records {
				star := ""
				if rec.IsFavorite {
					star = "*"
				}
				title := rec.Title
				if title == "" {
					title = mutedStyle.Render("untitled")
				}
				t.Row(rec.ID, title, string(rec.Technique),
					fmt.Sprintf("%d %s", rec.Quality, rec.Level),
					rec.CreatedAt.Local().Format("2006-01-02 15:04"), star)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Query, "query", "", "match title or prompt text")
	cmd.Flags().StringVar(&category, "category", "", "only this template category")
	cmd.Flags().StringVar(&level, "level", "", "only this quality level")
	cmd.Flags().StringSliceVar(&f.Tags, "tag", nil, "require this tag (repeatable)")
	cmd.Flags().BoolVar(&f.FavoriteOnly, "favorite", false, "only favorites")
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			rec, err := store.Load(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec.Generated)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the whole record as JSON")
	return cmd
}

func newHistoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newHistoryFavoriteCmd(a *app) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Mark a saved prompt as a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			rec, err := store.SetFavorite(args[0], !remove)
			if err != nil {
				return err
			}
			state := "favorited"
			if !rec.IsFavorite {
				state = "unfavorited"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, rec.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "clear the favorite mark instead")
	return cmd
}

var longHistory = `
Browse prompts saved with op generate --save. Records live as JSON files in
~/.local/share/op/history (or the history-dir config key) next to a
HISTORY.md log. Saving the same inputs again updates the existing record.

Examples:
  op history list --query cache --level high
  op history favorite 3f0c2a9e-8d4b-4f43-9a57-0c1d2e3f4a5b
`
