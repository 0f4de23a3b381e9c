package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cultiva/internal/cli"
	"github.com/Veraticus/cultiva/internal/common"
	"github.com/Veraticus/cultiva/internal/culture"
	"github.com/Veraticus/cultiva/internal/currency"
	"github.com/Veraticus/cultiva/internal/model"
)

func iconsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "icons",
		Aliases: []string{"icon"},
		Short:   "Manage curated culture icons",
		Long: `Manage the curated culture icon records.

Curated records take precedence over the built-in keyword table when
resolving a crop name. Every change reloads the full table.`,
	}

	cmd.AddCommand(listIconsCmd())
	cmd.AddCommand(addIconCmd())
	cmd.AddCommand(deleteIconCmd())
	cmd.AddCommand(importIconsCmd())
	cmd.AddCommand(exportIconsCmd())

	return cmd
}

func listIconsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List curated culture icons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			builtin, _ := cmd.Flags().GetBool("builtin")
			out := cmd.OutOrStdout()

			if builtin {
				return printBuiltinMappings(out)
			}

			db, cleanup, err := getDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			records, err := db.ListCultureIcons(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, cli.FormatInfo("No curated icons yet. Add one with: cultiva icons add <culture> <icon> <category>"))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tCULTURE\tICON\tCATEGORY\tADDED")
			_, _ = fmt.Fprintln(w, "──\t───────\t────\t────────\t─────")
			for _, rec := range records {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					rec.ID, rec.CultureName, rec.IconName,
					cli.CategorySwatch(rec.Category), currency.FormatShortDate(rec.CreatedAt))
			}
			return w.Flush()
		},
	}

	cmd.Flags().Bool("builtin", false, "List the built-in keyword table instead")

	return cmd
}

func printBuiltinMappings(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEYWORD\tICON\tCATEGORY")
	_, _ = fmt.Fprintln(w, "───────\t────\t────────")
	for _, m := range culture.BuiltinMappings() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", m.Keyword, m.Icon, cli.CategorySwatch(string(m.Category)))
	}
	return w.Flush()
}

func addIconCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <culture> <icon> <category>",
		Short: "Add a curated culture icon",
		Example: `  cultiva icons add "Igname" Carrot tubercules
  cultiva icons add "Café arabica" Coffee stimulantes`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, db, cleanup, err := getClassifier(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			existing, err := db.FindCultureIcons(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, prev := range existing {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf(
					"%q is already curated as id %d (%s); the new record takes over its lookups",
					prev.CultureName, prev.ID, prev.IconName)))
			}

			category := args[2]
			if !model.Category(category).IsKnown() {
				slog.Warn("Unknown category, the default color will be used", "category", category)
			}

			rec := model.CultureIcon{
				CultureName: args[0],
				IconName:    args[1],
				Category:    category,
			}
			id, err := classifier.AddRecord(cmd.Context(), rec)
			if err != nil {
				return common.NewUserError("could not add culture icon", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Added %q → %s (id %d)", rec.CultureName, rec.IconName, id)))
			return nil
		},
	}
}

func deleteIconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a curated culture icon",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return common.NewUserError("id must be a number", err)
			}

			classifier, _, cleanup, err := getClassifier(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				reader := cli.NewNonBlockingReader(cmd.InOrStdin())
				ok, err := cli.Confirm(cmd.Context(), reader, cmd.OutOrStdout(), fmt.Sprintf("Delete culture icon %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing deleted"))
					return nil
				}
			}

			if err := classifier.DeleteRecord(cmd.Context(), id); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("no culture icon with id %d", id), err)
				}
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted culture icon %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking for confirmation")

	return cmd
}

func importIconsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import curated culture icons from YAML",
		Long: `Import curated culture icons from a YAML document of the form:

  icons:
    - culture_name: Igname
      icon_name: Carrot
      category: tubercules`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			records, err := culture.ReadRecords(f)
			if err != nil {
				return common.NewUserError("invalid icon file", err)
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No icons found in "+args[0]))
				return nil
			}

			db, cleanup, err := getDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			for _, rec := range records {
				if _, err := db.InsertCultureIcon(cmd.Context(), rec); err != nil {
					return fmt.Errorf("failed to import %q: %w", rec.CultureName, err)
				}
			}

			common.LogInfo("Imported culture icons", common.Fields{"count": len(records), "file": args[0]})
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d culture icons", len(records))))
			return nil
		},
	}
}

func exportIconsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export curated culture icons as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, cleanup, err := getDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			records, err := db.ListCultureIcons(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			return culture.WriteRecords(out, records)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")

	return cmd
}
