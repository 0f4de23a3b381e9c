package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cultiva/internal/cli"
	"github.com/Veraticus/cultiva/internal/culture"
)

type resolveOutput struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Category string `json:"category,omitempty"`
	Color    string `json:"color"`
	Source   string `json:"source"`
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <name>...",
		Short: "Resolve crop names to icons and colors",
		Long: `Resolve free-text crop names to an icon, category and color.

Curated records are checked first (exact match, then partial match),
then the built-in keyword table. Unknown names get the Leaf icon. If the
database is unavailable only the built-in table is used.`,
		Example: `  cultiva resolve Igname "Café arabica" "Pomme de terre"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builtinOnly, _ := cmd.Flags().GetBool("builtin")
			asJSON, _ := cmd.Flags().GetBool("json")

			resolveFn := culture.Resolve
			if !builtinOnly {
				classifier, cleanup := getResolver(cmd.Context(), cmd.ErrOrStderr())
				defer cleanup()
				resolveFn = classifier.ResolveRecord
			}

			results := make([]resolveOutput, 0, len(args))
			for _, name := range args {
				res := resolveFn(name)
				results = append(results, resolveOutput{
					Name:     name,
					Icon:     res.IconName,
					Category: res.Category,
					Color:    res.Color,
					Source:   res.Tier.String(),
				})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tICON\tCATEGORY\tSOURCE")
			for _, r := range results {
				category := r.Category
				if category == "" {
					category = "-"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Icon, cli.Swatch(r.Color, category), r.Source)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Bool("builtin", false, "Use only the built-in keyword table (no database)")
	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}
