package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/loom/pkg/routetree"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the resolved route table",
	Long: `routes walks the configured routes directory and prints every
discovered route with its URL pattern, kind, and the middleware scopes
that apply to it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		if _, err := os.Stat(cfg.Routes.Dir); err != nil {
			return fmt.Errorf("routes directory %q: %w", cfg.Routes.Dir, err)
		}

		tree, err := routetree.Discover(os.DirFS(cfg.Routes.Dir), routetree.WithLogger(log))
		if err != nil {
			return fmt.Errorf("discover routes: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATTERN\tKIND\tFILE\tSCOPES")
		for _, entry := range tree.Entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				entry.Pattern, entry.Kind, entry.FilePath, scopeList(entry, tree.Scopes))
		}
		return w.Flush()
	},
}

func scopeList(entry routetree.Entry, scopes []routetree.Scope) string {
	var out string
	for _, s := range routetree.ScopesFor(entry.FilePath, scopes) {
		dir := s.Dir
		if dir == "" {
			dir = "(root)"
		}
		if out != "" {
			out += " > "
		}
		out += dir
	}
	return out
}
